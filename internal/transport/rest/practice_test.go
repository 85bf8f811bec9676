package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
	"github.com/heartmarshall/deutsch-vocab/internal/service/practice"
)

var hund = domain.WordRecord{Artikel: "der", Deutsch: "Hund", English: "dog", Status: domain.StatusIncorrect, IncorrectCount: 2}

var (
	attemptID = uuid.MustParse("6f1c2a9e-3b7d-4e0a-9c51-2d8f4a6b7c10")
	attemptAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestPracticeNext_ParsesQuery(t *testing.T) {
	t.Parallel()

	svc := &practiceServiceMock{
		NextWordFunc: func(_ context.Context, in practice.NextWordInput) (*practice.NextWordResult, error) {
			return &practice.NextWordResult{
				Status:   practice.NextWordFound,
				Word:     &domain.LevelWord{Level: "A1.2", Word: hund},
				PoolSize: 7,
				Levels:   in.Levels,
			}, nil
		},
	}
	h := NewPracticeHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/practice/next?level=A1.1,A1.2&level=B1&difficulty_only=true&min_incorrect=2", nil)
	rec := httptest.NewRecorder()
	h.Next(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	in := svc.nextCalls[0]
	if fmt.Sprint(in.Levels) != "[A1.1 A1.2 B1]" || !in.DifficultyOnly || in.MinIncorrectCount != 2 {
		t.Errorf("input = %+v", in)
	}

	body := decodeBody(t, rec)
	if body["status"] != "word" || body["pool_size"] != float64(7) {
		t.Errorf("body = %v", body)
	}
	w := body["word"].(map[string]any)
	if w["display"] != "der Hund" || w["level"] != "A1.2" || w["incorrect_count"] != float64(2) {
		t.Errorf("word = %v", w)
	}
}

func TestPracticeNext_Completed(t *testing.T) {
	t.Parallel()

	svc := &practiceServiceMock{
		NextWordFunc: func(context.Context, practice.NextWordInput) (*practice.NextWordResult, error) {
			return &practice.NextWordResult{
				Status: practice.NextWordCompleted,
				Levels: []string{"A1.1"},
				Stats:  domain.LevelStats{Total: 2, Correct: 2, Completed: true},
			}, nil
		},
	}
	h := NewPracticeHandler(svc, slog.Default())

	rec := httptest.NewRecorder()
	h.Next(rec, httptest.NewRequest(http.MethodGet, "/api/practice/next", nil))

	body := decodeBody(t, rec)
	if body["status"] != "completed" {
		t.Errorf("status = %v", body["status"])
	}
	if _, ok := body["word"]; ok {
		t.Error("completed response must not carry a word")
	}
	if st := body["stats"].(map[string]any); st["completion_percentage"] != float64(100) {
		t.Errorf("stats = %v", st)
	}
}

func TestPracticeAnswer(t *testing.T) {
	t.Parallel()

	svc := &practiceServiceMock{
		SubmitAnswerFunc: func(_ context.Context, in practice.SubmitAnswerInput) (*practice.Evaluation, error) {
			return &practice.Evaluation{
				Kind:    domain.KindRetryWithCorrection,
				Message: "Not quite.",
				Level:   in.Level,
				Word:    hund,
				Saved:   true,
				Attempt: domain.Attempt{
					ID:             attemptID,
					Level:          in.Level,
					Word:           in.Word,
					Kind:           domain.KindRetryWithCorrection,
					UserAnswer:     in.Answer,
					IncorrectCount: 2,
					UpdateSuccess:  true,
					CreatedAt:      attemptAt,
				},
			}, nil
		},
	}
	h := NewPracticeHandler(svc, slog.Default())

	body := `{"level":"A1.1","artikel":"der","deutsch":"Hund","english":"dog","answer":"Katze","articles_mandatory":true}`
	rec := httptest.NewRecorder()
	h.Answer(rec, httptest.NewRequest(http.MethodPost, "/api/practice/answer", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	in := svc.answerCalls[0]
	if in.Word != (domain.Identity{Artikel: "der", Deutsch: "Hund", English: "dog"}) || in.Answer != "Katze" {
		t.Errorf("input = %+v", in)
	}
	if in.ArticlesMandatory == nil || !*in.ArticlesMandatory || in.Correction != nil {
		t.Errorf("input = %+v", in)
	}

	resp := decodeBody(t, rec)
	if resp["kind"] != "retry_with_correction" || resp["saved"] != true {
		t.Errorf("body = %v", resp)
	}
	if _, ok := resp["warning"]; ok {
		t.Error("saved response must not carry a warning")
	}
	if resp["correct_answer"] != "Hund" || resp["artikel"] != "der" || resp["english"] != "dog" || resp["user_answer"] != "Katze" {
		t.Errorf("body = %v", resp)
	}

	metrics, ok := resp["metrics"].(map[string]any)
	if !ok {
		t.Fatalf("metrics missing: %v", resp)
	}
	want := map[string]any{
		"id":              attemptID.String(),
		"level":           "A1.1",
		"deutsch":         "Hund",
		"user_answer":     "Katze",
		"correct":         false,
		"retry":           false,
		"correction":      false,
		"incorrect_count": float64(2),
		"update_success":  true,
		"timestamp":       "2026-03-14T09:30:00Z",
	}
	for k, v := range want {
		if metrics[k] != v {
			t.Errorf("metrics[%q] = %v, want %v", k, metrics[k], v)
		}
	}
}

func TestPracticeAnswer_UnsavedCarriesWarning(t *testing.T) {
	t.Parallel()

	svc := &practiceServiceMock{
		SubmitAnswerFunc: func(context.Context, practice.SubmitAnswerInput) (*practice.Evaluation, error) {
			return &practice.Evaluation{Kind: domain.KindSuccess, Correct: true, Word: hund}, nil
		},
	}
	h := NewPracticeHandler(svc, slog.Default())

	rec := httptest.NewRecorder()
	h.Answer(rec, httptest.NewRequest(http.MethodPost, "/api/practice/answer",
		strings.NewReader(`{"level":"A1.1","deutsch":"Hund","english":"dog","answer":"Hund"}`)))

	resp := decodeBody(t, rec)
	if resp["saved"] != false || resp["warning"] != unsavedWarning {
		t.Errorf("body = %v", resp)
	}
}

func TestPracticeAnswer_CorrectionPatch(t *testing.T) {
	t.Parallel()

	svc := &practiceServiceMock{
		SubmitAnswerFunc: func(context.Context, practice.SubmitAnswerInput) (*practice.Evaluation, error) {
			return &practice.Evaluation{Kind: domain.KindCorrectionSubmitted, Word: hund, Saved: true}, nil
		},
	}
	h := NewPracticeHandler(svc, slog.Default())

	body := `{"level":"A1.1","artikel":"der","deutsch":"Hund","english":"dog","answer":"hound","correction":{"english":"hound"}}`
	rec := httptest.NewRecorder()
	h.Answer(rec, httptest.NewRequest(http.MethodPost, "/api/practice/answer", strings.NewReader(body)))

	in := svc.answerCalls[0]
	if in.Correction == nil || in.Correction.English == nil || *in.Correction.English != "hound" || in.Correction.German != nil {
		t.Errorf("correction = %+v", in.Correction)
	}
}

func TestPracticeAnswer_InvalidJSON(t *testing.T) {
	t.Parallel()

	h := NewPracticeHandler(&practiceServiceMock{}, slog.Default())

	rec := httptest.NewRecorder()
	h.Answer(rec, httptest.NewRequest(http.MethodPost, "/api/practice/answer", strings.NewReader(`{"level":`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPracticeHandler_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "validation",
			err:      domain.NewValidationErrors([]domain.FieldError{{Field: "level", Message: "required"}, {Field: "english", Message: "required"}}),
			wantCode: http.StatusBadRequest,
		},
		{name: "level not found", err: fmt.Errorf("submit answer: %w", domain.ErrLevelNotFound), wantCode: http.StatusNotFound, wantMsg: "level not found"},
		{name: "word not found", err: domain.ErrWordNotFound, wantCode: http.StatusNotFound, wantMsg: "word not found"},
		{name: "collision", err: domain.ErrAlreadyExists, wantCode: http.StatusConflict},
		{name: "internal", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantMsg: "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &practiceServiceMock{
				SubmitAnswerFunc: func(context.Context, practice.SubmitAnswerInput) (*practice.Evaluation, error) {
					return nil, tt.err
				},
			}
			h := NewPracticeHandler(svc, slog.Default())

			rec := httptest.NewRecorder()
			h.Answer(rec, httptest.NewRequest(http.MethodPost, "/api/practice/answer", strings.NewReader(`{}`)))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			body := decodeBody(t, rec)
			if tt.wantMsg != "" && body["error"] != tt.wantMsg {
				t.Errorf("error = %v, want %q", body["error"], tt.wantMsg)
			}
			if tt.name == "validation" {
				if fields, _ := body["fields"].([]any); len(fields) != 2 {
					t.Errorf("fields = %v", body["fields"])
				}
			}
		})
	}
}

func TestPracticeCorrection(t *testing.T) {
	t.Parallel()

	var got practice.CorrectionInput
	svc := &practiceServiceMock{
		SubmitCorrectionFunc: func(_ context.Context, in practice.CorrectionInput) (*practice.Evaluation, error) {
			got = in
			return &practice.Evaluation{
				Kind:    domain.KindCorrectionSubmitted,
				Word:    domain.WordRecord{Artikel: "der", Deutsch: "Hund", English: "hound"},
				Changes: []domain.FieldChange{{Field: "english", Original: "dog", Corrected: "hound"}},
				Saved:   true,
				Attempt: domain.Attempt{
					ID:            attemptID,
					Level:         in.Level,
					Word:          in.Word,
					Kind:          domain.KindCorrectionSubmitted,
					UserAnswer:    in.UserAnswer,
					Correction:    true,
					Changes:       []domain.FieldChange{{Field: "english", Original: "dog", Corrected: "hound"}},
					UpdateSuccess: true,
					CreatedAt:     attemptAt,
				},
			}, nil
		},
	}
	h := NewPracticeHandler(svc, slog.Default())

	body := `{"level":"A1.1","artikel":"der","deutsch":"Hund","english":"dog","user_answer":"hound",
		"correction":{"english":"hound","example_sentence":"Der Hund bellt."}}`
	rec := httptest.NewRecorder()
	h.Correction(rec, httptest.NewRequest(http.MethodPost, "/api/practice/correction", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if got.UserAnswer != "hound" || *got.Patch.English != "hound" || *got.Patch.Example != "Der Hund bellt." {
		t.Errorf("input = %+v", got)
	}
	resp := decodeBody(t, rec)
	details, _ := resp["correction_details"].([]any)
	if len(details) != 1 || details[0].(map[string]any)["corrected"] != "hound" {
		t.Errorf("correction_details = %v", resp["correction_details"])
	}
	if resp["user_answer"] != "hound" || resp["correct_answer"] != "Hund" || resp["english"] != "hound" {
		t.Errorf("body = %v", resp)
	}

	metrics, ok := resp["metrics"].(map[string]any)
	if !ok {
		t.Fatalf("metrics missing: %v", resp)
	}
	if metrics["kind"] != "correction_submitted" || metrics["correction"] != true || metrics["id"] != attemptID.String() {
		t.Errorf("metrics = %v", metrics)
	}
	mdetails, _ := metrics["correction_details"].([]any)
	if len(mdetails) != 1 || metrics["timestamp"] != "2026-03-14T09:30:00Z" {
		t.Errorf("metrics = %v", metrics)
	}
}

func TestPracticeDifficulty(t *testing.T) {
	t.Parallel()

	svc := &practiceServiceMock{
		MarkDifficultyFunc: func(_ context.Context, in practice.DifficultyInput) (*practice.DifficultyResult, error) {
			w := hund
			if in.Hard {
				w.Difficulty = domain.DifficultyHard
			}
			return &practice.DifficultyResult{Level: in.Level, Word: w, Saved: true}, nil
		},
	}
	h := NewPracticeHandler(svc, slog.Default())

	rec := httptest.NewRecorder()
	h.Difficulty(rec, httptest.NewRequest(http.MethodPost, "/api/practice/difficulty",
		strings.NewReader(`{"level":"A1.1","artikel":"der","deutsch":"Hund","english":"dog","hard":true}`)))

	resp := decodeBody(t, rec)
	if w := resp["word"].(map[string]any); w["difficulty"] != "hard" {
		t.Errorf("word = %v", w)
	}
}

func TestPracticeReset_Routes(t *testing.T) {
	t.Parallel()

	svc := &practiceServiceMock{
		ResetFunc: func(_ context.Context, in practice.ResetInput) (*practice.ResetResult, error) {
			return &practice.ResetResult{Levels: []string{"A1.1"}, Changed: 3, Saved: true}, nil
		},
	}
	h := NewPracticeHandler(svc, slog.Default())
	router := NewRouter(Handlers{
		Health:   NewHealthHandler("test"),
		Practice: h,
		Stats:    NewStatsHandler(&statsServiceMock{}, slog.Default()),
		Attempts: NewAttemptsHandler(nil, slog.Default()),
	}, RouterOptions{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/levels/A1.1/reset?scope=COUNTS&clear_difficulty=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reset-all", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	if len(svc.resetCalls) != 2 {
		t.Fatalf("reset calls = %d", len(svc.resetCalls))
	}
	level := svc.resetCalls[0]
	if level.Level != "A1.1" || level.Scope != practice.ResetScopeCounts || !level.ClearDifficulty || level.All {
		t.Errorf("level reset = %+v", level)
	}
	if all := svc.resetCalls[1]; !all.All || all.Level != "" {
		t.Errorf("reset all = %+v", all)
	}

	resp := decodeBody(t, rec)
	if resp["changed"] != float64(3) {
		t.Errorf("body = %v", resp)
	}
}
