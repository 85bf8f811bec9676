package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/deutsch-vocab/internal/service/practice"
)

type practiceService interface {
	NextWord(ctx context.Context, input practice.NextWordInput) (*practice.NextWordResult, error)
	SubmitAnswer(ctx context.Context, input practice.SubmitAnswerInput) (*practice.Evaluation, error)
	SubmitCorrection(ctx context.Context, input practice.CorrectionInput) (*practice.Evaluation, error)
	MarkDifficulty(ctx context.Context, input practice.DifficultyInput) (*practice.DifficultyResult, error)
	Reset(ctx context.Context, input practice.ResetInput) (*practice.ResetResult, error)
}

// PracticeHandler serves the practice loop: word selection, answers,
// corrections, difficulty flags and resets.
type PracticeHandler struct {
	svc practiceService
	log *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(svc practiceService, logger *slog.Logger) *PracticeHandler {
	return &PracticeHandler{
		svc: svc,
		log: logger.With("handler", "practice"),
	}
}

type nextWordResponse struct {
	Status   string        `json:"status"`
	Word     *wordResponse `json:"word,omitempty"`
	PoolSize int           `json:"pool_size"`
	Levels   []string      `json:"levels"`
	Stats    statsResponse `json:"stats"`
}

// Next handles GET /api/practice/next.
func (h *PracticeHandler) Next(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.NextWord(r.Context(), practice.NextWordInput{
		Levels:            queryLevels(r),
		DifficultyOnly:    queryBool(r, "difficulty_only"),
		MinIncorrectCount: queryInt(r, "min_incorrect", 0),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := nextWordResponse{
		Status:   string(res.Status),
		PoolSize: res.PoolSize,
		Levels:   res.Levels,
		Stats:    toStatsResponse(res.Stats),
	}
	if res.Word != nil {
		wr := toWordResponse(res.Word.Level, res.Word.Word)
		resp.Word = &wr
	}
	writeJSON(w, http.StatusOK, resp)
}

// Answer handles POST /api/practice/answer.
func (h *PracticeHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	input := practice.SubmitAnswerInput{
		Level:             req.Level,
		Word:              req.identity(),
		Answer:            req.Answer,
		IsRetry:           req.IsRetry,
		ArticlesMandatory: req.ArticlesMandatory,
	}
	if req.Correction != nil {
		patch := req.Correction.patch()
		input.Correction = &patch
	}

	ev, err := h.svc.SubmitAnswer(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEvaluationResponse(ev))
}

// Correction handles POST /api/practice/correction.
func (h *PracticeHandler) Correction(w http.ResponseWriter, r *http.Request) {
	var req correctionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	ev, err := h.svc.SubmitCorrection(r.Context(), practice.CorrectionInput{
		Level:      req.Level,
		Word:       req.identity(),
		Patch:      req.Correction.patch(),
		UserAnswer: req.UserAnswer,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEvaluationResponse(ev))
}

type difficultyResponse struct {
	Word    wordResponse `json:"word"`
	Saved   bool         `json:"saved"`
	Warning string       `json:"warning,omitempty"`
}

// Difficulty handles POST /api/practice/difficulty.
func (h *PracticeHandler) Difficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.MarkDifficulty(r.Context(), practice.DifficultyInput{
		Level: req.Level,
		Word:  req.identity(),
		Hard:  req.Hard,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, difficultyResponse{
		Word:    toWordResponse(res.Level, res.Word),
		Saved:   res.Saved,
		Warning: warningFor(res.Saved),
	})
}

type resetResponse struct {
	Levels  []string `json:"levels"`
	Changed int      `json:"changed"`
	Saved   bool     `json:"saved"`
	Warning string   `json:"warning,omitempty"`
}

// ResetLevel handles POST /api/levels/{level}/reset.
func (h *PracticeHandler) ResetLevel(w http.ResponseWriter, r *http.Request) {
	h.reset(w, r, practice.ResetInput{
		Level:           r.PathValue("level"),
		Scope:           practice.ResetScope(strings.ToLower(r.URL.Query().Get("scope"))),
		ClearDifficulty: queryBool(r, "clear_difficulty"),
	})
}

// ResetAll handles POST /api/reset-all.
func (h *PracticeHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	h.reset(w, r, practice.ResetInput{
		All:             true,
		Scope:           practice.ResetScope(strings.ToLower(r.URL.Query().Get("scope"))),
		ClearDifficulty: queryBool(r, "clear_difficulty"),
	})
}

func (h *PracticeHandler) reset(w http.ResponseWriter, r *http.Request, input practice.ResetInput) {
	res, err := h.svc.Reset(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.log.InfoContext(r.Context(), "progress reset",
		slog.Any("levels", res.Levels),
		slog.Int("changed", res.Changed),
		slog.Bool("saved", res.Saved),
	)
	writeJSON(w, http.StatusOK, resetResponse{
		Levels:  res.Levels,
		Changed: res.Changed,
		Saved:   res.Saved,
		Warning: warningFor(res.Saved),
	})
}
