package rest

import (
	"time"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
	"github.com/heartmarshall/deutsch-vocab/internal/service/practice"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

type wordRef struct {
	Level   string `json:"level"`
	Artikel string `json:"artikel"`
	Deutsch string `json:"deutsch"`
	English string `json:"english"`
}

func (w wordRef) identity() domain.Identity {
	return domain.Identity{Artikel: w.Artikel, Deutsch: w.Deutsch, English: w.English}
}

type correctionFields struct {
	Deutsch         *string `json:"deutsch"`
	English         *string `json:"english"`
	Artikel         *string `json:"artikel"`
	ExampleSentence *string `json:"example_sentence"`
}

type answerRequest struct {
	wordRef
	Answer            string            `json:"answer"`
	IsRetry           bool              `json:"is_retry"`
	ArticlesMandatory *bool             `json:"articles_mandatory"`
	Correction        *correctionFields `json:"correction"`
}

type correctionRequest struct {
	wordRef
	UserAnswer string           `json:"user_answer"`
	Correction correctionFields `json:"correction"`
}

type difficultyRequest struct {
	wordRef
	Hard bool `json:"hard"`
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

type wordResponse struct {
	Level           string `json:"level,omitempty"`
	Artikel         string `json:"artikel"`
	Deutsch         string `json:"deutsch"`
	English         string `json:"english"`
	Display         string `json:"display"`
	Status          string `json:"status"`
	IncorrectCount  int    `json:"incorrect_count"`
	Difficulty      string `json:"difficulty,omitempty"`
	ExampleSentence string `json:"example_sentence,omitempty"`
}

func toWordResponse(level string, w domain.WordRecord) wordResponse {
	return wordResponse{
		Level:           level,
		Artikel:         w.Artikel,
		Deutsch:         w.Deutsch,
		English:         w.English,
		Display:         w.Identity().DisplayGerman(),
		Status:          w.Status.String(),
		IncorrectCount:  w.IncorrectCount,
		Difficulty:      string(w.Difficulty),
		ExampleSentence: w.ExampleSentence,
	}
}

type statsResponse struct {
	Level                  string  `json:"level,omitempty"`
	Total                  int     `json:"total"`
	Correct                int     `json:"correct"`
	Incorrect              int     `json:"incorrect"`
	NotAnswered            int     `json:"not_answered"`
	Remaining              int     `json:"remaining"`
	Completed              bool    `json:"completed"`
	CompletionPercentage   float64 `json:"completion_percentage"`
	TotalIncorrectAttempts int     `json:"total_incorrect_attempts"`
	WordsWithErrors        int     `json:"words_with_errors"`
	MostDifficultCount     int     `json:"most_difficult_count"`
	HardWords              int     `json:"hard_words"`
}

func toStatsResponse(s domain.LevelStats) statsResponse {
	return statsResponse{
		Level:                  s.Level,
		Total:                  s.Total,
		Correct:                s.Correct,
		Incorrect:              s.Incorrect,
		NotAnswered:            s.NotAnswered,
		Remaining:              s.Remaining(),
		Completed:              s.Completed,
		CompletionPercentage:   s.CompletionPercentage(),
		TotalIncorrectAttempts: s.TotalIncorrectAttempts,
		WordsWithErrors:        s.WordsWithErrors,
		MostDifficultCount:     s.MostDifficultCount,
		HardWords:              s.HardWords,
	}
}

type attemptResponse struct {
	ID             string               `json:"id"`
	Level          string               `json:"level"`
	Artikel        string               `json:"artikel"`
	Deutsch        string               `json:"deutsch"`
	English        string               `json:"english"`
	Kind           string               `json:"kind"`
	UserAnswer     string               `json:"user_answer"`
	Correct        bool                 `json:"correct"`
	Retry          bool                 `json:"retry"`
	Correction     bool                 `json:"correction"`
	IncorrectCount int                  `json:"incorrect_count"`
	Changes        []domain.FieldChange `json:"correction_details,omitempty"`
	UpdateSuccess  bool                 `json:"update_success"`
	Timestamp      time.Time            `json:"timestamp"`
}

func toAttemptResponse(a domain.Attempt) attemptResponse {
	return attemptResponse{
		ID:             a.ID.String(),
		Level:          a.Level,
		Artikel:        a.Word.Artikel,
		Deutsch:        a.Word.Deutsch,
		English:        a.Word.English,
		Kind:           a.Kind.String(),
		UserAnswer:     a.UserAnswer,
		Correct:        a.Correct,
		Retry:          a.Retry,
		Correction:     a.Correction,
		IncorrectCount: a.IncorrectCount,
		Changes:        a.Changes,
		UpdateSuccess:  a.UpdateSuccess,
		Timestamp:      a.CreatedAt,
	}
}

func (c correctionFields) patch() practice.CorrectionPatch {
	return practice.CorrectionPatch{
		German:  c.Deutsch,
		English: c.English,
		Artikel: c.Artikel,
		Example: c.ExampleSentence,
	}
}

type evaluationResponse struct {
	Kind          string               `json:"kind"`
	Correct       bool                 `json:"correct"`
	Message       string               `json:"message"`
	CorrectAnswer string               `json:"correct_answer"`
	Artikel       string               `json:"artikel"`
	English       string               `json:"english"`
	UserAnswer    string               `json:"user_answer"`
	Word          wordResponse         `json:"word"`
	Changes       []domain.FieldChange `json:"correction_details,omitempty"`
	Metrics       attemptResponse      `json:"metrics"`
	Saved         bool                 `json:"saved"`
	Warning       string               `json:"warning,omitempty"`
}

func toEvaluationResponse(ev *practice.Evaluation) evaluationResponse {
	return evaluationResponse{
		Kind:          ev.Kind.String(),
		Correct:       ev.Correct,
		Message:       ev.Message,
		CorrectAnswer: ev.Word.Deutsch,
		Artikel:       ev.Word.Artikel,
		English:       ev.Word.English,
		UserAnswer:    ev.Attempt.UserAnswer,
		Word:          toWordResponse(ev.Level, ev.Word),
		Changes:       ev.Changes,
		Metrics:       toAttemptResponse(ev.Attempt),
		Saved:         ev.Saved,
		Warning:       warningFor(ev.Saved),
	}
}
