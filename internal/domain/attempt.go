package domain

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationKind classifies the outcome of an answer or correction.
type EvaluationKind string

const (
	KindSuccess             EvaluationKind = "success"
	KindRetryWithCorrection EvaluationKind = "retry_with_correction"
	KindErrorWithCorrection EvaluationKind = "error_with_correction"
	KindCorrectionSubmitted EvaluationKind = "correction_submitted"
)

func (k EvaluationKind) String() string { return string(k) }

func (k EvaluationKind) IsValid() bool {
	switch k {
	case KindSuccess, KindRetryWithCorrection, KindErrorWithCorrection, KindCorrectionSubmitted:
		return true
	}
	return false
}

// FieldChange records one field rewritten by a correction.
type FieldChange struct {
	Field     string `json:"field"`
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

// Attempt is the metrics record emitted for every evaluated answer or
// submitted correction. It is returned to the caller and appended to the
// attempt journal when one is configured.
type Attempt struct {
	ID             uuid.UUID
	Level          string
	Word           Identity
	Kind           EvaluationKind
	UserAnswer     string
	Correct        bool
	Retry          bool
	Correction     bool
	IncorrectCount int
	Changes        []FieldChange
	UpdateSuccess  bool
	CreatedAt      time.Time
}
