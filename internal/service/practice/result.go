package practice

import "github.com/heartmarshall/deutsch-vocab/internal/domain"

// NextWordStatus tells the caller what NextWord found.
type NextWordStatus string

const (
	// NextWordFound means Word holds the drawn word.
	NextWordFound NextWordStatus = "word"
	// NextWordCompleted means every word of the requested levels is mastered.
	NextWordCompleted NextWordStatus = "completed"
	// NextWordNoMatch means the filters excluded every remaining word.
	NextWordNoMatch NextWordStatus = "no_match"
)

// NextWordResult is the outcome of NextWord.
type NextWordResult struct {
	Status   NextWordStatus
	Word     *domain.LevelWord
	PoolSize int
	Levels   []string
	// Stats aggregates the requested levels.
	Stats domain.LevelStats
}

// Evaluation is the outcome of an answer or a correction.
type Evaluation struct {
	Kind    domain.EvaluationKind
	Correct bool
	Message string
	Level   string
	// Word is the record after the evaluation was applied.
	Word    domain.WordRecord
	Changes []domain.FieldChange
	// Saved is false when the change is only in memory.
	Saved   bool
	Attempt domain.Attempt
}

// DifficultyResult is the outcome of MarkDifficulty.
type DifficultyResult struct {
	Level string
	Word  domain.WordRecord
	Saved bool
}

// ResetResult is the outcome of a reset.
type ResetResult struct {
	Levels  []string
	Changed int
	Saved   bool
}
