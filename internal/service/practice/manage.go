package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
	"github.com/heartmarshall/deutsch-vocab/internal/store"
)

// MarkDifficulty sets or clears the "hard" flag of a word. Marking twice is
// a no-op.
func (s *Service) MarkDifficulty(ctx context.Context, input DifficultyInput) (*DifficultyResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	w, err := s.store.MarkDifficulty(ctx, input.Level, input.Word, input.Hard)
	saved := true
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, fmt.Errorf("mark difficulty: %w", err)
		}
		saved = false
	}

	s.log.InfoContext(ctx, "difficulty marked",
		slog.String("level", input.Level),
		slog.String("word", input.Word.DisplayGerman()),
		slog.Bool("hard", input.Hard),
	)
	return &DifficultyResult{Level: input.Level, Word: w, Saved: saved}, nil
}

// Reset resets one level, or every level when input.All is set.
func (s *Service) Reset(ctx context.Context, input ResetInput) (*ResetResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	opts := store.ResetOptions{
		CountsOnly:      input.Scope == ResetScopeCounts,
		ClearDifficulty: input.ClearDifficulty,
	}

	var (
		changed int
		err     error
		levels  []string
	)
	if input.All {
		levels = s.store.Levels()
		changed, err = s.store.ResetAll(ctx, opts)
	} else {
		levels = []string{input.Level}
		changed, err = s.store.ResetLevel(ctx, input.Level, opts)
	}

	saved := true
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, fmt.Errorf("reset: %w", err)
		}
		saved = false
	}

	return &ResetResult{Levels: levels, Changed: changed, Saved: saved}, nil
}
