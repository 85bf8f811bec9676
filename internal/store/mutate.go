package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// Update applies fn to one word as a single atomic change followed by one
// save. fn may change any field, including the identity; a new identity
// that collides with another word of the level is rejected with
// domain.ErrAlreadyExists. If fn returns an error or leaves the word
// unchanged, nothing is saved.
//
// The returned record is the word after the update. A failed save is
// reported with domain.ErrStorageUnavailable while the change stays in
// memory.
func (s *ProgressStore) Update(
	ctx context.Context,
	level string,
	id domain.Identity,
	fn func(w *domain.WordRecord) error,
) (domain.WordRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, ok := s.doc.Words(level)
	if !ok {
		return domain.WordRecord{}, fmt.Errorf("%q: %w", level, domain.ErrLevelNotFound)
	}
	i := domain.IndexOf(words, id)
	if i < 0 {
		return domain.WordRecord{}, fmt.Errorf("%s in %q: %w", id.DisplayGerman(), level, domain.ErrWordNotFound)
	}

	before := words[i]
	after := before
	if err := fn(&after); err != nil {
		return before, err
	}
	if after == before {
		return after, nil
	}

	if newID := after.Identity(); newID != id {
		for j := range words {
			if j != i && words[j].Matches(newID) {
				return before, fmt.Errorf("%s in %q: %w", newID.DisplayGerman(), level, domain.ErrAlreadyExists)
			}
		}
	}

	words[i] = after
	return after, s.saveLocked(ctx)
}

// UpdateStatus sets the status of one word.
func (s *ProgressStore) UpdateStatus(ctx context.Context, level string, id domain.Identity, status domain.WordStatus) (domain.WordRecord, error) {
	if !status.IsValid() {
		return domain.WordRecord{}, domain.NewValidationError("status", "must be notyetanswered, correct or incorrect")
	}
	return s.Update(ctx, level, id, func(w *domain.WordRecord) error {
		w.Status = status
		return nil
	})
}

// IncrementIncorrectCount adds one to the word's incorrect count and
// returns the new value, or 0 when the word does not exist.
func (s *ProgressStore) IncrementIncorrectCount(ctx context.Context, level string, id domain.Identity) (int, error) {
	w, err := s.Update(ctx, level, id, func(w *domain.WordRecord) error {
		w.IncorrectCount++
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}
	return w.IncorrectCount, err
}

// MarkDifficulty sets or clears the "hard" flag. Repeating the call with
// the same value is a no-op.
func (s *ProgressStore) MarkDifficulty(ctx context.Context, level string, id domain.Identity, hard bool) (domain.WordRecord, error) {
	return s.Update(ctx, level, id, func(w *domain.WordRecord) error {
		if hard {
			w.Difficulty = domain.DifficultyHard
		} else {
			w.Difficulty = domain.DifficultyNone
		}
		return nil
	})
}

// ResetOptions selects what a reset touches.
type ResetOptions struct {
	// CountsOnly zeroes incorrect counts and leaves statuses alone.
	CountsOnly bool
	// ClearDifficulty also removes every "hard" flag.
	ClearDifficulty bool
}

// ResetLevel resets every word of a level and saves once. A full reset sets
// status to notyetanswered and the count to 0; the difficulty flag is kept
// unless ClearDifficulty is set. It returns the number of words changed.
func (s *ProgressStore) ResetLevel(ctx context.Context, level string, opts ResetOptions) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, ok := s.doc.Words(level)
	if !ok {
		return 0, fmt.Errorf("%q: %w", level, domain.ErrLevelNotFound)
	}

	changed := resetWords(words, opts)
	s.log.InfoContext(ctx, "level reset",
		slog.String("level", level),
		slog.Int("changed", changed),
		slog.Bool("counts_only", opts.CountsOnly),
		slog.Bool("clear_difficulty", opts.ClearDifficulty),
	)
	if changed == 0 {
		return 0, nil
	}
	return changed, s.saveLocked(ctx)
}

// ResetAll resets every level and saves once.
func (s *ProgressStore) ResetAll(ctx context.Context, opts ResetOptions) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, level := range s.doc.Levels() {
		words, _ := s.doc.Words(level)
		changed += resetWords(words, opts)
	}

	s.log.InfoContext(ctx, "all levels reset",
		slog.Int("changed", changed),
		slog.Bool("counts_only", opts.CountsOnly),
		slog.Bool("clear_difficulty", opts.ClearDifficulty),
	)
	if changed == 0 {
		return 0, nil
	}
	return changed, s.saveLocked(ctx)
}

func resetWords(words []domain.WordRecord, opts ResetOptions) int {
	changed := 0
	for i := range words {
		before := words[i]
		w := &words[i]
		w.IncorrectCount = 0
		if !opts.CountsOnly {
			w.Status = domain.StatusNotYetAnswered
		}
		if opts.ClearDifficulty {
			w.Difficulty = domain.DifficultyNone
		}
		if *w != before {
			changed++
		}
	}
	return changed
}
