package practice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// eligible is the pool predicate. With a minimum error count, status is
// ignored; otherwise only unanswered and wrongly answered words qualify.
// The difficulty filter narrows either case.
func eligible(w domain.WordRecord, in NextWordInput) bool {
	var ok bool
	if in.MinIncorrectCount > 0 {
		ok = w.IncorrectCount >= in.MinIncorrectCount
	} else {
		ok = w.PendingPractice()
	}
	if ok && in.DifficultyOnly {
		ok = w.Difficulty.IsHard()
	}
	return ok
}

// SelectPool returns every eligible word of the requested levels, each
// tagged with its level, in document order. An unknown level fails the
// whole request with domain.ErrLevelNotFound.
func (s *Service) SelectPool(ctx context.Context, input NextWordInput) ([]domain.LevelWord, error) {
	pool, _, err := s.selectPool(input)
	return pool, err
}

func (s *Service) selectPool(input NextWordInput) ([]domain.LevelWord, []domain.LevelStats, error) {
	input.normalize(s.opts.DefaultLevel)

	levelWords := make([][]domain.WordRecord, len(input.Levels))
	for i, level := range input.Levels {
		words, err := s.store.LevelWords(level)
		if err != nil {
			return nil, nil, fmt.Errorf("level words: %w", err)
		}
		levelWords[i] = words
	}

	var pool []domain.LevelWord
	stats := make([]domain.LevelStats, len(input.Levels))
	for i, level := range input.Levels {
		for _, w := range levelWords[i] {
			if eligible(w, input) {
				pool = append(pool, domain.LevelWord{Level: level, Word: w})
			}
		}
		stats[i] = domain.StatsFor(level, levelWords[i])
	}
	return pool, stats, nil
}

// NextWord draws one word uniformly at random from the eligible pool. An
// empty pool is not an error: the result reports whether the levels are
// completed or the filters simply matched nothing.
func (s *Service) NextWord(ctx context.Context, input NextWordInput) (*NextWordResult, error) {
	input.normalize(s.opts.DefaultLevel)

	pool, stats, err := s.selectPool(input)
	if err != nil {
		return nil, err
	}

	result := &NextWordResult{
		PoolSize: len(pool),
		Levels:   input.Levels,
		Stats:    domain.Aggregate(stats),
	}

	switch {
	case len(pool) > 0:
		w := pool[s.pick(len(pool))]
		result.Status = NextWordFound
		result.Word = &w
	case result.Stats.Completed:
		result.Status = NextWordCompleted
	default:
		result.Status = NextWordNoMatch
	}

	s.log.DebugContext(ctx, "next word selected",
		slog.Any("levels", input.Levels),
		slog.Bool("difficulty_only", input.DifficultyOnly),
		slog.Int("min_incorrect", input.MinIncorrectCount),
		slog.Int("pool", len(pool)),
		slog.String("status", string(result.Status)),
	)
	return result, nil
}
