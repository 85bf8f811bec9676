package stats

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type progressReader interface {
	Levels() []string
	LevelWords(level string) ([]domain.WordRecord, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service derives completion and difficulty metrics from the progress store.
type Service struct {
	store    progressReader
	log      *slog.Logger
	topLimit int
}

// NewService creates a stats service. topLimit is used by
// TopDifficultWords when the caller passes no positive limit.
func NewService(log *slog.Logger, store progressReader, topLimit int) *Service {
	if topLimit <= 0 {
		topLimit = 10
	}
	return &Service{
		store:    store,
		log:      log.With("service", "stats"),
		topLimit: topLimit,
	}
}

// LevelSummary is one entry of the level picker.
type LevelSummary struct {
	Level string
	Words int
	Stats domain.LevelStats
}

// Overview is the per-level and aggregated progress of a set of levels.
type Overview struct {
	Levels    []domain.LevelStats
	Aggregate domain.LevelStats
}

// LevelStats computes the progress of a single level.
func (s *Service) LevelStats(ctx context.Context, level string) (domain.LevelStats, error) {
	words, err := s.store.LevelWords(level)
	if err != nil {
		return domain.LevelStats{}, fmt.Errorf("level stats: %w", err)
	}
	return domain.StatsFor(level, words), nil
}

// Overview computes stats for the given levels and their aggregate. No
// levels means every level of the document.
func (s *Service) Overview(ctx context.Context, levels []string) (*Overview, error) {
	levels = cleanLevels(levels)
	if len(levels) == 0 {
		levels = s.store.Levels()
	}

	out := &Overview{Levels: make([]domain.LevelStats, 0, len(levels))}
	for _, level := range levels {
		st, err := s.LevelStats(ctx, level)
		if err != nil {
			return nil, err
		}
		out.Levels = append(out.Levels, st)
	}
	out.Aggregate = domain.Aggregate(out.Levels)

	s.log.DebugContext(ctx, "overview computed",
		slog.Int("levels", len(levels)),
		slog.Int("total", out.Aggregate.Total),
		slog.Bool("completed", out.Aggregate.Completed),
	)
	return out, nil
}

// TopDifficultWords returns the words of a level with the most incorrect
// answers, highest first. Words never answered wrong are left out and ties
// keep document order.
func (s *Service) TopDifficultWords(ctx context.Context, level string, limit int) ([]domain.WordRecord, error) {
	words, err := s.store.LevelWords(level)
	if err != nil {
		return nil, fmt.Errorf("top difficult words: %w", err)
	}
	if limit <= 0 {
		limit = s.topLimit
	}

	words = slices.DeleteFunc(words, func(w domain.WordRecord) bool { return w.IncorrectCount <= 0 })
	slices.SortStableFunc(words, func(a, b domain.WordRecord) int {
		return b.IncorrectCount - a.IncorrectCount
	})
	if len(words) > limit {
		words = words[:limit]
	}
	return words, nil
}

// ListLevels returns every level in document order with its word count.
func (s *Service) ListLevels(ctx context.Context) ([]LevelSummary, error) {
	levels := s.store.Levels()
	out := make([]LevelSummary, 0, len(levels))
	for _, level := range levels {
		words, err := s.store.LevelWords(level)
		if err != nil {
			return nil, fmt.Errorf("list levels: %w", err)
		}
		out = append(out, LevelSummary{
			Level: level,
			Words: len(words),
			Stats: domain.StatsFor(level, words),
		})
	}
	return out, nil
}

func cleanLevels(levels []string) []string {
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		l = strings.TrimSpace(l)
		if l != "" && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}
