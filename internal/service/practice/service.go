package practice

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
	"github.com/heartmarshall/deutsch-vocab/internal/store"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type progressStore interface {
	Levels() []string
	HasLevel(level string) bool
	LevelWords(level string) ([]domain.WordRecord, error)
	FindWord(level string, id domain.Identity) (domain.WordRecord, error)
	Update(ctx context.Context, level string, id domain.Identity, fn func(w *domain.WordRecord) error) (domain.WordRecord, error)
	UpdateStatus(ctx context.Context, level string, id domain.Identity, status domain.WordStatus) (domain.WordRecord, error)
	IncrementIncorrectCount(ctx context.Context, level string, id domain.Identity) (int, error)
	MarkDifficulty(ctx context.Context, level string, id domain.Identity, hard bool) (domain.WordRecord, error)
	ResetLevel(ctx context.Context, level string, opts store.ResetOptions) (int, error)
	ResetAll(ctx context.Context, opts store.ResetOptions) (int, error)
	Snapshot(ctx context.Context) (string, error)
}

type attemptJournal interface {
	Record(ctx context.Context, attempt domain.Attempt) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Options tunes practice behaviour.
type Options struct {
	// DefaultLevel is used when a request names no level.
	DefaultLevel string
	// ArticlesMandatory rejects bare answers for words that have an article,
	// unless the request overrides it.
	ArticlesMandatory bool
	// SnapshotBeforeCorrection writes a snapshot before applying a
	// user-suggested correction.
	SnapshotBeforeCorrection bool
}

// Service implements word selection, answer evaluation, corrections and
// resets on top of the progress store.
type Service struct {
	store   progressStore
	journal attemptJournal
	log     *slog.Logger
	opts    Options

	pick func(n int) int
	now  func() time.Time
}

// NewService creates a practice service. journal may be nil.
func NewService(log *slog.Logger, store progressStore, journal attemptJournal, opts Options) *Service {
	if opts.DefaultLevel == "" {
		opts.DefaultLevel = domain.DefaultLevel
	}
	return &Service{
		store:   store,
		journal: journal,
		log:     log.With("service", "practice"),
		opts:    opts,
		pick:    rand.IntN,
		now:     time.Now,
	}
}

// record appends an attempt to the journal. Journal failures never fail the
// caller.
func (s *Service) record(ctx context.Context, attempt domain.Attempt) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(ctx, attempt); err != nil {
		s.log.WarnContext(ctx, "attempt journal write failed",
			slog.String("attempt_id", attempt.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
