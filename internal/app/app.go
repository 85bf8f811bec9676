package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/deutsch-vocab/internal/adapter/jsonfile"
	"github.com/heartmarshall/deutsch-vocab/internal/adapter/postgres"
	"github.com/heartmarshall/deutsch-vocab/internal/adapter/postgres/attemptlog"
	"github.com/heartmarshall/deutsch-vocab/internal/config"
	"github.com/heartmarshall/deutsch-vocab/internal/domain"
	"github.com/heartmarshall/deutsch-vocab/internal/scheduler"
	"github.com/heartmarshall/deutsch-vocab/internal/service/practice"
	"github.com/heartmarshall/deutsch-vocab/internal/service/stats"
	"github.com/heartmarshall/deutsch-vocab/internal/store"
	"github.com/heartmarshall/deutsch-vocab/internal/transport/middleware"
	"github.com/heartmarshall/deutsch-vocab/internal/transport/rest"
)

const readHeaderTimeout = 5 * time.Second

type attemptJournal interface {
	Record(ctx context.Context, attempt domain.Attempt) error
	ListRecent(ctx context.Context, level string, limit int) ([]domain.Attempt, error)
}

// Run is the application entry point. It loads configuration, opens the
// progress store and the optional attempt journal, starts the snapshot
// scheduler and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store_path", cfg.Store.Path),
		slog.Bool("journal", cfg.Journal.Enabled()),
	)

	// Store.
	progress := OpenStore(cfg.Store, logger)
	if _, err := progress.Load(ctx); err != nil {
		// The store logs the cause and keeps serving an empty document.
		logger.Warn("serving without persisted progress")
	}

	components := []rest.Component{{Name: "store", Pinger: progress}}

	// Journal.
	var journal attemptJournal
	if cfg.Journal.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.Journal)
		if err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		defer pool.Close()

		if cfg.Journal.Migrate {
			if err := postgres.Migrate(ctx, pool, logger); err != nil {
				return fmt.Errorf("journal: %w", err)
			}
		}
		journal = attemptlog.New(pool)
		components = append(components, rest.Component{Name: "journal", Pinger: pool})
	}

	// Services.
	practiceSvc := practice.NewService(logger, progress, journal, practice.Options{
		DefaultLevel:             cfg.Practice.DefaultLevel,
		ArticlesMandatory:        cfg.Practice.ArticlesMandatory,
		SnapshotBeforeCorrection: cfg.Store.SnapshotBeforeCorrection,
	})
	statsSvc := stats.NewService(logger, progress, cfg.Practice.TopDifficultLimit)

	// Background jobs.
	sched := scheduler.New(logger, progress, cfg.Store.BackupInterval)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	// Transport.
	handler := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(BuildVersion(), components...),
		Practice: rest.NewPracticeHandler(practiceSvc, logger),
		Stats:    rest.NewStatsHandler(statsSvc, logger),
		Attempts: rest.NewAttemptsHandler(journal, logger),
	}, rest.RouterOptions{
		Global: []middleware.Middleware{
			middleware.RequestID(),
			middleware.Logger(logger),
			middleware.Recovery(logger),
			middleware.CORS(cfg.CORS),
		},
		Answers: limiter.Limit(cfg.RateLimit.AnswersPerMinute),
	})

	if err := serve(ctx, cfg.Server, handler, logger); err != nil {
		return err
	}

	// Changes kept in memory after a failed save get one more chance.
	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.LockTimeout+time.Second)
	defer cancel()
	if flushed, err := progress.Flush(flushCtx); err != nil {
		logger.Error("final progress save failed", slog.String("error", err.Error()))
	} else if flushed {
		logger.Info("unsaved progress flushed")
	}

	logger.Info("application stopped")
	return nil
}

// OpenStore builds a progress store over the configured file and snapshot
// directory. The caller loads it.
func OpenStore(cfg config.StoreConfig, logger *slog.Logger) *store.ProgressStore {
	file := jsonfile.NewFile(cfg.Path, cfg.LockTimeout)
	snaps := jsonfile.NewSnapshotter(cfg.BackupDir, cfg.Path, cfg.BackupKeep)
	return store.New(logger, file, snaps)
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("http server listening", slog.String("address", listener.Addr().String()))

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}
