// Package store owns the in-memory progress document. It is the only
// place that mutates word records; every mutation is written through to
// the persister before the call returns.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/heartmarshall/deutsch-vocab/internal/adapter/jsonfile"
	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type persister interface {
	Load(ctx context.Context) (*domain.Document, jsonfile.LoadInfo, error)
	Save(ctx context.Context, doc *domain.Document) error
	Ping(ctx context.Context) error
}

type snapshotter interface {
	Snapshot(ctx context.Context, doc *domain.Document) (string, error)
}

// ---------------------------------------------------------------------------
// ProgressStore
// ---------------------------------------------------------------------------

// ProgressStore holds the progress document behind a read/write lock.
// Readers run concurrently; each mutation and its save run under the
// write lock, so saves never interleave and readers never see a
// half-applied change.
//
// When a save fails the in-memory change is kept and the method returns
// an error wrapping domain.ErrStorageUnavailable alongside its result.
//
// A file that exists but cannot be loaded is never overwritten by Save
// until a mutation or a successful Load replaces the empty document.
type ProgressStore struct {
	mu    sync.RWMutex
	doc   *domain.Document
	disk  persister
	snaps snapshotter
	log   *slog.Logger

	// loadFailed is set when the file exists but could not be read.
	loadFailed bool
	// dirty is set while the in-memory document has changes the last save
	// did not write.
	dirty bool
}

// ErrNotLoaded is returned by Save while the store holds the
// empty fallback document of a failed load.
var ErrNotLoaded = errors.New("progress file failed to load, refusing to overwrite it")

// New creates a store with an empty document. Call Load to read the file.
// snaps may be nil when snapshots are disabled.
func New(log *slog.Logger, disk persister, snaps snapshotter) *ProgressStore {
	return &ProgressStore{
		doc:   domain.NewDocument(),
		disk:  disk,
		snaps: snaps,
		log:   log.With("component", "progress_store"),
	}
}

// Load replaces the in-memory document with the persisted one. A missing
// or unreadable file leaves an empty document; the error is logged and
// returned for information only, the store stays usable.
func (s *ProgressStore) Load(ctx context.Context) (jsonfile.LoadInfo, error) {
	doc, info, err := s.disk.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = false
	if err != nil {
		s.doc = domain.NewDocument()
		s.loadFailed = !errors.Is(err, fs.ErrNotExist)
		if s.loadFailed {
			s.log.ErrorContext(ctx, "progress file unreadable, starting empty", slog.String("error", err.Error()))
		} else {
			s.log.WarnContext(ctx, "progress file not found, starting empty")
		}
		return info, fmt.Errorf("load progress: %w", err)
	}

	s.doc = doc
	s.loadFailed = false
	s.log.InfoContext(ctx, "progress loaded",
		slog.Int("levels", info.Levels),
		slog.Int("words", info.Words),
		slog.Int("format_version", info.Version),
	)
	if info.Migrated() {
		s.log.InfoContext(ctx, "progress normalised on load",
			slog.Int("legacy", info.Legacy),
			slog.Int("normalized", info.Normalized),
			slog.Int("duplicates", info.Duplicates),
		)
	}
	return info, nil
}

// Save writes the current document. It returns ErrNotLoaded instead of
// replacing a file that failed to load.
func (s *ProgressStore) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadFailed {
		return ErrNotLoaded
	}
	return s.saveLocked(ctx)
}

// Flush writes the document only when an earlier save failed and left
// changes in memory. It reports whether a write was attempted.
func (s *ProgressStore) Flush(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return false, nil
	}
	return true, s.saveLocked(ctx)
}

// Ping reports whether the backing storage is reachable.
func (s *ProgressStore) Ping(ctx context.Context) error {
	return s.disk.Ping(ctx)
}

// Snapshot writes a timestamped copy of the current document.
func (s *ProgressStore) Snapshot(ctx context.Context) (string, error) {
	if s.snaps == nil {
		return "", errors.New("snapshots are not configured")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.snaps.Snapshot(ctx, s.doc)
	if err != nil {
		return path, fmt.Errorf("snapshot: %w", err)
	}
	s.log.InfoContext(ctx, "progress snapshot written", slog.String("path", path))
	return path, nil
}

// saveLocked must be called with s.mu held for writing. Mutations call it
// after changing the document, which also lifts the failed-load guard.
func (s *ProgressStore) saveLocked(ctx context.Context) error {
	s.loadFailed = false
	if err := s.disk.Save(ctx, s.doc); err != nil {
		s.dirty = true
		s.log.ErrorContext(ctx, "progress save failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	s.dirty = false
	return nil
}
