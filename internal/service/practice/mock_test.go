package practice

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/heartmarshall/deutsch-vocab/internal/adapter/jsonfile"
	"github.com/heartmarshall/deutsch-vocab/internal/domain"
	"github.com/heartmarshall/deutsch-vocab/internal/store"
)

// attemptJournalMock is a hand-written moq-style mock of attemptJournal.
type attemptJournalMock struct {
	RecordFunc func(ctx context.Context, attempt domain.Attempt) error

	mu    sync.Mutex
	calls []domain.Attempt
}

func (m *attemptJournalMock) Record(ctx context.Context, attempt domain.Attempt) error {
	m.mu.Lock()
	m.calls = append(m.calls, attempt)
	m.mu.Unlock()
	if m.RecordFunc == nil {
		return nil
	}
	return m.RecordFunc(ctx, attempt)
}

func (m *attemptJournalMock) RecordCalls() []domain.Attempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// memDisk keeps the document in memory and can be told to fail saves.
type memDisk struct {
	mu       sync.Mutex
	doc      *domain.Document
	saveErr  error
	saves    int
	snapshot int
}

func (d *memDisk) Load(context.Context) (*domain.Document, jsonfile.LoadInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Clone(), jsonfile.LoadInfo{}, nil
}

func (d *memDisk) Save(_ context.Context, doc *domain.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saves++
	if d.saveErr != nil {
		return d.saveErr
	}
	d.doc = doc.Clone()
	return nil
}

func (d *memDisk) Ping(context.Context) error { return nil }

func (d *memDisk) Snapshot(context.Context, *domain.Document) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshot++
	return "snapshot.json", nil
}

// newTestService builds a Service over a real store loaded from doc.
func newTestService(t *testing.T, doc *domain.Document, opts Options) (*Service, *store.ProgressStore, *memDisk, *attemptJournalMock) {
	t.Helper()

	disk := &memDisk{doc: doc}
	st := store.New(slog.Default(), disk, disk)
	if _, err := st.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	journal := &attemptJournalMock{}
	svc := NewService(slog.Default(), st, journal, opts)
	svc.pick = func(int) int { return 0 }
	return svc, st, disk, journal
}

func ptr[T any](v T) *T { return &v }
