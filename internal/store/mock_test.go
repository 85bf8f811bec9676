package store

import (
	"context"
	"sync"

	"github.com/heartmarshall/deutsch-vocab/internal/adapter/jsonfile"
	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// persisterMock is a hand-written moq-style mock of persister.
type persisterMock struct {
	LoadFunc func(ctx context.Context) (*domain.Document, jsonfile.LoadInfo, error)
	SaveFunc func(ctx context.Context, doc *domain.Document) error
	PingFunc func(ctx context.Context) error

	mu        sync.Mutex
	saveCalls []*domain.Document
}

func (m *persisterMock) Load(ctx context.Context) (*domain.Document, jsonfile.LoadInfo, error) {
	if m.LoadFunc == nil {
		return domain.NewDocument(), jsonfile.LoadInfo{}, nil
	}
	return m.LoadFunc(ctx)
}

func (m *persisterMock) Save(ctx context.Context, doc *domain.Document) error {
	m.mu.Lock()
	m.saveCalls = append(m.saveCalls, doc.Clone())
	m.mu.Unlock()
	if m.SaveFunc == nil {
		return nil
	}
	return m.SaveFunc(ctx, doc)
}

func (m *persisterMock) Ping(ctx context.Context) error {
	if m.PingFunc == nil {
		return nil
	}
	return m.PingFunc(ctx)
}

// SaveCalls returns the documents passed to Save, copied at call time.
func (m *persisterMock) SaveCalls() []*domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}

type snapshotterMock struct {
	SnapshotFunc func(ctx context.Context, doc *domain.Document) (string, error)
}

func (m *snapshotterMock) Snapshot(ctx context.Context, doc *domain.Document) (string, error) {
	return m.SnapshotFunc(ctx, doc)
}
