package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

const snapshotTimeLayout = "20060102-150405.000000"

// Snapshotter writes timestamped copies of the document into a directory
// and prunes the oldest ones beyond a retention count.
type Snapshotter struct {
	dir    string
	prefix string
	keep   int
	now    func() time.Time
}

// NewSnapshotter creates a Snapshotter. Snapshot names start with the base
// name of docPath, e.g. "progress-20240101-120000.000000.json". keep <= 0
// disables pruning.
func NewSnapshotter(dir, docPath string, keep int) *Snapshotter {
	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	return &Snapshotter{
		dir:    dir,
		prefix: base + "-",
		keep:   keep,
		now:    time.Now,
	}
}

// Snapshot writes doc to a new timestamped file and returns its path.
func (s *Snapshotter) Snapshot(_ context.Context, doc *domain.Document) (string, error) {
	data, err := Encode(doc)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := s.prefix + s.now().UTC().Format(snapshotTimeLayout) + ".json"
	path := filepath.Join(s.dir, name)
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	if err := s.prune(); err != nil {
		return path, fmt.Errorf("prune snapshots: %w", err)
	}
	return path, nil
}

// List returns snapshot paths, oldest first.
func (s *Snapshotter) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, s.prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(s.dir, n)
	}
	return paths, nil
}

func (s *Snapshotter) prune() error {
	if s.keep <= 0 {
		return nil
	}
	paths, err := s.List()
	if err != nil {
		return err
	}
	for len(paths) > s.keep {
		if err := os.Remove(paths[0]); err != nil && !os.IsNotExist(err) {
			return err
		}
		paths = paths[1:]
	}
	return nil
}
