package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

const lockRetryDelay = 25 * time.Millisecond

// ErrLocked is returned when the file lock could not be acquired in time.
var ErrLocked = errors.New("progress file is locked by another process")

// File reads and writes one progress document on disk. Writes go to a
// temporary file in the same directory and are renamed into place, so
// readers never see a partial document. A sidecar lock file guards against
// concurrent writers in other processes.
type File struct {
	path        string
	lock        *flock.Flock
	lockTimeout time.Duration
}

// NewFile creates a File for path. lockTimeout bounds every lock
// acquisition; zero means a single non-blocking attempt.
func NewFile(path string, lockTimeout time.Duration) *File {
	return &File{
		path:        path,
		lock:        flock.New(path + ".lock"),
		lockTimeout: lockTimeout,
	}
}

// Path returns the document path.
func (f *File) Path() string { return f.path }

// Load reads and decodes the document. A missing file is reported with an
// error matching fs.ErrNotExist.
func (f *File) Load(ctx context.Context) (*domain.Document, LoadInfo, error) {
	data, err := f.read(ctx)
	if err != nil {
		return nil, LoadInfo{}, err
	}

	doc, info, err := Decode(data)
	if err != nil {
		return nil, info, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return doc, info, nil
}

// Save encodes the document and atomically replaces the file.
func (f *File) Save(ctx context.Context, doc *domain.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	unlock, err := f.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	return writeAtomic(f.path, data)
}

// Ping checks that the directory holding the document is usable.
func (f *File) Ping(_ context.Context) error {
	dir := filepath.Dir(f.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", dir)
	}
	return nil
}

func (f *File) read(ctx context.Context) ([]byte, error) {
	if _, err := os.Stat(f.path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.path, err)
	}

	unlock, err := f.acquire(ctx, false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return data, nil
}

func (f *File) acquire(ctx context.Context, exclusive bool) (func(), error) {
	var (
		ok  bool
		err error
	)
	if f.lockTimeout <= 0 {
		if exclusive {
			ok, err = f.lock.TryLock()
		} else {
			ok, err = f.lock.TryRLock()
		}
	} else {
		lockCtx, cancel := context.WithTimeout(ctx, f.lockTimeout)
		defer cancel()
		if exclusive {
			ok, err = f.lock.TryLockContext(lockCtx, lockRetryDelay)
		} else {
			ok, err = f.lock.TryRLockContext(lockCtx, lockRetryDelay)
		}
	}

	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() { _ = f.lock.Unlock() }, nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
