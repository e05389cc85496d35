package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"ballotbox/internal/logging"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// IndexedStore answers Contains from an in-memory identifier set instead of
// rescanning the file. The set is loaded on first use and kept in step with this
// process's own appends. Every Contains compares the file's size and mtime with
// what this process last saw and reloads if they differ. A filesystem watcher
// additionally forces a reload when the file is removed, renamed or recreated,
// since a replacement can match the old size and mtime.
//
// Like CSVStore it takes no lock across processes.
type IndexedStore struct {
	inner *CSVStore
	log   *zap.Logger

	mu     sync.Mutex
	ids    map[string]struct{}
	loaded bool
	size   int64
	mtime  time.Time

	// replaced is set by the watcher; it only ever forces extra reloads.
	replaced atomic.Bool

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

var _ Store = (*IndexedStore)(nil)

// NewIndexedStore wraps inner and starts watching the directory that holds its
// file. Call Close to stop the watcher.
func NewIndexedStore(inner *CSVStore) (*IndexedStore, error) {
	dir := filepath.Dir(inner.Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// The file may not exist yet, so watch its directory.
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	s := &IndexedStore{
		inner:   inner,
		log:     logging.Get(logging.CategoryStore),
		watcher: w,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go s.run()

	s.log.Debug("index watcher started", zap.String("dir", dir))
	return s, nil
}

// Path returns the store file location.
func (s *IndexedStore) Path() string { return s.inner.Path() }

// Append writes through to the file, then adds the identifier to the index.
func (s *IndexedStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Someone else wrote since the last stamp; stamping after our row would hide theirs.
	if s.loaded && !s.unchanged() {
		s.loaded = false
	}
	if err := s.inner.Append(ctx, rec); err != nil {
		return err
	}
	if s.loaded {
		s.ids[rec.Identifier] = struct{}{}
		if err := s.stamp(); err != nil {
			// Force a reload rather than trust a stamp we could not take.
			s.loaded = false
		}
	}
	return nil
}

// Contains consults the index, reloading it first if it is stale.
func (s *IndexedStore) Contains(ctx context.Context, identifier string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return false, err
	}
	_, ok := s.ids[identifier]
	return ok, nil
}

// Close stops the watcher. It is safe to call more than once.
func (s *IndexedStore) Close() error {
	var err error
	s.once.Do(func() {
		close(s.stopCh)
		<-s.doneCh
		err = s.watcher.Close()
		s.log.Debug("index watcher stopped")
	})
	return err
}

// refresh must be called with s.mu held.
func (s *IndexedStore) refresh(ctx context.Context) error {
	// Stat on every call: watcher events arrive late.
	if s.loaded && (s.replaced.Swap(false) || !s.unchanged()) {
		s.loaded = false
	}
	if s.loaded {
		return nil
	}

	s.replaced.Store(false)
	recs, err := s.inner.Records(ctx)
	if err != nil {
		return err
	}
	ids := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		ids[rec.Identifier] = struct{}{}
	}
	s.ids = ids
	if err := s.stamp(); err != nil {
		return err
	}
	s.loaded = true

	s.log.Debug("index loaded", zap.Int("records", len(recs)))
	return nil
}

// stamp records the file's current size and mtime. A missing file stamps as empty.
func (s *IndexedStore) stamp() error {
	size, mtime, err := s.fileState()
	if err != nil {
		return err
	}
	s.size, s.mtime = size, mtime
	return nil
}

func (s *IndexedStore) unchanged() bool {
	size, mtime, err := s.fileState()
	if err != nil {
		return false
	}
	return size == s.size && mtime.Equal(s.mtime)
}

func (s *IndexedStore) fileState() (int64, time.Time, error) {
	info, err := os.Stat(s.inner.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("stat store: %w", err)
	}
	return info.Size(), info.ModTime(), nil
}

// run flags the index when the store file is removed, renamed or created.
func (s *IndexedStore) run() {
	defer close(s.doneCh)

	name := filepath.Base(s.inner.Path())
	for {
		select {
		case <-s.stopCh:
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			s.replaced.Store(true)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("store watcher error", zap.Error(err))
			s.replaced.Store(true)
		}
	}
}
