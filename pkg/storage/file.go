package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/getmockd/apputil/pkg/logging"
)

// File is a Store persisted as a single JSON object mapping item names to
// values. Items are cached in memory after Init.
type File struct {
	path string
	log  *slog.Logger

	mu          sync.RWMutex
	cache       map[string]string
	initialized bool
	closed      bool

	// writeMu serializes read-modify-write cycles on the data file.
	writeMu sync.Mutex
}

// NewFile creates a file store persisted at path.
func NewFile(path string, log *slog.Logger) *File {
	if log == nil {
		log = logging.Nop()
	}
	return &File{
		path:  path,
		log:   log,
		cache: make(map[string]string),
	}
}

// Path returns the data file location.
func (s *File) Path() string {
	return s.path
}

// Init creates the data directory and loads every item into the cache.
func (s *File) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Ensure directory exists with secure permissions (0700)
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("storage: create data dir: %w", err)
	}

	items, err := s.load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.cache = items
	s.initialized = true
	s.log.Debug("storage loaded", "path", s.path, "items", len(items))
	return nil
}

// GetItem re-reads name from disk, refreshes the cache and returns it.
func (s *File) GetItem(ctx context.Context, name string) (string, bool, error) {
	if err := s.ready(ctx); err != nil {
		return "", false, err
	}

	items, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := items[name]

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.cache[name] = v
	} else {
		delete(s.cache, name)
	}
	return v, ok, nil
}

// Cached returns the cached value of name without touching the disk.
func (s *File) Cached(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.cache[name]
	return v, ok
}

// SetItem stores value under name. The cache is updated before the write
// reaches the disk.
func (s *File) SetItem(ctx context.Context, name, value string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[name] = value
	s.mu.Unlock()

	return s.update(func(items map[string]string) {
		items[name] = value
	})
}

// RemoveItem deletes name. The cache is updated before the write reaches
// the disk.
func (s *File) RemoveItem(ctx context.Context, name string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()

	return s.update(func(items map[string]string) {
		delete(items, name)
	})
}

// Clear removes every item. The cache is emptied before the write reaches
// the disk.
func (s *File) Clear(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()

	return s.update(func(items map[string]string) {
		clear(items)
	})
}

// Close marks the store closed. Safe to call multiple times.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *File) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	if !s.initialized {
		return ErrNotInitialized
	}
	return nil
}

// load reads the data file. A missing file is an empty store.
func (s *File) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("storage: read %s: %w", s.path, err)
	}

	items := make(map[string]string)
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", s.path, err)
	}
	return items, nil
}

// update applies mutate to the on-disk items and writes them back
// atomically. Items written by other processes are preserved.
func (s *File) update(mutate func(map[string]string)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	mutate(items)

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: write to temp file, then rename
	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("storage: write %s: %w", tmpFile, err)
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		_ = os.Remove(tmpFile) // Clean up temp file on failure
		return fmt.Errorf("storage: replace %s: %w", s.path, err)
	}

	s.log.Debug("storage saved", "path", s.path, "items", len(items))
	return nil
}

// Ensure File implements Store.
var _ Store = (*File)(nil)
