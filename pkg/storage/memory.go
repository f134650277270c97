package storage

import (
	"context"
	"sync"
)

// Memory is a thread-safe in-memory Store.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

// Init is a no-op; the store is usable right away.
func (s *Memory) Init(ctx context.Context) error {
	return ctx.Err()
}

// GetItem returns the item stored under name.
func (s *Memory) GetItem(_ context.Context, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[name]
	return v, ok, nil
}

// SetItem stores value under name.
func (s *Memory) SetItem(_ context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[name] = value
	return nil
}

// RemoveItem deletes the item stored under name.
func (s *Memory) RemoveItem(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, name)
	return nil
}

// Clear removes every item.
func (s *Memory) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]string)
	return nil
}

// Close is a no-op.
func (s *Memory) Close() error {
	return nil
}

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)
