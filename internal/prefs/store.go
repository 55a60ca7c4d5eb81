// Package prefs persists per-device optional-codec preference settings.
package prefs

import (
	"context"
	"errors"
	"sync"

	"a2dp-bridge/internal/a2dp"
)

// ErrClosed is returned by stores after Close.
var ErrClosed = errors.New("prefs: store closed")

// Store reads and writes the optional-codec preference per device address.
// Implementations must be safe for concurrent use. Get returns
// OptionalCodecsPrefUnknown for devices without a stored setting.
type Store interface {
	Get(ctx context.Context, addr a2dp.Address) (a2dp.OptionalCodecsPref, error)
	Set(ctx context.Context, addr a2dp.Address, pref a2dp.OptionalCodecsPref) error
	Close() error
}

// MemoryStore is an in-memory Store. Suitable for tests and setups without a
// persistence path configured.
type MemoryStore struct {
	mu     sync.RWMutex
	prefs  map[a2dp.Address]a2dp.OptionalCodecsPref
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[a2dp.Address]a2dp.OptionalCodecsPref)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, addr a2dp.Address) (a2dp.OptionalCodecsPref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return a2dp.OptionalCodecsPrefUnknown, ErrClosed
	}
	if p, ok := s.prefs[addr]; ok {
		return p, nil
	}
	return a2dp.OptionalCodecsPrefUnknown, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, addr a2dp.Address, pref a2dp.OptionalCodecsPref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.prefs[addr] = pref
	return nil
}

// Close implements Store. Redundant calls are allowed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
