package store

import (
	"context"
	"sync"
)

// MemoryStore is the demo-mode session store: same contract, no durability.
// Used when no database path is configured and by gate tests.
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := rec
	s.rec = &r
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return Record{}, ErrNoSession
	}
	return *s.rec, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
