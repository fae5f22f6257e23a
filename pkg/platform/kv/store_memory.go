package kv

import (
	"context"
	"sync"

	"signup/pkg/platform/sentinel"
)

// InMemoryStore keeps values in a map. Safe for concurrent use.
type InMemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{values: make(map[string]string)}
}

func (s *InMemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return v, nil
}

func (s *InMemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *InMemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Keys returns the stored keys in no particular order.
func (s *InMemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}
