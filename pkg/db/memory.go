package db

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStore holds values for the lifetime of the process. It backs the
// interactive session when nothing should be written to disk, and tests.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore returns an empty store whose entries never expire
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	data := v.([]byte)
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	data := make([]byte, len(value))
	copy(data, value)
	s.cache.Set(key, data, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

// Close drops every entry
func (s *MemoryStore) Close() error {
	s.cache.Flush()
	return nil
}
