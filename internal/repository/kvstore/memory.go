package kvstore

import (
	"context"

	cache "github.com/patrickmn/go-cache"
)

// MemoryStore is the default backend: a process-local store matching the
// single-device deployment of the source application. Also the fixture for
// service tests.
type MemoryStore struct {
	c *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.c.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) RemoveMany(_ context.Context, keys []string) error {
	for _, k := range keys {
		s.c.Delete(k)
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
