package store

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/totegamma/iiifas/internal/domain"
	"github.com/totegamma/iiifas/internal/usecase"
)

// MemoryStore keeps events in process. Contents are lost on restart.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	x, found := s.cache.Get(key)
	if !found {
		return nil, domain.NotFoundError{Resource: "event " + key}
	}
	value := x.([]byte)
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiration := cache.NoExpiration
	if ttl > 0 {
		expiration = ttl
	}
	s.cache.Set(key, append([]byte(nil), value...), expiration)
	return nil
}

var _ usecase.EventStore = (*MemoryStore)(nil)
