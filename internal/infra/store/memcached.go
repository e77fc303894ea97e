package store

import (
	"context"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"

	"github.com/totegamma/iiifas/internal/domain"
	"github.com/totegamma/iiifas/internal/usecase"
)

// memcached treats expirations above 30 days as unix timestamps.
const memcachedMaxRelativeTTL = 30 * 24 * time.Hour

type MemcachedStore struct {
	mc     *memcache.Client
	prefix string
}

func NewMemcachedStore(mc *memcache.Client, prefix string) *MemcachedStore {
	return &MemcachedStore{mc: mc, prefix: prefix}
}

func (s *MemcachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	item, err := s.mc.Get(s.prefix + key)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, domain.NotFoundError{Resource: "event " + key}
		}
		return nil, errors.Wrap(err, "MemcachedStore.Get")
	}
	return item.Value, nil
}

func (s *MemcachedStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	item := &memcache.Item{
		Key:        s.prefix + key,
		Value:      value,
		Expiration: memcachedExpiration(ttl, time.Now()),
	}
	if err := s.mc.Set(item); err != nil {
		return errors.Wrap(err, "MemcachedStore.Put")
	}
	return nil
}

func memcachedExpiration(ttl time.Duration, now time.Time) int32 {
	if ttl <= 0 {
		return 0
	}
	if ttl > memcachedMaxRelativeTTL {
		return int32(now.Add(ttl).Unix())
	}
	return int32(max(1, ttl/time.Second))
}

var _ usecase.EventStore = (*MemcachedStore)(nil)
