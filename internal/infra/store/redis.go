package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/iiifas/internal/domain"
	"github.com/totegamma/iiifas/internal/usecase"
)

// RedisStore keeps events in redis; ttl maps to the key expiry.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.NotFoundError{Resource: "event " + key}
		}
		return nil, errors.Wrap(err, "RedisStore.Get")
	}
	return value, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.rdb.Set(ctx, s.prefix+key, value, ttl).Err()
	if err != nil {
		return errors.Wrap(err, "RedisStore.Put")
	}
	return nil
}

var _ usecase.EventStore = (*RedisStore)(nil)
