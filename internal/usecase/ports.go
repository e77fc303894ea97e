package usecase

import (
	"context"
	"time"

	"github.com/totegamma/iiifas/internal/domain"
)

// EventStore persists serialized events by key. Get returns domain.ErrNotFound
// for absent or expired entries. A zero ttl means no expiry.
type EventStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CollectionGateway retrieves the member list of a remote IIIF collection.
type CollectionGateway interface {
	FetchMembers(ctx context.Context, uri string) ([]domain.Member, error)
}

// Dereferencer resolves the Last-Modified time of a remote resource.
type Dereferencer interface {
	LastModified(ctx context.Context, uri string) (time.Time, error)
}
