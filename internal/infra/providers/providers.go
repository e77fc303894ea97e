package providers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/totegamma/iiifas/client"
	"github.com/totegamma/iiifas/internal/config"
	"github.com/totegamma/iiifas/internal/infra/database"
	"github.com/totegamma/iiifas/internal/infra/gateway"
	"github.com/totegamma/iiifas/internal/infra/store"
	"github.com/totegamma/iiifas/internal/usecase"
)

const (
	memoryCleanupInterval = 10 * time.Minute
	memcachedTimeout      = 500 * time.Millisecond
)

// NewStore opens the configured event store. The returned close function
// releases the backend connection.
func NewStore(ctx context.Context, conf config.Config) (usecase.EventStore, func() error, error) {
	noop := func() error { return nil }

	slog.InfoContext(
		ctx, "opening event store",
		slog.String("module", "providers"),
		slog.String("backend", conf.Store.Backend),
	)

	switch conf.Store.Backend {
	case config.StoreMemory:
		return store.NewMemoryStore(memoryCleanupInterval), noop, nil

	case config.StoreFilesystem:
		s, err := store.NewFilesystemStore(conf.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	case config.StoreRedis:
		rdb, err := database.NewRedis(ctx, conf.Store.RedisAddr, conf.Store.RedisPassword, conf.Store.RedisDatabase())
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(rdb, conf.Store.Prefix), rdb.Close, nil

	case config.StoreMemcached:
		mc := database.NewMemcached(memcachedTimeout, conf.Store.MemcachedAddr)
		if err := mc.Ping(); err != nil {
			return nil, nil, fmt.Errorf("memcached ping %s: %w", conf.Store.MemcachedAddr, err)
		}
		return store.NewMemcachedStore(mc, conf.Store.Prefix), mc.Close, nil

	case config.StorePostgres:
		db, err := database.NewPostgres(conf.Store.PostgresDsn, conf.Verbose)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect database: %w", err)
		}
		if err := database.MigratePostgres(db); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresStore(db), sqlDB.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", conf.Store.Backend)
}

func newClient(conf config.Config, timeoutSeconds int) *client.Client {
	opts := client.Options{
		Timeout: time.Duration(timeoutSeconds) * time.Second,
	}
	if conf.Server.CacheRequests {
		opts.CacheTTL = time.Duration(conf.Server.CacheRequestsTimeout) * time.Second
	}
	return client.New(opts)
}

// NewFetchClient constructs the HTTP client that downloads the collection.
func NewFetchClient(conf config.Config) *client.Client {
	return newClient(conf, conf.Server.FetchTimeout)
}

// NewDereferenceClient constructs the HTTP client used for per-member
// Last-Modified lookups.
func NewDereferenceClient(conf config.Config) *client.Client {
	return newClient(conf, conf.Server.DereferenceTimeout)
}

// NewFeedUsecase wires the engine from configuration.
func NewFeedUsecase(conf config.Config, eventStore usecase.EventStore) *usecase.FeedUsecase {
	feed := conf.Feed()

	var deref usecase.Dereferencer
	if feed.CheckLastModified {
		deref = gateway.NewDereferenceGateway(NewDereferenceClient(conf), conf.Server.DereferenceRate)
	}

	memoizer := usecase.NewEventMemoizer(eventStore, deref, feed)
	return usecase.NewFeedUsecase(gateway.NewCollectionGateway(NewFetchClient(conf)), memoizer, feed)
}
