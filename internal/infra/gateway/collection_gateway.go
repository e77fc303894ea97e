package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/totegamma/iiifas/client"
	"github.com/totegamma/iiifas/internal/domain"
	"github.com/totegamma/iiifas/internal/usecase"
)

const collectionAccept = "application/ld+json, application/json"

type CollectionGateway struct {
	client *client.Client
}

func NewCollectionGateway(cl *client.Client) *CollectionGateway {
	return &CollectionGateway{client: cl}
}

// FetchMembers returns members followed by manifests. A document with
// neither is an empty collection.
func (g *CollectionGateway) FetchMembers(ctx context.Context, uri string) ([]domain.Member, error) {
	body, err := g.client.Fetch(ctx, uri, collectionAccept)
	if err != nil {
		slog.ErrorContext(
			ctx, "failed to fetch collection",
			slog.String("module", "gateway"),
			slog.String("uri", uri),
			slog.String("error", err.Error()),
		)
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) {
			return nil, domain.RemoteFetchError{URI: uri, Status: statusErr.Code}
		}
		return nil, domain.RemoteFetchError{URI: uri, Err: err}
	}

	var collection domain.Collection
	if err := json.Unmarshal(body, &collection); err != nil {
		return nil, domain.RemoteFetchError{URI: uri, Err: err}
	}

	members := collection.AllMembers()
	slog.DebugContext(
		ctx, "fetched collection",
		slog.String("module", "gateway"),
		slog.String("uri", uri),
		slog.Int("members", len(members)),
	)
	return members, nil
}

var _ usecase.CollectionGateway = (*CollectionGateway)(nil)
