package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/totegamma/iiifas/client"
	"github.com/totegamma/iiifas/internal/domain"
	"github.com/totegamma/iiifas/internal/usecase"
)

var tracer = otel.Tracer("gateway")

// DereferenceGateway reads Last-Modified headers of collection members.
type DereferenceGateway struct {
	client  *client.Client
	limiter *rate.Limiter
}

// NewDereferenceGateway limits outgoing requests to perSecond; zero or less disables the limit.
func NewDereferenceGateway(cl *client.Client, perSecond float64) *DereferenceGateway {
	limit := rate.Inf
	burst := 0
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
		burst = max(1, int(perSecond))
	}
	return &DereferenceGateway{
		client:  cl,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (g *DereferenceGateway) LastModified(ctx context.Context, uri string) (time.Time, error) {
	ctx, span := tracer.Start(ctx, "Dereference.Gateway.LastModified")
	defer span.End()
	span.SetAttributes(attribute.String("uri", uri))

	if err := g.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		return time.Time{}, domain.RemoteDereferenceError{URI: uri, Reason: err.Error()}
	}

	header, err := g.client.Headers(ctx, uri)
	if err != nil {
		span.RecordError(err)
		var statusErr *client.StatusError
		if errors.As(err, &statusErr) {
			return time.Time{}, domain.RemoteDereferenceError{URI: uri, Reason: statusErr.Error()}
		}
		return time.Time{}, domain.RemoteDereferenceError{URI: uri, Reason: err.Error()}
	}

	value := header.Get("Last-Modified")
	if value == "" {
		return time.Time{}, domain.RemoteDereferenceError{URI: uri, Reason: "no last-modified header"}
	}

	t, err := ParseLastModified(value)
	if err != nil {
		span.RecordError(err)
		return time.Time{}, domain.RemoteDereferenceError{URI: uri, Reason: err.Error()}
	}
	return t, nil
}

var lastModifiedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// ParseLastModified accepts the HTTP date formats plus the ISO 8601 forms some
// IIIF servers send.
func ParseLastModified(value string) (time.Time, error) {
	if t, err := http.ParseTime(value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range lastModifiedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable last-modified %q", value)
}

var _ usecase.Dereferencer = (*DereferenceGateway)(nil)
