package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/iiifas"
	"github.com/totegamma/iiifas/internal/domain"
)

type PageBuilder struct {
	memoizer *EventMemoizer
}

func NewPageBuilder(memoizer *EventMemoizer) *PageBuilder {
	return &PageBuilder{memoizer: memoizer}
}

// Build renders chunk as page index (1-based) of totalPages.
func (b *PageBuilder) Build(ctx context.Context, chunk []domain.Member, index, totalPages int, collectionID, serviceBase string, requestTime time.Time) iiifas.Page {
	ctx, span := tracer.Start(ctx, "Feed.Usecase.BuildPage")
	defer span.End()
	span.SetAttributes(
		attribute.Int("index", index),
		attribute.Int("totalPages", totalPages),
		attribute.Int("items", len(chunk)),
	)

	page := iiifas.Page{
		Context: iiifas.Context,
		ID:      iiifas.PageURI(serviceBase, index),
		Type:    iiifas.OrderedCollectionPage,
		PartOf: iiifas.Reference{
			ID:   serviceBase,
			Type: iiifas.OrderedCollection,
		},
	}

	if index > 1 {
		page.Prev = &iiifas.Reference{
			ID:   iiifas.PageURI(serviceBase, index-1),
			Type: iiifas.OrderedCollectionPage,
		}
	}
	if index < totalPages {
		page.Next = &iiifas.Reference{
			ID:   iiifas.PageURI(serviceBase, index+1),
			Type: iiifas.OrderedCollectionPage,
		}
	}

	activityBase := iiifas.ActivityBase(serviceBase)
	page.OrderedItems = make([]iiifas.Event, 0, len(chunk))
	for _, member := range chunk {
		page.OrderedItems = append(page.OrderedItems, b.memoizer.Resolve(ctx, member, collectionID, activityBase, requestTime))
	}

	return page
}
