package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/iiifas"
	"github.com/totegamma/iiifas/internal/domain"
)

const topLabelPrefix = "Top level collection: "

// FeedUsecase serves the ActivityStreams view of the configured collection.
// Every call fetches the member list again; counts are not kept between calls.
type FeedUsecase struct {
	gateway  CollectionGateway
	memoizer *EventMemoizer
	stream   *PageStream
	config   domain.FeedConfig
	now      func() time.Time
}

func NewFeedUsecase(gateway CollectionGateway, memoizer *EventMemoizer, config domain.FeedConfig) *FeedUsecase {
	return &FeedUsecase{
		gateway:  gateway,
		memoizer: memoizer,
		stream:   NewPageStream(NewPageBuilder(memoizer)),
		config:   config,
		now:      time.Now,
	}
}

// ServiceBase returns the base URI pages are addressed under. requestRoot is
// used when no service base address is configured.
func (uc *FeedUsecase) ServiceBase(requestRoot string) string {
	root := uc.config.ServiceBaseAddress
	if root == "" {
		root = requestRoot
	}
	return root + "as/"
}

func (uc *FeedUsecase) Top(ctx context.Context, serviceBase string) (iiifas.TopCollection, error) {
	ctx, span := tracer.Start(ctx, "Feed.Usecase.Top")
	defer span.End()

	members, err := uc.gateway.FetchMembers(ctx, uc.config.CollectionURI)
	if err != nil {
		span.RecordError(err)
		return iiifas.TopCollection{}, err
	}

	if uc.config.PageSize <= 0 {
		return iiifas.TopCollection{}, domain.InvalidArgumentError{Argument: "page size", Reason: "must be positive"}
	}
	totalPages := iiifas.CeilDiv(len(members), uc.config.PageSize)
	span.SetAttributes(attribute.Int("members", len(members)), attribute.Int("totalPages", totalPages))

	return BuildTop(serviceBase, totalPages, len(members), topLabelPrefix+uc.config.CollectionURI), nil
}

func (uc *FeedUsecase) Page(ctx context.Context, serviceBase string, position int) (iiifas.Page, error) {
	ctx, span := tracer.Start(ctx, "Feed.Usecase.Page")
	defer span.End()
	span.SetAttributes(attribute.Int("position", position))

	if position < 0 {
		return iiifas.Page{}, domain.InvalidArgumentError{Argument: "page", Reason: "must not be negative"}
	}

	members, err := uc.gateway.FetchMembers(ctx, uc.config.CollectionURI)
	if err != nil {
		span.RecordError(err)
		return iiifas.Page{}, err
	}

	result, err := uc.stream.PageAt(ctx, members, uc.config.CollectionURI, serviceBase, uc.config.PageSize, position, uc.now())
	if err != nil {
		return iiifas.Page{}, err
	}
	return result.Page, nil
}

// Activity returns a persisted event by key.
func (uc *FeedUsecase) Activity(ctx context.Context, key string) (iiifas.Event, error) {
	return uc.memoizer.Lookup(ctx, key)
}

// Export renders the whole collection as a single page.
func (uc *FeedUsecase) Export(ctx context.Context, serviceBase string) (iiifas.Page, error) {
	ctx, span := tracer.Start(ctx, "Feed.Usecase.Export")
	defer span.End()

	members, err := uc.gateway.FetchMembers(ctx, uc.config.CollectionURI)
	if err != nil {
		span.RecordError(err)
		return iiifas.Page{}, err
	}
	if len(members) == 0 {
		return iiifas.Page{}, domain.NotFoundError{Resource: fmt.Sprintf("members of %s", uc.config.CollectionURI)}
	}

	pages, err := uc.stream.Stream(ctx, members, uc.config.CollectionURI, serviceBase, len(members), uc.now())
	if err != nil {
		return iiifas.Page{}, err
	}
	for p := range pages {
		return p.Page, nil
	}
	return iiifas.Page{}, domain.NotFoundError{Resource: "page"}
}
