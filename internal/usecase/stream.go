package usecase

import (
	"context"
	"iter"
	"time"

	"github.com/totegamma/iiifas"
	"github.com/totegamma/iiifas/internal/domain"
)

// StreamedPage is one page of a stream together with the page count the
// stream was computed with.
type StreamedPage struct {
	Page       iiifas.Page
	TotalPages int
}

// PageStream produces pages lazily. Nothing is retained between pages: random
// access walks the chunks again, trading latency on high page numbers for
// constant memory.
type PageStream struct {
	builder *PageBuilder
}

func NewPageStream(builder *PageBuilder) *PageStream {
	return &PageStream{builder: builder}
}

// Stream yields every page in order. Iterating again starts from page 1.
func (s *PageStream) Stream(ctx context.Context, members []domain.Member, collectionID, serviceBase string, pageSize int, requestTime time.Time) (iter.Seq[StreamedPage], error) {
	chunks, err := Chunks(members, pageSize)
	if err != nil {
		return nil, err
	}
	totalPages := iiifas.CeilDiv(len(members), pageSize)

	return func(yield func(StreamedPage) bool) {
		index := 1
		for chunk := range chunks {
			page := s.builder.Build(ctx, chunk, index, totalPages, collectionID, serviceBase, requestTime)
			if !yield(StreamedPage{Page: page, TotalPages: totalPages}) {
				return
			}
			index++
		}
	}, nil
}

// PageAt returns page position of the stream. The stream is driven forward and
// the pages before position are built and discarded, so their events are
// resolved and stored along the way.
func (s *PageStream) PageAt(ctx context.Context, members []domain.Member, collectionID, serviceBase string, pageSize, position int, requestTime time.Time) (StreamedPage, error) {
	if position < 0 {
		return StreamedPage{}, domain.InvalidArgumentError{Argument: "page", Reason: "must not be negative"}
	}

	pages, err := s.Stream(ctx, members, collectionID, serviceBase, pageSize, requestTime)
	if err != nil {
		return StreamedPage{}, err
	}

	if position == 0 || position > iiifas.CeilDiv(len(members), pageSize) {
		return StreamedPage{}, domain.NotFoundError{Resource: "page"}
	}

	index := 1
	for page := range pages {
		if index == position {
			return page, nil
		}
		index++
	}

	return StreamedPage{}, domain.NotFoundError{Resource: "page"}
}
