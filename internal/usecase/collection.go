package usecase

import (
	"github.com/totegamma/iiifas"
)

// EmptyPage is the page number first and last point at when the collection has no members.
const EmptyPage = 0

// BuildTop returns the root OrderedCollection. With no pages, first and last
// both reference page 0, which is served as the root collection itself.
func BuildTop(serviceBase string, totalPages, memberCount int, label string) iiifas.TopCollection {
	first, last := 1, totalPages
	if totalPages == 0 {
		first, last = EmptyPage, EmptyPage
	}

	return iiifas.TopCollection{
		Context: iiifas.Context,
		ID:      serviceBase,
		Type:    iiifas.OrderedCollection,
		Label:   label,
		Total:   memberCount,
		First: iiifas.Reference{
			ID:   iiifas.PageURI(serviceBase, first),
			Type: iiifas.OrderedCollectionPage,
		},
		Last: iiifas.Reference{
			ID:   iiifas.PageURI(serviceBase, last),
			Type: iiifas.OrderedCollectionPage,
		},
	}
}
