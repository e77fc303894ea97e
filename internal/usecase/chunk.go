package usecase

import (
	"iter"

	"github.com/totegamma/iiifas/internal/domain"
)

// Chunks splits members into contiguous groups of size; the last group may be shorter.
// The yielded slices share the backing array of members.
func Chunks(members []domain.Member, size int) (iter.Seq[[]domain.Member], error) {
	if size <= 0 {
		return nil, domain.InvalidArgumentError{Argument: "page size", Reason: "must be positive"}
	}

	return func(yield func([]domain.Member) bool) {
		for start := 0; start < len(members); start += size {
			end := min(start+size, len(members))
			if !yield(members[start:end:end]) {
				return
			}
		}
	}, nil
}
