package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/totegamma/iiifas"
	"github.com/totegamma/iiifas/internal/domain"
)

func newTestStream(store EventStore) *PageStream {
	return NewPageStream(NewPageBuilder(NewEventMemoizer(store, nil, domain.FeedConfig{EventIDs: true})))
}

func TestStreamLinkage(t *testing.T) {
	s := newTestStream(newMockStore())
	input := members("A", "B", "C", "D", "E")

	pages, err := s.Stream(context.Background(), input, testCollection, testBase, 2, testNow)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}

	type expectation struct {
		id    string
		items []string
		prev  string
		next  string
	}
	expected := []expectation{
		{id: testBase + "1", items: []string{"A", "B"}, next: testBase + "2"},
		{id: testBase + "2", items: []string{"C", "D"}, prev: testBase + "1", next: testBase + "3"},
		{id: testBase + "3", items: []string{"E"}, prev: testBase + "2"},
	}

	i := 0
	for p := range pages {
		if i >= len(expected) {
			t.Fatalf("too many pages")
		}
		want := expected[i]
		if p.TotalPages != 3 {
			t.Fatalf("page %d: expected 3 total pages, got %d", i+1, p.TotalPages)
		}
		if p.Page.ID != want.id {
			t.Fatalf("page %d: id %s", i+1, p.Page.ID)
		}
		if p.Page.Type != "OrderedCollectionPage" || p.Page.PartOf.ID != testBase || p.Page.PartOf.Type != "OrderedCollection" {
			t.Fatalf("page %d: bad header %+v", i+1, p.Page)
		}
		if want.prev == "" && p.Page.Prev != nil {
			t.Fatalf("page %d: unexpected prev", i+1)
		}
		if want.prev != "" && (p.Page.Prev == nil || p.Page.Prev.ID != want.prev) {
			t.Fatalf("page %d: prev %+v", i+1, p.Page.Prev)
		}
		if want.next == "" && p.Page.Next != nil {
			t.Fatalf("page %d: unexpected next", i+1)
		}
		if want.next != "" && (p.Page.Next == nil || p.Page.Next.ID != want.next) {
			t.Fatalf("page %d: next %+v", i+1, p.Page.Next)
		}
		if len(p.Page.OrderedItems) != len(want.items) {
			t.Fatalf("page %d: %d items", i+1, len(p.Page.OrderedItems))
		}
		for j, item := range p.Page.OrderedItems {
			if item.Object.ID != members(want.items[j])[0].ID {
				t.Fatalf("page %d item %d: %s", i+1, j, item.Object.ID)
			}
		}
		i++
	}
	if i != 3 {
		t.Fatalf("expected 3 pages, got %d", i)
	}
}

func TestStreamBoundaries(t *testing.T) {
	s := newTestStream(newMockStore())
	for n := 1; n <= 9; n++ {
		for size := 1; size <= 4; size++ {
			pages, err := s.Stream(context.Background(), members(make([]string, n)...), testCollection, testBase, size, testNow)
			if err != nil {
				t.Fatalf("stream failed: %v", err)
			}
			count := 0
			for p := range pages {
				count++
				first := count == 1
				last := count == p.TotalPages
				if first != (p.Page.Prev == nil) {
					t.Fatalf("n=%d size=%d page %d: prev mismatch", n, size, count)
				}
				if last != (p.Page.Next == nil) {
					t.Fatalf("n=%d size=%d page %d: next mismatch", n, size, count)
				}
			}
			want := (n + size - 1) / size
			if count != want {
				t.Fatalf("n=%d size=%d: expected %d pages, got %d", n, size, want, count)
			}
		}
	}
}

func TestStreamRestartable(t *testing.T) {
	s := newTestStream(newMockStore())
	pages, err := s.Stream(context.Background(), members("a", "b", "c"), testCollection, testBase, 2, testNow)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	for range 2 {
		count := 0
		for range pages {
			count++
		}
		if count != 2 {
			t.Fatalf("expected 2 pages per pass, got %d", count)
		}
	}
}

func TestStreamEmpty(t *testing.T) {
	s := newTestStream(newMockStore())
	pages, err := s.Stream(context.Background(), nil, testCollection, testBase, 10, testNow)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	for range pages {
		t.Fatalf("expected no pages")
	}
}

func TestStreamInvalidPageSize(t *testing.T) {
	s := newTestStream(newMockStore())
	_, err := s.Stream(context.Background(), members("a"), testCollection, testBase, 0, testNow)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestPageAt(t *testing.T) {
	store := newMockStore()
	s := newTestStream(store)
	input := members("A", "B", "C", "D", "E")

	result, err := s.PageAt(context.Background(), input, testCollection, testBase, 2, 2, testNow)
	if err != nil {
		t.Fatalf("page at failed: %v", err)
	}
	if result.Page.ID != testBase+"2" || result.TotalPages != 3 {
		t.Fatalf("unexpected page %s (%d)", result.Page.ID, result.TotalPages)
	}
	if len(result.Page.OrderedItems) != 2 || result.Page.OrderedItems[0].Object.ID != input[2].ID {
		t.Fatalf("unexpected items %+v", result.Page.OrderedItems)
	}
	if store.puts != 4 {
		t.Fatalf("expected pages 1 and 2 to be resolved, got %d writes", store.puts)
	}
	for _, member := range input[:4] {
		if _, ok := store.data[iiifas.EventKey(member.ID)]; !ok {
			t.Fatalf("event for %s was not stored", member.ID)
		}
	}
	if _, ok := store.data[iiifas.EventKey(input[4].ID)]; ok {
		t.Fatalf("pages after the requested one must not be built")
	}
}

func TestPageAtOutOfRange(t *testing.T) {
	s := newTestStream(newMockStore())
	input := members("A", "B", "C", "D", "E")

	for _, position := range []int{0, 4, 100} {
		_, err := s.PageAt(context.Background(), input, testCollection, testBase, 2, position, testNow)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("position %d: expected not found, got %v", position, err)
		}
	}

	_, err := s.PageAt(context.Background(), nil, testCollection, testBase, 2, 1, testNow)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("empty members: expected not found, got %v", err)
	}

	_, err = s.PageAt(context.Background(), input, testCollection, testBase, 2, -1, testNow)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("negative position: expected invalid argument, got %v", err)
	}
}
