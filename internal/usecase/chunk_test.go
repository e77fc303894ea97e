package usecase

import (
	"errors"
	"testing"

	"github.com/totegamma/iiifas/internal/domain"
)

func TestChunksSizes(t *testing.T) {
	for n := 0; n <= 11; n++ {
		for size := 1; size <= 5; size++ {
			input := members(make([]string, n)...)
			chunks, err := Chunks(input, size)
			if err != nil {
				t.Fatalf("chunks(%d, %d) failed: %v", n, size, err)
			}

			var lengths []int
			for chunk := range chunks {
				lengths = append(lengths, len(chunk))
			}

			sum := 0
			for i, l := range lengths {
				sum += l
				if i < len(lengths)-1 && l != size {
					t.Fatalf("chunks(%d, %d): chunk %d has length %d", n, size, i, l)
				}
			}
			if sum != n {
				t.Fatalf("chunks(%d, %d): lengths sum to %d", n, size, sum)
			}
			if n == 0 && len(lengths) != 0 {
				t.Fatalf("expected no chunks for empty input, got %d", len(lengths))
			}
		}
	}
}

func TestChunksPreserveOrder(t *testing.T) {
	input := members("a", "b", "c", "d", "e")
	chunks, err := Chunks(input, 2)
	if err != nil {
		t.Fatalf("chunks failed: %v", err)
	}

	var got []string
	for chunk := range chunks {
		for _, m := range chunk {
			got = append(got, m.ID)
		}
	}
	for i := range input {
		if got[i] != input[i].ID {
			t.Fatalf("order changed at %d: %s != %s", i, got[i], input[i].ID)
		}
	}
}

func TestChunksInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := Chunks(members("a"), size)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("size %d: expected invalid argument, got %v", size, err)
		}
	}
}

func TestChunksEarlyStop(t *testing.T) {
	chunks, err := Chunks(members("a", "b", "c", "d"), 1)
	if err != nil {
		t.Fatalf("chunks failed: %v", err)
	}
	count := 0
	for range chunks {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected to stop after 2 chunks, got %d", count)
	}
}
