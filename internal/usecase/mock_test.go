package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/totegamma/iiifas/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- mocks ---

type mockStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	gets    int
	puts    int
	failGet bool
	failPut bool
}

func newMockStore() *mockStore {
	return &mockStore{
		data: map[string][]byte{},
		ttls: map[string]time.Duration{},
	}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.failGet {
		return nil, errors.New("connection refused")
	}
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *mockStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.failPut {
		return errors.New("connection refused")
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

type mockDeref struct {
	lastModified time.Time
	err          error
	calls        []string
}

func (m *mockDeref) LastModified(ctx context.Context, uri string) (time.Time, error) {
	m.calls = append(m.calls, uri)
	if m.err != nil {
		return time.Time{}, m.err
	}
	return m.lastModified, nil
}

type mockGateway struct {
	members []domain.Member
	err     error
	fetched []string
}

func (m *mockGateway) FetchMembers(ctx context.Context, uri string) ([]domain.Member, error) {
	m.fetched = append(m.fetched, uri)
	if m.err != nil {
		return nil, m.err
	}
	return m.members, nil
}

// --- helpers ---

const (
	testCollection = "https://example.org/iiif/collection/top"
	testBase       = "https://as.example.org/as/"
)

var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func members(ids ...string) []domain.Member {
	result := make([]domain.Member, 0, len(ids))
	for _, id := range ids {
		result = append(result, domain.Member{
			ID:    "https://example.org/iiif/" + id + "/manifest",
			Type:  "sc:Manifest",
			Label: "Item " + id,
		})
	}
	return result
}
