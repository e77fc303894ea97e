package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "iiifas-test", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(Options{UserAgent: "iiifas-test"})
	body, err := c.Fetch(context.Background(), srv.URL, "application/json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	_, err = c.Fetch(context.Background(), srv.URL, "application/json")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Options{CacheTTL: time.Minute})
	for range 3 {
		_, err := c.Fetch(context.Background(), srv.URL, "")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchStatusNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Options{CacheTTL: time.Minute})
	for range 2 {
		_, err := c.Fetch(context.Background(), srv.URL, "")
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.Code)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Last-Modified", "Tue, 19 Sep 2017 20:01:00 GMT")
		w.Write([]byte("body"))
	}))
	defer srv.Close()

	c := New(Options{})
	h, err := c.Headers(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Tue, 19 Sep 2017 20:01:00 GMT", h.Get("Last-Modified"))
}

func TestHeadersTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := New(Options{Timeout: 50 * time.Millisecond})
	_, err := c.Headers(context.Background(), srv.URL)
	assert.Error(t, err)
}
