package middleware

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"
)

type cachedResponse struct {
	body        []byte
	contentType string
	etag        string
}

// ResponseCache keeps successful GET responses for a fixed time and answers
// conditional requests against an xxh3 ETag of the cached body.
type ResponseCache struct {
	cache *cache.Cache
}

func NewResponseCache(timeout time.Duration) *ResponseCache {
	return &ResponseCache{
		cache: cache.New(timeout, 2*timeout),
	}
}

func (m *ResponseCache) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.Method != http.MethodGet {
			return next(c)
		}

		key := c.Scheme() + "://" + req.Host + req.URL.RequestURI()
		if x, found := m.cache.Get(key); found {
			return m.write(c, x.(cachedResponse))
		}

		res := c.Response()
		rec := &bodyRecorder{ResponseWriter: res.Writer}
		res.Writer = rec
		defer func() { res.Writer = rec.ResponseWriter }()
		err := next(c)
		res.Writer = rec.ResponseWriter

		if rec.status == 0 {
			return err
		}

		body := rec.body.Bytes()
		if err == nil && rec.status == http.StatusOK {
			etag := ETag(body)
			res.Header().Set("ETag", etag)
			m.cache.Set(key, cachedResponse{
				body:        body,
				contentType: res.Header().Get(echo.HeaderContentType),
				etag:        etag,
			}, cache.DefaultExpiration)
			slog.DebugContext(req.Context(), "response cached", slog.String("module", "cache"), slog.String("key", key))
		}

		rec.ResponseWriter.WriteHeader(rec.status)
		if _, werr := rec.ResponseWriter.Write(body); werr != nil && err == nil {
			err = werr
		}
		return err
	}
}

func (m *ResponseCache) write(c echo.Context, entry cachedResponse) error {
	c.Response().Header().Set("ETag", entry.etag)
	if c.Request().Header.Get("If-None-Match") == entry.etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.Blob(http.StatusOK, entry.contentType, entry.body)
}

func ETag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
}

// bodyRecorder holds the status and body back until the handler returns so
// headers can still be added.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.body.Write(b)
}
