package cache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
)

// IndexTTL is how long a rendered listing page is served as-is before
// a fresh render. There is no write-triggered invalidation.
const IndexTTL = 20 * time.Second

const maxEntries = 128

type entry struct {
	status      int
	contentType string
	body        []byte
}

// PageCache stores fully rendered GET responses keyed by request URI.
type PageCache struct {
	lru *expirable.LRU[string, entry]
}

func New(ttl time.Duration) *PageCache {
	return &PageCache{
		lru: expirable.NewLRU[string, entry](maxEntries, nil, ttl),
	}
}

// Flush drops every cached page. Used by tests and admin tooling;
// normal operation relies on TTL expiry alone.
func (p *PageCache) Flush() {
	p.lru.Purge()
}

// Middleware serves cached renders of successful GET responses. The
// key includes the query string so each listing page caches separately.
func (p *PageCache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := c.Request().URL.RequestURI()
			if e, ok := p.lru.Get(key); ok {
				return c.Blob(e.status, e.contentType, e.body)
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}

			if rec.status == http.StatusOK {
				p.lru.Add(key, entry{
					status:      rec.status,
					contentType: rec.Header().Get(echo.HeaderContentType),
					body:        rec.buf.Bytes(),
				})
			}
			return nil
		}
	}
}

// bodyRecorder tees the response body so it can be cached after the
// handler has written it to the client.
type bodyRecorder struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (r *bodyRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}
