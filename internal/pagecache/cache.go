// Package pagecache is a time-expiring key/value store for rendered pages.
//
// Handlers receive a Cache explicitly; there is no process-wide instance. Entries
// only disappear on expiry or on Clear, there is no stampede protection.
package pagecache

import (
	"context"
	"net/http"
	"time"

	"github.com/yatube-dev/yatube/internal/logger"
)

type Cache interface {
	// Get returns the stored value and true, or false on a miss or an expired entry.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Clear drops every entry.
	Clear(ctx context.Context) error
}

// Key builds the cache key for a request: path plus raw query.
func Key(prefix string, r *http.Request) string {
	return prefix + ":" + r.URL.Path + "?" + r.URL.RawQuery
}

// GetOrRender returns the cached value for key, or calls render and stores its
// result for ttl. Cache failures are logged and never fail the caller.
func GetOrRender(ctx context.Context, c Cache, name, key string, ttl time.Duration, render func() ([]byte, error)) ([]byte, error) {
	value, ok, err := c.Get(ctx, key)
	if err != nil {
		logger.Log.Warn("page cache get failed", "component", "pagecache", "key", key, "error", err)
	}
	if ok {
		hits.WithLabelValues(name).Inc()
		return value, nil
	}
	misses.WithLabelValues(name).Inc()

	value, err = render()
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Log.Warn("page cache set failed", "component", "pagecache", "key", key, "error", err)
	}
	return value, nil
}
