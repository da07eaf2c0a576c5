package pagecache

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yatube-dev/yatube/internal/logger"
)

type storedResponse struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type recorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// Middleware caches successful GET responses for ttl, keyed by path and query.
func Middleware(c Cache, name string, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			key := Key(name, r)

			raw, ok, err := c.Get(r.Context(), key)
			if err != nil {
				logger.Log.Warn("page cache get failed", "component", "pagecache", "key", key, "error", err)
			}
			if ok {
				var resp storedResponse
				if err := json.Unmarshal(raw, &resp); err == nil {
					hits.WithLabelValues(name).Inc()
					if resp.ContentType != "" {
						w.Header().Set("Content-Type", resp.ContentType)
					}
					w.Header().Set("X-Cache", "HIT")
					_, _ = w.Write(resp.Body)
					return
				}
			}
			misses.WithLabelValues(name).Inc()

			w.Header().Set("X-Cache", "MISS")
			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			if rec.status != http.StatusOK {
				return
			}

			raw, err = json.Marshal(storedResponse{ContentType: w.Header().Get("Content-Type"), Body: rec.buf.Bytes()})
			if err != nil {
				return
			}
			if err := c.Set(r.Context(), key, raw, ttl); err != nil {
				logger.Log.Warn("page cache set failed", "component", "pagecache", "key", key, "error", err)
			}
		})
	}
}
