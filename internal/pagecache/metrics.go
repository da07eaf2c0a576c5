package pagecache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_hits_total",
			Help: "Number of page cache hits",
		},
		[]string{"cache"},
	)

	misses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_misses_total",
			Help: "Number of page cache misses",
		},
		[]string{"cache"},
	)
)
