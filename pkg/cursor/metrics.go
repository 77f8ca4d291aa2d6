package cursor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CursorHits tracks cursor lookups that found an entry
	CursorHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "igdb_cursor_hits_total",
			Help: "Total number of scroll cursor lookups that found an entry",
		},
	)

	// CursorMisses tracks cursor lookups that found nothing
	CursorMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "igdb_cursor_misses_total",
			Help: "Total number of scroll cursor lookups that found nothing",
		},
	)

	// CursorErrors tracks Redis errors by operation
	CursorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "igdb_cursor_errors_total",
			Help: "Total number of scroll cursor store errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
