// Package metrics exposes the Prometheus metrics of the IGDB client.
// Metrics are defined next to the code that records them (client, cursor)
// and registered via promauto on the default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the Prometheus registerer every IGDB metric is registered on.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the Prometheus gatherer matching Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler returns an HTTP handler serving the metrics in Registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - igdb_requests_total{endpoint, status} (Counter): requests by endpoint and HTTP status
//     ("network_error" when no response was received)
//   - igdb_request_duration_seconds{endpoint} (Histogram): request duration by endpoint
//   - igdb_errors_total{class} (Counter): errors by class (client, server, network)
//   - igdb_scroll_header_misses_total{header} (Counter): X-Next-Page / X-Count lookups
//     that found no header
//
// Cursor Metrics (pkg/cursor):
//   - igdb_cursor_hits_total (Counter): stored cursors found
//   - igdb_cursor_misses_total (Counter): cursor lookups without a stored cursor
//   - igdb_cursor_errors_total{operation} (Counter): cursor store errors by operation
//
// Example Prometheus Queries:
//
//   # Upstream error rate
//   sum(rate(igdb_errors_total{class=~"client|server"}[5m])) / sum(rate(igdb_requests_total[5m]))
//
//   # P95 request latency per endpoint
//   histogram_quantile(0.95, sum by (endpoint, le) (rate(igdb_request_duration_seconds_bucket[5m])))
//
//   # Finished scrolls
//   rate(igdb_scroll_header_misses_total{header="X-Next-Page"}[5m])
