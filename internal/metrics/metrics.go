// Package metrics defines and registers all custom Prometheus metrics for
// the admin console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the console exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Outbound request metrics ──────────────────────────────────────────────────

// BackendRequestsTotal counts calls made to the backend REST API.
// Labels:
//   - method: HTTP method of the call
//   - status: numeric response status, or "error" for transport failures
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the backend API.",
	},
	[]string{"method", "status"},
)

// BackendRequestDuration measures backend round-trip time.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// AuthFailuresTotal counts 401/403 responses, each of which tears down the
// session.
var AuthFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication failures observed on backend responses.",
	},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingFetchesTotal counts listing fetches that settled and were applied.
// Label:
//   - resource: "usuarios" or "perfiles"
var ListingFetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_fetches_total",
		Help:      "Total number of listing fetches applied, by resource.",
	},
	[]string{"resource"},
)

// StaleResponsesTotal counts late-arriving listing responses discarded
// because their query was superseded.
var StaleResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_stale_responses_total",
		Help:      "Total number of superseded listing responses discarded, by resource.",
	},
	[]string{"resource"},
)

// ── Mutation metrics ──────────────────────────────────────────────────────────

// MutationsTotal counts create/update/delete/estado/edge mutations.
// Labels:
//   - resource: "usuarios" or "perfiles"
//   - action: "create", "update", "delete", "estado", "asignar", "remover"
//   - result: "ok" or "error"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of mutations submitted, by resource, action, and result.",
	},
	[]string{"resource", "action", "result"},
)
