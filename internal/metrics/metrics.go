// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_http_requests_total",
			Help: "HTTP requests served, by route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campus_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	participation = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campus_participation_total",
			Help: "Registration, check-in and feedback decisions, by outcome",
		},
		[]string{"action", "outcome"},
	)
)

// Outcomes recorded for participation decisions. Rejections use the
// machine reason code of the error.
const (
	OutcomeAccepted = "accepted"
	OutcomeError    = "error"
)

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// TrackParticipation records the outcome of one workflow decision.
func TrackParticipation(action, outcome string) {
	participation.WithLabelValues(action, outcome).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
