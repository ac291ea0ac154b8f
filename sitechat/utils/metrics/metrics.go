// Package metrics provides Prometheus metrics for sitechat.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts served requests by route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitechat",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sitechat",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ExtractionsTotal counts extractions by outcome ("success" or an error kind).
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitechat",
			Name:      "extractions_total",
			Help:      "Total number of page extractions",
		},
		[]string{"outcome"},
	)

	// ExtractionDuration measures the fetch-and-parse time of one page.
	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sitechat",
			Name:      "extraction_duration_seconds",
			Help:      "Duration of page extractions in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
	)

	// GenerationsTotal counts responder calls by mode and outcome.
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sitechat",
			Name:      "generations_total",
			Help:      "Total number of grounded responses",
		},
		[]string{"mode", "outcome"},
	)

	// GenerationDuration measures the language model round trip.
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sitechat",
			Name:      "generation_duration_seconds",
			Help:      "Duration of grounded responses in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"mode"},
	)

	// RateLimitedTotal counts requests rejected by the chat rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sitechat",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
	)
)

// RecordRequest records one served HTTP request.
func RecordRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordExtraction records one extraction attempt.
func RecordExtraction(outcome string, seconds float64) {
	ExtractionsTotal.WithLabelValues(outcome).Inc()
	ExtractionDuration.Observe(seconds)
}

// RecordGeneration records one responder call.
func RecordGeneration(mode, outcome string, seconds float64) {
	GenerationsTotal.WithLabelValues(mode, outcome).Inc()
	GenerationDuration.WithLabelValues(mode).Observe(seconds)
}

// RecordRateLimited records a rejected request.
func RecordRateLimited() {
	RateLimitedTotal.Inc()
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
