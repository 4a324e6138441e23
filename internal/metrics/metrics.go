package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vesselwatch_query_duration_seconds",
			Help:    "Duration of analytics catalog queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesselwatch_query_errors_total",
			Help: "Total number of failed analytics catalog queries",
		},
		[]string{"query", "kind"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesselwatch_cache_lookups_total",
			Help: "Result cache lookups by outcome (hit, miss, error)",
		},
		[]string{"query", "result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vesselwatch_http_requests_total",
			Help: "Total HTTP requests by route pattern and status code",
		},
		[]string{"route", "status"},
	)
)

// ObserveQuery records one catalog call. kind is empty on success.
func ObserveQuery(query string, started time.Time, kind string) {
	QueryDuration.WithLabelValues(query).Observe(time.Since(started).Seconds())
	if kind != "" {
		QueryErrors.WithLabelValues(query, kind).Inc()
	}
}

func RecordCacheLookup(query string, result string) {
	CacheLookups.WithLabelValues(query, result).Inc()
}

func RecordHTTPRequest(route string, status int) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
