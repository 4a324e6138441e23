// Package httpapi serves the analytics catalog over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vesselwatch/internal/usecase/analytics"
)

// Catalog is the query surface the handlers need; *analytics.Service
// implements it.
type Catalog interface {
	ListLocationActivities(ctx context.Context) (analytics.LocationActivitiesView, error)
	TransponderPingsByDateRange(ctx context.Context, start string, end string) (analytics.PingListView, error)
	HarborReportsAll(ctx context.Context) (analytics.HarborReportListView, error)
	CargoVesselDeliveries(ctx context.Context) ([]analytics.CargoDeliveryView, error)
	PossibleIllegalFishing(ctx context.Context, reportID string) ([]analytics.FishingView, error)
	PingCountByDateRangeAndType(ctx context.Context, start string, end string) ([]analytics.PingCountView, error)
	HarborReportCountByDateRange(ctx context.Context, start string, end string) ([]analytics.HarborReportCountView, error)
	TrendByWeek(ctx context.Context) ([]analytics.WeeklyTrendView, error)
	TrendByMonth(ctx context.Context) ([]analytics.MonthlyTrendView, error)
	CombinedCargoFishJoin(ctx context.Context) ([]analytics.CombinedView, error)
	Ping(ctx context.Context) error
}

var _ Catalog = (*analytics.Service)(nil)

type Options struct {
	CORSAllowedOrigins []string
	// RateLimitRequests per RateLimitWindow per client IP; zero disables limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter mounts every catalog route. Paths match with or without the
// trailing slash.
func NewRouter(catalog Catalog, opts Options) http.Handler {
	h := &handler{catalog: catalog}

	r := chi.NewRouter()
	r.Use(requestIDWithLogging)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if opts.RateLimitRequests > 0 && opts.RateLimitWindow > 0 {
			r.Use(httprate.LimitByIP(opts.RateLimitRequests, opts.RateLimitWindow))
		}
		r.Use(recordRequest)

		r.Get("/", h.locationActivities)
		r.Get("/transponder-pings", h.pingCountByType)
		r.Get("/transponder-pings/raw", h.pingsByDateRange)
		r.Get("/harbor-reports", h.harborReportCounts)
		r.Get("/harbor-reports/all", h.harborReportsAll)
		r.Get("/cargo-vessel", h.cargoDeliveries)
		r.Get("/fishing", h.illegalFishing)
		r.Get("/trend-data", h.trendByWeek)
		r.Get("/trend-line", h.trendByMonth)
		r.Get("/combined", h.combined)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, errorBody{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})
	return r
}
