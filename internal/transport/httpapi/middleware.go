package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"vesselwatch/internal/bootstrap/logging"
	"vesselwatch/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// requestIDWithLogging reuses the caller's X-Request-ID or generates one, and
// puts it on the response and the request's logger.
func requestIDWithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithAttrs(ctx, slog.String("component", "transport.http"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// recordRequest logs each request and counts it by route pattern and status.
func recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.RecordHTTPRequest(route, status)
		logging.Info(r.Context(), "request served",
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("elapsed", time.Since(started)),
		)
	})
}
