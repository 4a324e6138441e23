package analytics

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"vesselwatch/internal/bootstrap/logging"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/metrics"
	"vesselwatch/internal/ports"
)

// Query names, used for metrics labels, logs and the query command.
const (
	QueryLocationActivities = "location_activities"
	QueryPingsByDateRange   = "pings_by_date_range"
	QueryHarborReportsAll   = "harbor_reports_all"
	QueryCargoDeliveries    = "cargo_deliveries"
	QueryIllegalFishing     = "illegal_fishing"
	QueryPingCountByType    = "ping_count_by_type"
	QueryHarborReportCount  = "harbor_report_count"
	QueryTrendByWeek        = "trend_by_week"
	QueryTrendByMonth       = "trend_by_month"
	QueryCombinedCargoFish  = "combined_cargo_fish"
)

const (
	defaultQueryTimeout = 30 * time.Second
	// PingCountCacheTTL bounds how stale a cached ping count may be.
	PingCountCacheTTL = time.Hour
)

// QueryNames lists every catalog query in catalog order.
var QueryNames = []string{
	QueryLocationActivities,
	QueryPingsByDateRange,
	QueryHarborReportsAll,
	QueryCargoDeliveries,
	QueryIllegalFishing,
	QueryPingCountByType,
	QueryHarborReportCount,
	QueryTrendByWeek,
	QueryTrendByMonth,
	QueryCombinedCargoFish,
}

type Service struct {
	repo    ports.AnalyticsReadRepository
	uow     ports.UnitOfWork
	cache   ports.Cache
	timeout time.Duration
}

// NewService wires the query catalog. cache may be nil to disable result
// caching; a non-positive timeout falls back to 30s.
func NewService(repo ports.AnalyticsReadRepository, uow ports.UnitOfWork, cache ports.Cache, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Service{
		repo:    repo,
		uow:     uow,
		cache:   cache,
		timeout: timeout,
	}
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if s.repo == nil {
		return errors.New("analytics repository is required")
	}
	return s.repo.Ping(ctx)
}

func (s *Service) begin(ctx context.Context, query string) (context.Context, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return nil, errors.New("analytics repository is required")
	}
	if s.uow == nil {
		return nil, errors.New("unit of work is required")
	}
	return logging.WithAttrs(ctx,
		slog.String("component", "usecase.analytics"),
		slog.String("query", query),
	), nil
}

// run executes fn in one read transaction bounded by the query timeout.
func (s *Service) run(ctx context.Context, query string, fn func(ctx context.Context) error) error {
	started := time.Now()

	queryCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.uow.WithReadTx(queryCtx, fn)
	s.finish(ctx, query, started, err)
	return err
}

// finish records the outcome of a query. Validation failures are the caller's
// fault and are not logged as errors.
func (s *Service) finish(ctx context.Context, query string, started time.Time, err error) {
	if err == nil {
		metrics.ObserveQuery(query, started, "")
		logging.Debug(ctx, "query completed", slog.Duration("elapsed", time.Since(started)))
		return
	}

	kind := errs.KindOf(err)
	metrics.ObserveQuery(query, started, kind.String())
	if kind == errs.KindValidation {
		logging.Debug(ctx, "query rejected", slog.String("reason", errs.PublicMessage(err)))
		return
	}
	logging.Error(ctx, "query failed", slog.Any("err", errs.Loggable(err)))
}

// reject records a validation failure that happened before any store access.
func (s *Service) reject(ctx context.Context, query string, err error) error {
	s.finish(ctx, query, time.Now(), err)
	return err
}
