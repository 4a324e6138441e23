package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"vesselwatch/internal/bootstrap/logging"
	domainanalytics "vesselwatch/internal/domain/analytics"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/metrics"
	"vesselwatch/internal/ports"
)

type groupKey struct {
	vesselType   string
	vesselName   string
	locationName nullable
}

func compareGroupKeys(a, b groupKey) int {
	if c := strings.Compare(a.vesselType, b.vesselType); c != 0 {
		return c
	}
	if c := strings.Compare(a.vesselName, b.vesselName); c != 0 {
		return c
	}
	return compareNullable(a.locationName, b.locationName)
}

// PingCountCacheKey is the cache key of a normalized date range.
func PingCountCacheKey(dateRange ports.DateRange) string {
	return fmt.Sprintf("ping_count_by_type_%s_%s", dateRange.Start, dateRange.End)
}

// PingCountByDateRangeAndType groups the pings added in [start, end] by
// vessel type, vessel name and location name. Results are cached for
// PingCountCacheTTL per normalized range and may be that stale.
func (s *Service) PingCountByDateRangeAndType(ctx context.Context, start string, end string) ([]PingCountView, error) {
	started := time.Now()
	ctx, err := s.begin(ctx, QueryPingCountByType)
	if err != nil {
		return nil, err
	}
	dateRange, err := s.dateRange(ctx, QueryPingCountByType, start, end)
	if err != nil {
		return nil, err
	}

	key := PingCountCacheKey(dateRange)
	ctx = logging.WithAttrs(ctx, slog.String("cache_key", key))
	if cached, ok := s.cachedPingCounts(ctx, key); ok {
		metrics.ObserveQuery(QueryPingCountByType, started, "")
		return cached, nil
	}

	var out []PingCountView
	err = s.run(ctx, QueryPingCountByType, func(ctx context.Context) error {
		rows, err := s.repo.ListPingsAddedBetween(ctx, dateRange)
		if err != nil {
			return err
		}
		views, err := aggregatePingCounts(rows)
		if err != nil {
			return err
		}
		out = views
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.storePingCounts(ctx, key, out)
	return out, nil
}

// cachedPingCounts is best effort: any cache failure reads as a miss.
func (s *Service) cachedPingCounts(ctx context.Context, key string) ([]PingCountView, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.RecordCacheLookup(QueryPingCountByType, "error")
		logging.Warn(ctx, "cache read failed", slog.Any("err", errs.Loggable(err)))
		return nil, false
	}
	if !found {
		metrics.RecordCacheLookup(QueryPingCountByType, "miss")
		return nil, false
	}

	views := make([]PingCountView, 0)
	if err := json.Unmarshal([]byte(raw), &views); err != nil {
		metrics.RecordCacheLookup(QueryPingCountByType, "error")
		logging.Warn(ctx, "cache entry unreadable", slog.Any("err", errs.Loggable(err)))
		return nil, false
	}
	metrics.RecordCacheLookup(QueryPingCountByType, "hit")
	return views, true
}

func (s *Service) storePingCounts(ctx context.Context, key string, views []PingCountView) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(views)
	if err != nil {
		logging.Warn(ctx, "cache encode failed", slog.Any("err", errs.Loggable(err)))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), PingCountCacheTTL); err != nil {
		logging.Warn(ctx, "cache write failed", slog.Any("err", errs.Loggable(err)))
	}
}

type pingCountGroup struct {
	count int
	dwell sum
}

func aggregatePingCounts(rows []ports.PingRow) ([]PingCountView, error) {
	groups := make(map[groupKey]*pingCountGroup)
	for _, row := range rows {
		key := groupKey{
			vesselType:   row.VesselType,
			vesselName:   row.VesselName,
			locationName: nullableOf(row.LocationName),
		}
		group, ok := groups[key]
		if !ok {
			group = &pingCountGroup{}
			groups[key] = group
		}

		dwell, ok, err := domainanalytics.DwellValue(row.Dwell)
		if err != nil {
			return nil, errs.Wrapf(err, "ping %q", row.PingID)
		}
		if ok {
			group.count++
			group.dwell.add(dwell)
		}
	}

	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, compareGroupKeys)

	views := make([]PingCountView, 0, len(keys))
	for _, key := range keys {
		group := groups[key]
		views = append(views, PingCountView{
			VesselType:   key.vesselType,
			VesselName:   key.vesselName,
			LocationName: key.locationName.ptr(),
			Count:        group.count,
			DwellSum:     group.dwell.ptr(),
		})
	}
	return views, nil
}

// HarborReportCountByDateRange counts harbor reports added in [start, end]
// per vessel type, vessel name and location name.
func (s *Service) HarborReportCountByDateRange(ctx context.Context, start string, end string) ([]HarborReportCountView, error) {
	ctx, err := s.begin(ctx, QueryHarborReportCount)
	if err != nil {
		return nil, err
	}
	dateRange, err := s.dateRange(ctx, QueryHarborReportCount, start, end)
	if err != nil {
		return nil, err
	}

	var out []HarborReportCountView
	err = s.run(ctx, QueryHarborReportCount, func(ctx context.Context) error {
		rows, err := s.repo.ListHarborReports(ctx, &dateRange)
		if err != nil {
			return err
		}
		out = aggregateHarborReportCounts(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func aggregateHarborReportCounts(rows []ports.HarborReportRow) []HarborReportCountView {
	counts := make(map[groupKey]int)
	for _, row := range rows {
		counts[groupKey{
			vesselType:   row.VesselType,
			vesselName:   row.VesselName,
			locationName: nullableOf(row.LocationName),
		}]++
	}

	keys := make([]groupKey, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, compareGroupKeys)

	views := make([]HarborReportCountView, 0, len(keys))
	for _, key := range keys {
		views = append(views, HarborReportCountView{
			VesselType:   key.vesselType,
			VesselName:   key.vesselName,
			LocationName: key.locationName.ptr(),
			VesselCount:  counts[key],
		})
	}
	return views
}
