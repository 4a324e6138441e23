package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	domainanalytics "vesselwatch/internal/domain/analytics"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/ports"
)

type weekKey struct {
	year       int
	week       string
	locationID string
	name       string
}

type monthKey struct {
	year       int
	month      string
	locationID string
}

// TrendByWeek sums dwell per calendar year, ISO week, location and vessel for
// the watch-list vessels, largest total first.
func (s *Service) TrendByWeek(ctx context.Context) ([]WeeklyTrendView, error) {
	ctx, err := s.begin(ctx, QueryTrendByWeek)
	if err != nil {
		return nil, err
	}

	var out []WeeklyTrendView
	err = s.run(ctx, QueryTrendByWeek, func(ctx context.Context) error {
		rows, err := s.repo.ListPingsForVessels(ctx, domainanalytics.TrendWatchList())
		if err != nil {
			return err
		}
		views, err := aggregateWeeklyTrend(rows)
		if err != nil {
			return err
		}
		out = views
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func aggregateWeeklyTrend(rows []ports.PingRow) ([]WeeklyTrendView, error) {
	totals := make(map[weekKey]*sum)
	for _, row := range rows {
		pingTime, err := domainanalytics.ParseStoredTimestamp("TransponderPing.time", row.Time)
		if err != nil {
			return nil, errs.Wrapf(err, "ping %q", row.PingID)
		}
		_, week := pingTime.ISOWeek()
		key := weekKey{
			year:       pingTime.Year(),
			week:       fmt.Sprintf("%02d", week),
			locationID: row.LocationID,
			name:       row.VesselName,
		}
		total, ok := totals[key]
		if !ok {
			total = &sum{}
			totals[key] = total
		}

		dwell, ok, err := domainanalytics.DwellValue(row.Dwell)
		if err != nil {
			return nil, errs.Wrapf(err, "ping %q", row.PingID)
		}
		if ok {
			total.add(dwell)
		}
	}

	views := make([]WeeklyTrendView, 0, len(totals))
	for key, total := range totals {
		views = append(views, WeeklyTrendView{
			Year:       key.year,
			Week:       key.week,
			LocationID: key.locationID,
			Name:       key.name,
			TotalDwell: total.ptr(),
		})
	}
	// Ties keep a chronological order so output is deterministic.
	slices.SortFunc(views, func(a, b WeeklyTrendView) int {
		if c := compareSumDesc(a.TotalDwell, b.TotalDwell); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		if c := strings.Compare(a.Week, b.Week); c != 0 {
			return c
		}
		if c := strings.Compare(a.LocationID, b.LocationID); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return views, nil
}

// TrendByMonth counts non-null dwell values per year, month and location for
// the watch-list vessels, in chronological order.
func (s *Service) TrendByMonth(ctx context.Context) ([]MonthlyTrendView, error) {
	ctx, err := s.begin(ctx, QueryTrendByMonth)
	if err != nil {
		return nil, err
	}

	var out []MonthlyTrendView
	err = s.run(ctx, QueryTrendByMonth, func(ctx context.Context) error {
		rows, err := s.repo.ListPingsForVessels(ctx, domainanalytics.TrendWatchList())
		if err != nil {
			return err
		}
		views, err := aggregateMonthlyTrend(rows)
		if err != nil {
			return err
		}
		out = views
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func aggregateMonthlyTrend(rows []ports.PingRow) ([]MonthlyTrendView, error) {
	counts := make(map[monthKey]int)
	for _, row := range rows {
		pingTime, err := domainanalytics.ParseStoredTimestamp("TransponderPing.time", row.Time)
		if err != nil {
			return nil, errs.Wrapf(err, "ping %q", row.PingID)
		}
		key := monthKey{
			year:       pingTime.Year(),
			month:      fmt.Sprintf("%02d", int(pingTime.Month())),
			locationID: row.LocationID,
		}
		count := counts[key]
		if row.Dwell != nil {
			count++
		}
		counts[key] = count
	}

	views := make([]MonthlyTrendView, 0, len(counts))
	for key, count := range counts {
		views = append(views, MonthlyTrendView{
			Year:       key.year,
			Week:       key.month,
			LocationID: key.locationID,
			DwellCount: count,
		})
	}
	slices.SortFunc(views, func(a, b MonthlyTrendView) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		if c := strings.Compare(a.Week, b.Week); c != 0 {
			return c
		}
		return strings.Compare(a.LocationID, b.LocationID)
	})
	return views, nil
}
