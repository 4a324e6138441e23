package analytics

import (
	"context"
	"slices"

	domainanalytics "vesselwatch/internal/domain/analytics"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/ports"
)

type fishingKey struct {
	vesselName   string
	locationName nullable
	activity     nullable
	time         nullable
	vesselType   string
}

// PossibleIllegalFishing finds vessels that pinged a location where the
// delivered fish type lives, from three days before the delivery's
// transaction date through the day after. Groups are sorted by total dwell,
// largest first.
func (s *Service) PossibleIllegalFishing(ctx context.Context, reportID string) ([]FishingView, error) {
	ctx, err := s.begin(ctx, QueryIllegalFishing)
	if err != nil {
		return nil, err
	}
	reportID, err = s.reportID(ctx, QueryIllegalFishing, reportID)
	if err != nil {
		return nil, err
	}

	var out []FishingView
	err = s.run(ctx, QueryIllegalFishing, func(ctx context.Context) error {
		rows, err := s.fishingCandidates(ctx, reportID)
		if err != nil {
			return err
		}
		views, err := aggregateFishing(rows)
		if err != nil {
			return errs.Wrapf(err, "report %q", reportID)
		}
		out = views
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// fishingCandidates reads the pings near each fish transaction of reportID,
// bounding the window in the store.
func (s *Service) fishingCandidates(ctx context.Context, reportID string) ([]ports.FishingCandidateRow, error) {
	transactions, err := s.repo.ListFishTransactions(ctx, reportID)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.FishingCandidateRow, 0)
	for _, tx := range transactions {
		txDate, err := domainanalytics.ParseStoredDate("Transaction.date", &tx.Date)
		if err != nil {
			return nil, err
		}
		from, to := domainanalytics.FishingWindowBounds(txDate)

		candidates, err := s.repo.ListFishingCandidates(ctx, tx, ports.TimeWindow{From: from, To: to})
		if err != nil {
			return nil, err
		}
		rows = append(rows, candidates...)
	}
	return rows, nil
}

func aggregateFishing(rows []ports.FishingCandidateRow) ([]FishingView, error) {
	order := make([]fishingKey, 0)
	totals := make(map[fishingKey]*sum)

	for _, row := range rows {
		ok, err := inFishingWindow(row)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		key := fishingKey{
			vesselName:   row.VesselName,
			locationName: nullableOf(row.LocationName),
			activity:     nullableOf(row.Activity),
			time:         nullableOf(row.PingTime),
			vesselType:   row.VesselType,
		}
		total, seen := totals[key]
		if !seen {
			total = &sum{}
			totals[key] = total
			order = append(order, key)
		}

		dwell, ok, err := domainanalytics.DwellValue(row.Dwell)
		if err != nil {
			return nil, err
		}
		if ok {
			total.add(dwell)
		}
	}

	views := make([]FishingView, 0, len(order))
	for _, key := range order {
		views = append(views, FishingView{
			VesselName:   key.vesselName,
			LocationName: key.locationName.ptr(),
			Activity:     key.activity.ptr(),
			Time:         key.time.ptr(),
			Type:         key.vesselType,
			TotalDwell:   totals[key].ptr(),
		})
	}
	slices.SortStableFunc(views, func(a, b FishingView) int {
		return compareSumDesc(a.TotalDwell, b.TotalDwell)
	})
	return views, nil
}

// inFishingWindow treats a NULL ping time as outside the window.
func inFishingWindow(row ports.FishingCandidateRow) (bool, error) {
	if row.PingTime == nil {
		return false, nil
	}
	txDate, err := domainanalytics.ParseStoredDate("Transaction.date", row.TransactionDate)
	if err != nil {
		return false, err
	}
	pingTime, err := domainanalytics.ParseStoredTimestamp("TransponderPing.time", row.PingTime)
	if err != nil {
		return false, err
	}
	return domainanalytics.InFishingWindow(txDate, pingTime), nil
}

func withReport(err error, reportID string) error {
	return errs.Wrapf(err, "delivery report %q", reportID)
}
