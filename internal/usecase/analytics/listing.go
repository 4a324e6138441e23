package analytics

import (
	"context"

	domainanalytics "vesselwatch/internal/domain/analytics"
	"vesselwatch/internal/ports"
)

// ListLocationActivities returns every activity and the fixed by-location view.
// ByLocation always filters on domainanalytics.ActivityLocationID.
func (s *Service) ListLocationActivities(ctx context.Context) (LocationActivitiesView, error) {
	ctx, err := s.begin(ctx, QueryLocationActivities)
	if err != nil {
		return LocationActivitiesView{}, err
	}

	var out LocationActivitiesView
	err = s.run(ctx, QueryLocationActivities, func(ctx context.Context) error {
		all, err := s.repo.ListLocationActivities(ctx, ports.LocationActivityFilter{})
		if err != nil {
			return err
		}
		byLocation, err := s.repo.ListLocationActivities(ctx, ports.LocationActivityFilter{
			LocationID: domainanalytics.ActivityLocationID,
		})
		if err != nil {
			return err
		}

		out = LocationActivitiesView{
			All:        toLocationActivityViews(all),
			ByLocation: toLocationActivityViews(byLocation),
		}
		return nil
	})
	if err != nil {
		return LocationActivitiesView{}, err
	}
	return out, nil
}

// TransponderPingsByDateRange lists pings whose date_added lies in
// [start, end], both inclusive.
func (s *Service) TransponderPingsByDateRange(ctx context.Context, start string, end string) (PingListView, error) {
	ctx, err := s.begin(ctx, QueryPingsByDateRange)
	if err != nil {
		return PingListView{}, err
	}
	dateRange, err := s.dateRange(ctx, QueryPingsByDateRange, start, end)
	if err != nil {
		return PingListView{}, err
	}

	var out PingListView
	err = s.run(ctx, QueryPingsByDateRange, func(ctx context.Context) error {
		rows, err := s.repo.ListPingsAddedBetween(ctx, dateRange)
		if err != nil {
			return err
		}
		results := toPingViews(rows)
		out = PingListView{Count: len(results), Results: results}
		return nil
	})
	if err != nil {
		return PingListView{}, err
	}
	return out, nil
}

func (s *Service) HarborReportsAll(ctx context.Context) (HarborReportListView, error) {
	ctx, err := s.begin(ctx, QueryHarborReportsAll)
	if err != nil {
		return HarborReportListView{}, err
	}

	var out HarborReportListView
	err = s.run(ctx, QueryHarborReportsAll, func(ctx context.Context) error {
		rows, err := s.repo.ListHarborReports(ctx, nil)
		if err != nil {
			return err
		}
		results := toHarborReportViews(rows)
		out = HarborReportListView{Count: len(results), Results: results}
		return nil
	})
	if err != nil {
		return HarborReportListView{}, err
	}
	return out, nil
}

// CargoVesselDeliveries lists every (delivery, transaction, ping) triple where
// a cargo vessel pinged the transaction's target location on the day of the
// transaction.
func (s *Service) CargoVesselDeliveries(ctx context.Context) ([]CargoDeliveryView, error) {
	ctx, err := s.begin(ctx, QueryCargoDeliveries)
	if err != nil {
		return nil, err
	}

	var out []CargoDeliveryView
	err = s.run(ctx, QueryCargoDeliveries, func(ctx context.Context) error {
		views, err := s.cargoDeliveries(ctx)
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

// cargoDeliveries bounds each location transaction's ping window in the store,
// so only pings near the transaction date are parsed.
func (s *Service) cargoDeliveries(ctx context.Context) ([]CargoDeliveryView, error) {
	transactions, err := s.repo.ListLocationTransactions(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CargoDeliveryView, 0)
	for _, tx := range transactions {
		txDate, err := domainanalytics.ParseStoredDate("Transaction.date", &tx.Date)
		if err != nil {
			return nil, withReport(err, tx.ReportID)
		}
		from, to := domainanalytics.DeliveryWindowBounds(txDate)

		rows, err := s.repo.ListCargoDeliveryCandidates(ctx, domainanalytics.CargoVesselType, tx, ports.TimeWindow{From: from, To: to})
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			pingTime, err := domainanalytics.ParseStoredTimestamp("TransponderPing.time", row.PingTime)
			if err != nil {
				return nil, withReport(err, row.DeliveryReportID)
			}
			if domainanalytics.InDeliveryWindow(txDate, pingTime) {
				views = append(views, toCargoDeliveryView(row))
			}
		}
	}
	return views, nil
}
