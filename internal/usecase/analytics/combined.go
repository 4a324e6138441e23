package analytics

import (
	"context"

	domainanalytics "vesselwatch/internal/domain/analytics"
	"vesselwatch/internal/ports"
)

// CombinedCargoFishJoin pairs positive-tonnage fish deliveries of species
// never found at fishing grounds with the cargo vessels seen at the delivery
// location that day. A delivery without a matching vessel appears once with
// null vessel fields; several matches produce one row each.
func (s *Service) CombinedCargoFishJoin(ctx context.Context) ([]CombinedView, error) {
	ctx, err := s.begin(ctx, QueryCombinedCargoFish)
	if err != nil {
		return nil, err
	}

	var out []CombinedView
	err = s.run(ctx, QueryCombinedCargoFish, func(ctx context.Context) error {
		deliveries, err := s.repo.ListFishDeliveries(ctx, domainanalytics.FishingActivities)
		if err != nil {
			return err
		}
		cargo, err := s.cargoDeliveries(ctx)
		if err != nil {
			return err
		}
		views, err := joinCargoFish(deliveries, cargo)
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

func joinCargoFish(deliveries []ports.FishDeliveryRow, cargo []CargoDeliveryView) ([]CombinedView, error) {
	byReport := make(map[string][]CargoDeliveryView)
	for _, c := range cargo {
		byReport[c.DeliveryReportID] = append(byReport[c.DeliveryReportID], c)
	}

	// Rows are distinct on the numeric tonnage, so "10" and "10.0" for the
	// same delivery collapse into one.
	type deliveryKey struct {
		reportID     string
		tons         float64
		locationID   string
		date         nullable
		fishTypeName string
	}
	seen := make(map[deliveryKey]struct{}, len(deliveries))

	views := make([]CombinedView, 0, len(deliveries))
	for _, delivery := range deliveries {
		// A NULL tonnage fails "> 0" in SQL, so it is skipped rather than rejected.
		if delivery.QtyTons == nil {
			continue
		}
		tons, err := domainanalytics.ParseNumeric("Delivery_Report.qty_tons", *delivery.QtyTons)
		if err != nil {
			return nil, withReport(err, delivery.ReportID)
		}
		if tons <= 0 {
			continue
		}
		key := deliveryKey{
			reportID:     delivery.ReportID,
			tons:         tons,
			locationID:   delivery.LocationID,
			date:         nullableOf(delivery.Date),
			fishTypeName: delivery.FishTypeName,
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		base := CombinedView{
			ReportID:     delivery.ReportID,
			Ton:          tons,
			LocationID:   delivery.LocationID,
			Date:         delivery.Date,
			FishTypeName: delivery.FishTypeName,
		}
		matches := byReport[delivery.ReportID]
		if len(matches) == 0 {
			views = append(views, base)
			continue
		}
		for _, match := range matches {
			row := base
			row.VesselID = &match.VesselID
			row.VesselName = &match.VesselName
			views = append(views, row)
		}
	}
	return views, nil
}
