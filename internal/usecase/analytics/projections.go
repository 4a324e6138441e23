package analytics

import (
	"strings"

	"vesselwatch/internal/ports"
)

func toLocationActivityViews(rows []ports.LocationActivityRow) []LocationActivityView {
	views := make([]LocationActivityView, 0, len(rows))
	for _, row := range rows {
		views = append(views, LocationActivityView{
			ID:         row.ID,
			Activity:   row.Activity,
			LocationID: row.LocationID,
		})
	}
	return views
}

func toPingViews(rows []ports.PingRow) []PingView {
	views := make([]PingView, 0, len(rows))
	for _, row := range rows {
		views = append(views, PingView{
			VesselID:     row.VesselID,
			VesselName:   row.VesselName,
			VesselType:   row.VesselType,
			LocationID:   row.LocationID,
			LocationName: row.LocationName,
			Dwell:        row.Dwell,
			DateAdded:    row.DateAdded,
		})
	}
	return views
}

func toHarborReportViews(rows []ports.HarborReportRow) []HarborReportView {
	views := make([]HarborReportView, 0, len(rows))
	for _, row := range rows {
		views = append(views, HarborReportView{
			VesselID:     row.VesselID,
			VesselName:   row.VesselName,
			VesselType:   row.VesselType,
			LocationID:   row.LocationID,
			LocationName: row.LocationName,
			DateAdded:    row.DateAdded,
			Date:         row.Date,
		})
	}
	return views
}

func toCargoDeliveryView(row ports.CargoDeliveryRow) CargoDeliveryView {
	return CargoDeliveryView{
		DeliveryReportID: row.DeliveryReportID,
		VesselID:         row.VesselID,
		VesselName:       row.VesselName,
		LocationID:       row.LocationID,
		TransactionDate:  row.TransactionDate,
		TransponderTime:  row.PingTime,
	}
}

// nullable is a comparable form of *string for group keys.
type nullable struct {
	value string
	valid bool
}

func nullableOf(p *string) nullable {
	if p == nil {
		return nullable{}
	}
	return nullable{value: *p, valid: true}
}

func (n nullable) ptr() *string {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

// compareNullable orders null before any value.
func compareNullable(a, b nullable) int {
	switch {
	case a.valid == b.valid:
		return strings.Compare(a.value, b.value)
	case !a.valid:
		return -1
	default:
		return 1
	}
}

// sum accumulates like SQL SUM: null until the first non-null value.
type sum struct {
	total float64
	valid bool
}

func (s *sum) add(v float64) {
	s.total += v
	s.valid = true
}

func (s sum) ptr() *float64 {
	if !s.valid {
		return nil
	}
	v := s.total
	return &v
}

// compareSumDesc orders larger totals first. Null totals come before every
// value, the way a descending ORDER BY sorts NULLs in PostgreSQL.
func compareSumDesc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a > *b:
		return -1
	case *a < *b:
		return 1
	default:
		return 0
	}
}
