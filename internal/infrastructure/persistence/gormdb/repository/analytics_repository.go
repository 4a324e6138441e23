package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"vesselwatch/internal/errs"
	"vesselwatch/internal/infrastructure/persistence/gormdb/model"
	"vesselwatch/internal/ports"
)

// Every statement binds its values as parameters. The SQL sticks to constructs
// shared by SQLite and PostgreSQL; identifiers are quoted because the tables
// use mixed-case names.

const pingSelect = `
SELECT
	t.id AS ping_id,
	v.id AS vessel_id,
	v.name AS vessel_name,
	v.type AS vessel_type,
	l.id AS location_id,
	l.name AS location_name,
	t.dwell AS dwell,
	t.date_added AS date_added,
	t."time" AS "time"
FROM "TransponderPing" AS t
JOIN "Vessel" AS v ON v.id = t.vessel_id
JOIN "Location" AS l ON l.id = t.location_id`

const harborReportSelect = `
SELECT
	h.id AS report_id,
	v.id AS vessel_id,
	v.name AS vessel_name,
	v.type AS vessel_type,
	l.id AS location_id,
	l.name AS location_name,
	h.date AS date,
	h.date_added AS date_added
FROM "Harbor_Report" AS h
JOIN "Vessel" AS v ON v.id = h.vessel_id
JOIN "Location" AS l ON l.id = h.location_id`

// Transactions are read first so the ping window can be bound on both ends;
// the exact window is checked again after the timestamps are parsed.
const locationTransactionSQL = `
SELECT DISTINCT
	tr.report_id AS report_id,
	tr.target AS target,
	tr.date AS date
FROM "Transaction" AS tr
JOIN "Delivery_Report" AS d ON d.id = tr.report_id
JOIN "Location" AS l ON l.id = tr.target
WHERE tr.date IS NOT NULL
ORDER BY tr.report_id, tr.target, tr.date`

const cargoDeliverySQL = `
SELECT
	d.id AS delivery_report_id,
	v.id AS vessel_id,
	v.name AS vessel_name,
	t.location_id AS location_id,
	tr.date AS transaction_date,
	t."time" AS ping_time
FROM "TransponderPing" AS t
JOIN "Vessel" AS v ON v.id = t.vessel_id
JOIN "Transaction" AS tr ON tr.target = t.location_id
JOIN "Delivery_Report" AS d ON d.id = tr.report_id
WHERE v.type = ?
	AND tr.report_id = ?
	AND tr.target = ?
	AND tr.date = ?
	AND t."time" >= ?
	AND t."time" < ?
ORDER BY t."time", v.id`

const fishTransactionSQL = `
SELECT DISTINCT
	tr.report_id AS report_id,
	tr.target AS target,
	tr.date AS date
FROM "Transaction" AS tr
JOIN "Fish_Location" AS fl ON fl.fish_id = tr.target
WHERE tr.report_id = ?
	AND tr.date IS NOT NULL
ORDER BY tr.target, tr.date`

const fishingCandidateSQL = `
SELECT
	v.name AS vessel_name,
	v.type AS vessel_type,
	l.name AS location_name,
	la.activity AS activity,
	t."time" AS ping_time,
	t.dwell AS dwell,
	tr.date AS transaction_date
FROM "Transaction" AS tr
JOIN "Fish_Location" AS fl ON fl.fish_id = tr.target
JOIN "TransponderPing" AS t ON t.location_id = fl.location_id
JOIN "Location" AS l ON l.id = fl.location_id
JOIN "Vessel" AS v ON v.id = t.vessel_id
JOIN "Location_Activities" AS la ON la.location_id = fl.location_id
WHERE tr.report_id = ?
	AND tr.target = ?
	AND tr.date = ?
	AND t."time" >= ?
	AND t."time" < ?
ORDER BY t.id, la.id`

// A delivery qualifies when its fish type is found at a location with a
// non-fishing activity and is never found at a fishing location. The second
// transaction of the same report names the delivery location.
const fishDeliverySQL = `
SELECT DISTINCT
	tr.report_id AS report_id,
	d.qty_tons AS qty_tons,
	l.id AS location_id,
	d.date AS date,
	ft.name AS fish_type_name
FROM "Location_Activities" AS la
JOIN "Fish_Location" AS fl ON fl.location_id = la.location_id
JOIN "Fish_Type" AS ft ON ft.id = fl.fish_id
JOIN "Transaction" AS tr ON tr.target = ft.id
JOIN "Delivery_Report" AS d ON d.id = tr.report_id
JOIN "Transaction" AS t2 ON t2.report_id = tr.report_id
JOIN "Location" AS l ON l.id = t2.target
WHERE la.activity NOT IN ?
	AND ft.name NOT IN (
		SELECT ft2.name
		FROM "Location_Activities" AS la2
		JOIN "Fish_Location" AS fl2 ON fl2.location_id = la2.location_id
		JOIN "Fish_Type" AS ft2 ON ft2.id = fl2.fish_id
		WHERE la2.activity IN ?
	)
ORDER BY d.date DESC, tr.report_id, l.id`

type AnalyticsRepository struct {
	db *gorm.DB
}

var _ ports.AnalyticsReadRepository = (*AnalyticsRepository)(nil)

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *AnalyticsRepository) ListLocationActivities(ctx context.Context, filter ports.LocationActivityFilter) ([]ports.LocationActivityRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.LocationActivity{})
	if locationID := strings.TrimSpace(filter.LocationID); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}

	var rows []model.LocationActivity
	if err := query.Order("id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query location activities")
	}

	items := make([]ports.LocationActivityRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.LocationActivityRow{
			ID:         row.ID,
			Activity:   row.Activity,
			LocationID: row.LocationID,
		})
	}
	return items, nil
}

func (r *AnalyticsRepository) ListPingsAddedBetween(ctx context.Context, dateRange ports.DateRange) ([]ports.PingRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.PingRow, 0)
	if err := db.Raw(
		pingSelect+"\nWHERE t.date_added BETWEEN ? AND ?\nORDER BY t.date_added, t.id",
		dateRange.Start, dateRange.End,
	).Scan(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query pings by date_added")
	}
	return rows, nil
}

func (r *AnalyticsRepository) ListPingsForVessels(ctx context.Context, vesselIDs []string) ([]ports.PingRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.PingRow, 0)
	if len(vesselIDs) == 0 {
		return rows, nil
	}
	if err := db.Raw(
		pingSelect+"\nWHERE t.vessel_id IN ?\nORDER BY t.id",
		vesselIDs,
	).Scan(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query pings by vessel")
	}
	return rows, nil
}

// ListHarborReports returns every report when dateRange is nil.
func (r *AnalyticsRepository) ListHarborReports(ctx context.Context, dateRange *ports.DateRange) ([]ports.HarborReportRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.HarborReportRow, 0)
	var result *gorm.DB
	if dateRange == nil {
		result = db.Raw(harborReportSelect + "\nORDER BY h.id").Scan(&rows)
	} else {
		result = db.Raw(
			harborReportSelect+"\nWHERE h.date_added BETWEEN ? AND ?\nORDER BY h.date_added, h.id",
			dateRange.Start, dateRange.End,
		).Scan(&rows)
	}
	if result.Error != nil {
		return nil, errs.Wrap(result.Error, "query harbor reports")
	}
	return rows, nil
}

func (r *AnalyticsRepository) ListLocationTransactions(ctx context.Context) ([]ports.DeliveryTransaction, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.DeliveryTransaction, 0)
	if err := db.Raw(locationTransactionSQL).Scan(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query location transactions")
	}
	return rows, nil
}

func (r *AnalyticsRepository) ListCargoDeliveryCandidates(ctx context.Context, vesselType string, tx ports.DeliveryTransaction, window ports.TimeWindow) ([]ports.CargoDeliveryRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.CargoDeliveryRow, 0)
	if err := db.Raw(
		cargoDeliverySQL,
		vesselType, tx.ReportID, tx.Target, tx.Date, window.From, window.To,
	).Scan(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query cargo delivery candidates for report %q", tx.ReportID)
	}
	return rows, nil
}

func (r *AnalyticsRepository) ListFishTransactions(ctx context.Context, reportID string) ([]ports.DeliveryTransaction, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.DeliveryTransaction, 0)
	if err := db.Raw(fishTransactionSQL, reportID).Scan(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query fish transactions")
	}
	return rows, nil
}

func (r *AnalyticsRepository) ListFishingCandidates(ctx context.Context, tx ports.DeliveryTransaction, window ports.TimeWindow) ([]ports.FishingCandidateRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ports.FishingCandidateRow, 0)
	if err := db.Raw(
		fishingCandidateSQL,
		tx.ReportID, tx.Target, tx.Date, window.From, window.To,
	).Scan(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query fishing candidates")
	}
	return rows, nil
}

func (r *AnalyticsRepository) ListFishDeliveries(ctx context.Context, excludedActivities []string) ([]ports.FishDeliveryRow, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(excludedActivities) == 0 {
		return nil, errors.New("excluded activities are required")
	}

	rows := make([]ports.FishDeliveryRow, 0)
	if err := db.Raw(fishDeliverySQL, excludedActivities, excludedActivities).Scan(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query fish deliveries")
	}
	return rows, nil
}

func (r *AnalyticsRepository) Ping(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return errs.Wrap(err, "get sql db")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.Wrap(err, "ping database")
	}
	return nil
}
