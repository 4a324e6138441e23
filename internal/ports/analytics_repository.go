package ports

import "context"

// Row types carry stored text as-is. Parsing and casting happen in the usecase
// layer so malformed values surface as errors instead of store-specific casts.

type LocationActivityRow struct {
	ID         uint64
	Activity   *string
	LocationID *string
}

type PingRow struct {
	PingID       string
	VesselID     string
	VesselName   string
	VesselType   string
	LocationID   string
	LocationName *string
	Dwell        *string
	DateAdded    *string
	Time         *string
}

type HarborReportRow struct {
	ReportID     string
	VesselID     string
	VesselName   string
	VesselType   string
	LocationID   string
	LocationName *string
	Date         *string
	DateAdded    *string
}

// DeliveryTransaction is one dated Transaction row of a delivery report.
type DeliveryTransaction struct {
	ReportID string
	Target   string
	Date     string
}

// TimeWindow is the half-open range [From, To) compared lexically against
// stored timestamps. Bounds are YYYY-MM-DD dates, so a timestamp on day To is
// outside.
type TimeWindow struct {
	From string
	To   string
}

// CargoDeliveryRow is one (delivery report, transaction, ping) candidate for a
// cargo vessel at the transaction's target location.
type CargoDeliveryRow struct {
	DeliveryReportID string
	VesselID         string
	VesselName       string
	LocationID       string
	TransactionDate  *string
	PingTime         *string
}

type FishingCandidateRow struct {
	VesselName      string
	VesselType      string
	LocationName    *string
	Activity        *string
	PingTime        *string
	Dwell           *string
	TransactionDate *string
}

type FishDeliveryRow struct {
	ReportID     string
	QtyTons      *string
	LocationID   string
	Date         *string
	FishTypeName string
}

// DateRange bounds are normalized YYYY-MM-DD strings, compared inclusively.
type DateRange struct {
	Start string
	End   string
}

type LocationActivityFilter struct {
	LocationID string
}

type AnalyticsReadRepository interface {
	ListLocationActivities(ctx context.Context, filter LocationActivityFilter) ([]LocationActivityRow, error)
	ListPingsAddedBetween(ctx context.Context, dateRange DateRange) ([]PingRow, error)
	ListPingsForVessels(ctx context.Context, vesselIDs []string) ([]PingRow, error)
	ListHarborReports(ctx context.Context, dateRange *DateRange) ([]HarborReportRow, error)
	// ListLocationTransactions returns the dated transactions of delivery
	// reports whose target is a location.
	ListLocationTransactions(ctx context.Context) ([]DeliveryTransaction, error)
	ListCargoDeliveryCandidates(ctx context.Context, vesselType string, tx DeliveryTransaction, window TimeWindow) ([]CargoDeliveryRow, error)
	// ListFishTransactions returns the dated transactions of reportID whose
	// target is a fish type with a known location.
	ListFishTransactions(ctx context.Context, reportID string) ([]DeliveryTransaction, error)
	ListFishingCandidates(ctx context.Context, tx DeliveryTransaction, window TimeWindow) ([]FishingCandidateRow, error)
	ListFishDeliveries(ctx context.Context, excludedActivities []string) ([]FishDeliveryRow, error)
	Ping(ctx context.Context) error
}
