package analytics

// Views fix the JSON field contract of each catalog query. Nullable columns
// stay pointers so clients see null rather than an empty string.

type LocationActivityView struct {
	ID         uint64  `json:"id"`
	Activity   *string `json:"activity"`
	LocationID *string `json:"location_id"`
}

type LocationActivitiesView struct {
	All        []LocationActivityView `json:"getAllLocationActivities"`
	ByLocation []LocationActivityView `json:"getAllLocationActivitiesByLocation"`
}

type PingView struct {
	VesselID     string  `json:"vesselid"`
	VesselName   string  `json:"vesselname"`
	VesselType   string  `json:"vesseltype"`
	LocationID   string  `json:"locationid"`
	LocationName *string `json:"locationname"`
	Dwell        *string `json:"dwell"`
	DateAdded    *string `json:"date_added"`
}

type PingListView struct {
	Count   int        `json:"count"`
	Results []PingView `json:"results"`
}

type HarborReportView struct {
	VesselID     string  `json:"vesselid"`
	VesselName   string  `json:"vesselname"`
	VesselType   string  `json:"vesseltype"`
	LocationID   string  `json:"locationid"`
	LocationName *string `json:"locationname"`
	DateAdded    *string `json:"date_added"`
	Date         *string `json:"date"`
}

type HarborReportListView struct {
	Count   int                `json:"count"`
	Results []HarborReportView `json:"results"`
}

type CargoDeliveryView struct {
	DeliveryReportID string  `json:"delivery_report_id"`
	VesselID         string  `json:"vessel_id"`
	VesselName       string  `json:"vessel_name"`
	LocationID       string  `json:"location_id"`
	TransactionDate  *string `json:"transaction_date"`
	TransponderTime  *string `json:"transponder_time"`
}

// FishingView is one (vessel, location, activity, ping time) group near a
// delivery. TotalDwell is null when every dwell in the group is null.
type FishingView struct {
	VesselName   string   `json:"vessel_name"`
	LocationName *string  `json:"location_name"`
	Activity     *string  `json:"activity"`
	Time         *string  `json:"time"`
	Type         string   `json:"type"`
	TotalDwell   *float64 `json:"total_dwell"`
}

type PingCountView struct {
	VesselType   string   `json:"vessel_type"`
	VesselName   string   `json:"vessel_name"`
	LocationName *string  `json:"location_name"`
	Count        int      `json:"count"`
	DwellSum     *float64 `json:"dwellSum"`
}

type HarborReportCountView struct {
	VesselType   string  `json:"vessel_type"`
	VesselName   string  `json:"vessel_name"`
	LocationName *string `json:"location_name"`
	VesselCount  int     `json:"vessel_count"`
}

// WeeklyTrendView.Week is the zero-padded ISO week number.
type WeeklyTrendView struct {
	Year       int      `json:"year"`
	Week       string   `json:"week"`
	LocationID string   `json:"location_id"`
	Name       string   `json:"name"`
	TotalDwell *float64 `json:"total_dwell"`
}

// MonthlyTrendView carries the zero-padded month in the week field, which is
// what dashboard clients already read.
type MonthlyTrendView struct {
	Year       int    `json:"year"`
	Week       string `json:"week"`
	LocationID string `json:"location_id"`
	DwellCount int    `json:"dwell_count"`
}

// CombinedView joins a fish delivery with the cargo vessels seen at its
// delivery location. Vessel fields are null when no cargo vessel matched.
type CombinedView struct {
	ReportID     string  `json:"report_id"`
	Ton          float64 `json:"ton"`
	LocationID   string  `json:"location_id"`
	Date         *string `json:"date"`
	FishTypeName string  `json:"fish_type_name"`
	VesselID     *string `json:"vessel_id"`
	VesselName   *string `json:"vessel_name"`
}
