package model

// The tables below are owned by the ingestion side. They are modelled so the
// schema can be created for local runs and tests; the service only reads them.

// Transaction links a delivery report to its targets. Target is either a fish
// type id or a location id.
type Transaction struct {
	ReportID string  `gorm:"column:report_id;type:text;not null;index"`
	Target   string  `gorm:"column:target;type:text;not null;index"`
	Date     *string `gorm:"column:date;type:text"`
}

func (Transaction) TableName() string {
	return "Transaction"
}

type DeliveryReport struct {
	ID      string  `gorm:"column:id;type:text;primaryKey"`
	QtyTons *string `gorm:"column:qty_tons;type:text"`
	Date    *string `gorm:"column:date;type:text"`
}

func (DeliveryReport) TableName() string {
	return "Delivery_Report"
}

type FishLocation struct {
	LocationID string `gorm:"column:location_id;type:text;not null;index"`
	FishID     string `gorm:"column:fish_id;type:text;not null;index"`
}

func (FishLocation) TableName() string {
	return "Fish_Location"
}

type FishType struct {
	ID   string `gorm:"column:id;type:text;primaryKey"`
	Name string `gorm:"column:name;type:text;not null"`
}

func (FishType) TableName() string {
	return "Fish_Type"
}
