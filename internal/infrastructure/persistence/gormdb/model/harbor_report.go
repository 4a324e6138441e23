package model

type HarborReport struct {
	ID         string    `gorm:"column:id;type:text;primaryKey"`
	VesselID   string    `gorm:"column:vessel_id;type:text;not null;index"`
	Vessel     *Vessel   `gorm:"foreignKey:VesselID;references:ID;constraint:OnDelete:CASCADE"`
	LocationID string    `gorm:"column:location_id;type:text;not null;index"`
	Location   *Location `gorm:"foreignKey:LocationID;references:ID;constraint:OnDelete:CASCADE"`
	Date       *string   `gorm:"column:date;type:text"`
	DateAdded  *string   `gorm:"column:date_added;type:text;index"`
}

func (HarborReport) TableName() string {
	return "Harbor_Report"
}
