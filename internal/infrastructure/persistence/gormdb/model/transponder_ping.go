package model

type TransponderPing struct {
	ID         string    `gorm:"column:id;type:text;primaryKey"`
	VesselID   string    `gorm:"column:vessel_id;type:text;not null;index"`
	Vessel     *Vessel   `gorm:"foreignKey:VesselID;references:ID;constraint:OnDelete:CASCADE"`
	LocationID string    `gorm:"column:location_id;type:text;not null;index"`
	Location   *Location `gorm:"foreignKey:LocationID;references:ID;constraint:OnDelete:CASCADE"`
	Dwell      *string   `gorm:"column:dwell;type:text"`
	DateAdded  *string   `gorm:"column:date_added;type:text;index"`
	Time       *string   `gorm:"column:time;type:text"`
}

func (TransponderPing) TableName() string {
	return "TransponderPing"
}
