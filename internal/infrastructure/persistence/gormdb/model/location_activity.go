package model

// LocationActivity is not keyed by location: a location may carry several activities,
// and location_id is not enforced as a foreign key.
type LocationActivity struct {
	ID         uint64  `gorm:"column:id;primaryKey;autoIncrement"`
	Activity   *string `gorm:"column:activity;type:text"`
	LocationID *string `gorm:"column:location_id;type:text;index"`
}

func (LocationActivity) TableName() string {
	return "Location_Activities"
}
