package model

type Location struct {
	ID   string  `gorm:"column:id;type:text;primaryKey"`
	Name *string `gorm:"column:name;type:text"`
}

func (Location) TableName() string {
	return "Location"
}
