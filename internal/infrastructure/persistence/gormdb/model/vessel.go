package model

import "vesselwatch/internal/domain/analytics"

const CargoVesselType = analytics.CargoVesselType

type Vessel struct {
	ID   string `gorm:"column:id;type:text;primaryKey"`
	Name string `gorm:"column:name;type:text;not null"`
	Type string `gorm:"column:type;type:text;not null;index"`
}

func (Vessel) TableName() string {
	return "Vessel"
}
