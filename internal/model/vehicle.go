package model

import (
	"time"
)

type VehicleType string

const (
	VehicleTypeCar   VehicleType = "CAR"
	VehicleTypeVan   VehicleType = "VAN"
	VehicleTypeTruck VehicleType = "TRUCK"
	VehicleTypeBus   VehicleType = "BUS"
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeCar, VehicleTypeVan, VehicleTypeTruck, VehicleTypeBus:
		return true
	}
	return false
}

type VehicleStatus string

const (
	VehicleStatusAvailable  VehicleStatus = "AVAILABLE"
	VehicleStatusInUse      VehicleStatus = "IN_USE"
	VehicleStatusOutOfOrder VehicleStatus = "OUT_OF_ORDER"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusInUse, VehicleStatusOutOfOrder:
		return true
	}
	return false
}

// Vehicle owns the assignment relation: DriverID is the single source of
// truth for "who operates this vehicle". The driver side is always derived.
type Vehicle struct {
	ID                      uint          `gorm:"primaryKey" json:"id"`
	LicensePlate            string        `gorm:"type:varchar(16);uniqueIndex;not null" json:"license_plate"`
	Brand                   string        `gorm:"type:varchar(64);not null" json:"brand"`
	Model                   string        `gorm:"type:varchar(64);not null" json:"model"`
	ProductionYear          int           `gorm:"not null" json:"production_year"`
	Type                    VehicleType   `gorm:"type:vehicle_type;not null" json:"type"`
	RegistrationDate        Date          `gorm:"type:date;not null" json:"registration_date"`
	TechnicalInspectionDate Date          `gorm:"type:date;not null" json:"technical_inspection_date"`
	Mileage                 float64       `gorm:"not null;default:0" json:"mileage"`
	Status                  VehicleStatus `gorm:"type:vehicle_status;not null;default:'AVAILABLE'" json:"status"`
	DriverID                *uint         `gorm:"index" json:"driver_id"`
	CreatedAt               time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Driver *Driver `gorm:"foreignKey:DriverID" json:"-"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
