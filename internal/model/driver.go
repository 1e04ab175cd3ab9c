package model

import (
	"time"
)

type LicenseType string

const (
	LicenseTypeB  LicenseType = "B"
	LicenseTypeC  LicenseType = "C"
	LicenseTypeD  LicenseType = "D"
	LicenseTypeCE LicenseType = "CE"
	LicenseTypeDE LicenseType = "DE"
)

func (t LicenseType) Valid() bool {
	switch t {
	case LicenseTypeB, LicenseTypeC, LicenseTypeD, LicenseTypeCE, LicenseTypeDE:
		return true
	}
	return false
}

type DriverStatus string

const (
	DriverStatusActive    DriverStatus = "ACTIVE"
	DriverStatusOnLeave   DriverStatus = "ON_LEAVE"
	DriverStatusSuspended DriverStatus = "SUSPENDED"
)

func (s DriverStatus) Valid() bool {
	switch s {
	case DriverStatusActive, DriverStatusOnLeave, DriverStatusSuspended:
		return true
	}
	return false
}

type Driver struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	FirstName     string       `gorm:"type:varchar(64);not null" json:"first_name"`
	LastName      string       `gorm:"type:varchar(64);not null" json:"last_name"`
	LicenseNumber string       `gorm:"type:varchar(32);uniqueIndex;not null" json:"license_number"`
	LicenseType   LicenseType  `gorm:"type:license_type;not null" json:"license_type"`
	DateOfBirth   Date         `gorm:"type:date;not null" json:"date_of_birth"`
	PhoneNumber   string       `gorm:"type:varchar(32)" json:"phone_number"`
	Email         string       `gorm:"type:varchar(128)" json:"email"`
	Status        DriverStatus `gorm:"type:driver_status;not null;default:'ACTIVE'" json:"status"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}
