package model

import "time"

type DriverBrief struct {
	ID            uint   `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	LicenseNumber string `json:"license_number"`
}

type VehicleBrief struct {
	ID           uint          `json:"id"`
	LicensePlate string        `json:"license_plate"`
	Brand        string        `json:"brand"`
	Model        string        `json:"model"`
	Status       VehicleStatus `json:"status"`
}

type VehicleView struct {
	ID                      uint          `json:"id"`
	LicensePlate            string        `json:"license_plate"`
	Brand                   string        `json:"brand"`
	Model                   string        `json:"model"`
	ProductionYear          int           `json:"production_year"`
	Type                    VehicleType   `json:"type"`
	RegistrationDate        Date          `json:"registration_date"`
	TechnicalInspectionDate Date          `json:"technical_inspection_date"`
	Mileage                 float64       `json:"mileage"`
	Status                  VehicleStatus `json:"status"`
	Driver                  *DriverBrief  `json:"driver"`
	CreatedAt               time.Time     `json:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at"`
}

type DriverView struct {
	ID            uint           `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	LicenseNumber string         `json:"license_number"`
	LicenseType   LicenseType    `json:"license_type"`
	DateOfBirth   Date           `json:"date_of_birth"`
	PhoneNumber   string         `json:"phone_number"`
	Email         string         `json:"email"`
	Status        DriverStatus   `json:"status"`
	Vehicles      []VehicleBrief `json:"vehicles"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type VehiclePage struct {
	Items      []VehicleView `json:"items"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	TotalItems int64         `json:"total_items"`
	TotalPages int           `json:"total_pages"`
}

type DriverPage struct {
	Items      []DriverView `json:"items"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	TotalItems int64        `json:"total_items"`
	TotalPages int          `json:"total_pages"`
}
