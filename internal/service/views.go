package service

import (
	"fmt"

	"fleet-service/internal/model"
)

func buildVehicleView(vehicle *model.Vehicle) model.VehicleView {
	view := model.VehicleView{
		ID:                      vehicle.ID,
		LicensePlate:            vehicle.LicensePlate,
		Brand:                   vehicle.Brand,
		Model:                   vehicle.Model,
		ProductionYear:          vehicle.ProductionYear,
		Type:                    vehicle.Type,
		RegistrationDate:        vehicle.RegistrationDate,
		TechnicalInspectionDate: vehicle.TechnicalInspectionDate,
		Mileage:                 vehicle.Mileage,
		Status:                  vehicle.Status,
		CreatedAt:               vehicle.CreatedAt,
		UpdatedAt:               vehicle.UpdatedAt,
	}
	if vehicle.Driver != nil {
		view.Driver = &model.DriverBrief{
			ID:            vehicle.Driver.ID,
			FirstName:     vehicle.Driver.FirstName,
			LastName:      vehicle.Driver.LastName,
			LicenseNumber: vehicle.Driver.LicenseNumber,
		}
	}
	return view
}

func buildVehicleViews(vehicles []model.Vehicle) []model.VehicleView {
	views := make([]model.VehicleView, 0, len(vehicles))
	for i := range vehicles {
		views = append(views, buildVehicleView(&vehicles[i]))
	}
	return views
}

func buildDriverView(driver *model.Driver, vehicles []model.Vehicle) model.DriverView {
	view := model.DriverView{
		ID:            driver.ID,
		FirstName:     driver.FirstName,
		LastName:      driver.LastName,
		LicenseNumber: driver.LicenseNumber,
		LicenseType:   driver.LicenseType,
		DateOfBirth:   driver.DateOfBirth,
		PhoneNumber:   driver.PhoneNumber,
		Email:         driver.Email,
		Status:        driver.Status,
		Vehicles:      make([]model.VehicleBrief, 0, len(vehicles)),
		CreatedAt:     driver.CreatedAt,
		UpdatedAt:     driver.UpdatedAt,
	}
	for _, vehicle := range vehicles {
		view.Vehicles = append(view.Vehicles, model.VehicleBrief{
			ID:           vehicle.ID,
			LicensePlate: vehicle.LicensePlate,
			Brand:        vehicle.Brand,
			Model:        vehicle.Model,
			Status:       vehicle.Status,
		})
	}
	return view
}

// Cache keys follow the lookup parameters: every query that can be cached
// has exactly one key, and invalidation recomputes the key set from the
// before- and after-images of the touched records.

func vehicleIDKey(id uint) string { return fmt.Sprintf("vehicle:%d", id) }

func vehiclePlateKey(plate string) string { return "licensePlate:" + plate }

func vehiclesByDriverKey(driverID uint) string { return fmt.Sprintf("driver:%d", driverID) }

func vehicleCacheKeys(vehicle *model.Vehicle) []string {
	keys := []string{
		vehicleIDKey(vehicle.ID),
		vehiclePlateKey(vehicle.LicensePlate),
		"status:" + string(vehicle.Status),
		"type:" + string(vehicle.Type),
		fmt.Sprintf("brandAndModel:%s:%s", vehicle.Brand, vehicle.Model),
	}
	if vehicle.DriverID != nil {
		keys = append(keys, vehiclesByDriverKey(*vehicle.DriverID))
	}
	return keys
}

func driverIDKey(id uint) string { return fmt.Sprintf("driver:%d", id) }

func driverCacheKeys(driver *model.Driver) []string {
	return []string{
		driverIDKey(driver.ID),
		"licenseNumber:" + driver.LicenseNumber,
		"status:" + string(driver.Status),
	}
}

// eviction accumulates cache keys while a transaction runs; the services
// flush it only after a successful commit, so a failed operation never
// invalidates anything.
type eviction struct {
	vehicleKeys []string
	driverKeys  []string
}

func (e *eviction) vehicle(vehicle *model.Vehicle) {
	e.vehicleKeys = append(e.vehicleKeys, vehicleCacheKeys(vehicle)...)
}

func (e *eviction) driver(driver *model.Driver) {
	e.driverKeys = append(e.driverKeys, driverCacheKeys(driver)...)
}
