package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-service/internal/cache"
	"fleet-service/internal/model"
)

// licenseMatrix is the fixed license-type / vehicle-type compatibility
// table. A license type missing from the map fails validation outright.
var licenseMatrix = map[model.LicenseType][]model.VehicleType{
	model.LicenseTypeB:  {model.VehicleTypeCar},
	model.LicenseTypeC:  {model.VehicleTypeCar, model.VehicleTypeVan, model.VehicleTypeTruck},
	model.LicenseTypeD:  {model.VehicleTypeCar, model.VehicleTypeBus},
	model.LicenseTypeCE: {model.VehicleTypeCar, model.VehicleTypeVan, model.VehicleTypeTruck},
	model.LicenseTypeDE: {model.VehicleTypeCar, model.VehicleTypeBus},
}

func checkLicenseAllows(licenseType model.LicenseType, vehicleType model.VehicleType) error {
	allowed, ok := licenseMatrix[licenseType]
	if !ok {
		return fmt.Errorf("%w: unknown license type %q", ErrBusinessRule, string(licenseType))
	}
	for _, t := range allowed {
		if t == vehicleType {
			return nil
		}
	}
	return fmt.Errorf("%w: license type %s does not allow operating vehicle type %s",
		ErrBusinessRule, licenseType, vehicleType)
}

type VehicleService struct {
	tx           TxManager
	vehicles     VehicleStore
	drivers      DriverStore
	logs         AssignmentLogStore
	vehicleCache cache.Cache
	driverCache  cache.Cache
	log          zerolog.Logger

	now func() time.Time
}

func NewVehicleService(
	tx TxManager,
	vehicles VehicleStore,
	drivers DriverStore,
	logs AssignmentLogStore,
	vehicleCache cache.Cache,
	driverCache cache.Cache,
	log zerolog.Logger,
) *VehicleService {
	return &VehicleService{
		tx:           tx,
		vehicles:     vehicles,
		drivers:      drivers,
		logs:         logs,
		vehicleCache: vehicleCache,
		driverCache:  driverCache,
		log:          log,
		now:          time.Now,
	}
}

type CreateVehicleInput struct {
	LicensePlate            string
	Brand                   string
	Model                   string
	ProductionYear          int
	Type                    model.VehicleType
	RegistrationDate        model.Date
	TechnicalInspectionDate model.Date
	Mileage                 float64
	Status                  model.VehicleStatus
	DriverID                *uint
}

// VehiclePatch carries a partial update. A nil field keeps the stored
// value. DriverID is the exception: the update operation always takes it
// as the new assignment, so nil clears the link.
type VehiclePatch struct {
	LicensePlate            *string
	Brand                   *string
	Model                   *string
	ProductionYear          *int
	Type                    *model.VehicleType
	RegistrationDate        *model.Date
	TechnicalInspectionDate *model.Date
	Mileage                 *float64
	Status                  *model.VehicleStatus
	DriverID                *uint
}

func (s *VehicleService) Create(ctx context.Context, principal model.Principal, input CreateVehicleInput) (*model.VehicleView, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown vehicle type %q", ErrBusinessRule, string(input.Type))
	}
	if input.Status == "" {
		input.Status = model.VehicleStatusAvailable
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown vehicle status %q", ErrBusinessRule, string(input.Status))
	}
	if input.Mileage < 0 {
		return nil, fmt.Errorf("%w: mileage cannot be negative", ErrBusinessRule)
	}

	var view model.VehicleView
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		existing, err := stores.Vehicles.FindByLicensePlate(ctx, input.LicensePlate)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: vehicle with license plate %s already exists", ErrConflict, input.LicensePlate)
		}

		if err := s.validateInspectionDate(input.LicensePlate, input.TechnicalInspectionDate); err != nil {
			return err
		}

		vehicle := &model.Vehicle{
			LicensePlate:            input.LicensePlate,
			Brand:                   input.Brand,
			Model:                   input.Model,
			ProductionYear:          input.ProductionYear,
			Type:                    input.Type,
			RegistrationDate:        input.RegistrationDate,
			TechnicalInspectionDate: input.TechnicalInspectionDate,
			Mileage:                 input.Mileage,
			Status:                  input.Status,
		}

		if input.DriverID != nil {
			driver, err := stores.Drivers.FindByID(ctx, *input.DriverID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: driver with ID %d", ErrNotFound, *input.DriverID)
				}
				return err
			}
			vehicle.DriverID = &driver.ID
			vehicle.Driver = driver
			evict.driver(driver)
		}

		if err := stores.Vehicles.Save(ctx, vehicle); err != nil {
			return err
		}

		if vehicle.DriverID != nil {
			if err := stores.Logs.Append(ctx, &model.AssignmentLog{
				VehicleID: vehicle.ID,
				DriverID:  *vehicle.DriverID,
				Action:    model.AssignmentActionAssigned,
				Note:      "assigned on vehicle creation",
				ChangedBy: changedBy(principal),
			}); err != nil {
				return err
			}
		}

		evict.vehicle(vehicle)
		view = buildVehicleView(vehicle)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.flush(&evict)
	s.log.Info().Uint("vehicle_id", view.ID).Str("license_plate", view.LicensePlate).Msg("vehicle created")
	return &view, nil
}

func (s *VehicleService) Update(ctx context.Context, principal model.Principal, id uint, patch VehiclePatch) (*model.VehicleView, error) {
	var view model.VehicleView
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		vehicle, err := stores.Vehicles.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vehicle with ID %d", ErrNotFound, id)
			}
			return err
		}
		evict.vehicle(vehicle)

		if patch.LicensePlate != nil && *patch.LicensePlate != vehicle.LicensePlate {
			other, err := stores.Vehicles.FindByLicensePlate(ctx, *patch.LicensePlate)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if other != nil && other.ID != vehicle.ID {
				return fmt.Errorf("%w: vehicle with license plate %s already exists", ErrConflict, *patch.LicensePlate)
			}
			vehicle.LicensePlate = *patch.LicensePlate
		}
		if patch.Brand != nil {
			vehicle.Brand = *patch.Brand
		}
		if patch.Model != nil {
			vehicle.Model = *patch.Model
		}
		if patch.ProductionYear != nil {
			vehicle.ProductionYear = *patch.ProductionYear
		}
		if patch.Type != nil {
			if !patch.Type.Valid() {
				return fmt.Errorf("%w: unknown vehicle type %q", ErrBusinessRule, string(*patch.Type))
			}
			vehicle.Type = *patch.Type
		}
		if patch.RegistrationDate != nil {
			vehicle.RegistrationDate = *patch.RegistrationDate
		}
		if patch.TechnicalInspectionDate != nil {
			vehicle.TechnicalInspectionDate = *patch.TechnicalInspectionDate
		}
		if patch.Mileage != nil {
			if *patch.Mileage < 0 {
				return fmt.Errorf("%w: mileage cannot be negative", ErrBusinessRule)
			}
			vehicle.Mileage = *patch.Mileage
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return fmt.Errorf("%w: unknown vehicle status %q", ErrBusinessRule, string(*patch.Status))
			}
			vehicle.Status = *patch.Status
		}

		if err := s.validateInspectionDate(vehicle.LicensePlate, vehicle.TechnicalInspectionDate); err != nil {
			return err
		}

		// Update always carries the full assignment intent: a driver id
		// re-links, an omitted one clears.
		switch {
		case patch.DriverID != nil:
			if vehicle.DriverID == nil || *vehicle.DriverID != *patch.DriverID {
				if err := s.relinkDriver(ctx, stores, vehicle, *patch.DriverID, principal, &evict); err != nil {
					return err
				}
			} else if err := s.evictAssignedDriver(ctx, stores, vehicle, &evict); err != nil {
				return err
			}
		case vehicle.DriverID != nil:
			if err := s.clearAssignment(ctx, stores, vehicle, "unassigned on vehicle update", principal, &evict); err != nil {
				return err
			}
		}

		if err := stores.Vehicles.Save(ctx, vehicle); err != nil {
			return err
		}

		evict.vehicle(vehicle)
		view = buildVehicleView(vehicle)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.flush(&evict)
	s.log.Info().Uint("vehicle_id", view.ID).Msg("vehicle updated")
	return &view, nil
}

func (s *VehicleService) Delete(ctx context.Context, principal model.Principal, id uint) error {
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		vehicle, err := stores.Vehicles.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vehicle with ID %d", ErrNotFound, id)
			}
			return err
		}

		if vehicle.DriverID != nil && vehicle.Status == model.VehicleStatusInUse {
			return fmt.Errorf("%w: vehicle %s is currently in use by a driver and cannot be deleted",
				ErrBusinessRule, vehicle.LicensePlate)
		}

		evict.vehicle(vehicle)
		if vehicle.DriverID != nil {
			if err := s.clearAssignment(ctx, stores, vehicle, "unassigned on vehicle deletion", principal, &evict); err != nil {
				return err
			}
			if err := stores.Vehicles.Save(ctx, vehicle); err != nil {
				return err
			}
		}

		return stores.Vehicles.Delete(ctx, vehicle.ID)
	})
	if err != nil {
		return err
	}

	s.flush(&evict)
	s.log.Info().Uint("vehicle_id", id).Msg("vehicle deleted")
	return nil
}

func (s *VehicleService) AssignDriver(ctx context.Context, principal model.Principal, vehicleID, driverID uint) (*model.VehicleView, error) {
	var view model.VehicleView
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		vehicle, err := stores.Vehicles.FindByID(ctx, vehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vehicle with ID %d", ErrNotFound, vehicleID)
			}
			return err
		}

		if vehicle.Status == model.VehicleStatusOutOfOrder {
			return fmt.Errorf("%w: vehicle %s is out of order and cannot be assigned",
				ErrBusinessRule, vehicle.LicensePlate)
		}
		if vehicle.DriverID != nil {
			return fmt.Errorf("%w: vehicle %s already has an assigned driver",
				ErrConflict, vehicle.LicensePlate)
		}

		driver, err := stores.Drivers.FindByID(ctx, driverID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: driver with ID %d", ErrNotFound, driverID)
			}
			return err
		}

		if driver.Status == model.DriverStatusSuspended {
			return fmt.Errorf("%w: driver %s %s is suspended",
				ErrBusinessRule, driver.FirstName, driver.LastName)
		}
		if err := checkLicenseAllows(driver.LicenseType, vehicle.Type); err != nil {
			return err
		}

		evict.vehicle(vehicle)
		vehicle.DriverID = &driver.ID
		vehicle.Driver = driver
		if err := stores.Vehicles.Save(ctx, vehicle); err != nil {
			return err
		}

		if err := stores.Logs.Append(ctx, &model.AssignmentLog{
			VehicleID: vehicle.ID,
			DriverID:  driver.ID,
			Action:    model.AssignmentActionAssigned,
			ChangedBy: changedBy(principal),
		}); err != nil {
			return err
		}

		evict.vehicle(vehicle)
		evict.driver(driver)
		view = buildVehicleView(vehicle)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.flush(&evict)
	s.log.Info().Uint("vehicle_id", vehicleID).Uint("driver_id", driverID).Msg("driver assigned to vehicle")
	return &view, nil
}

func (s *VehicleService) RemoveDriver(ctx context.Context, principal model.Principal, vehicleID uint) (*model.VehicleView, error) {
	var view model.VehicleView
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		vehicle, err := stores.Vehicles.FindByID(ctx, vehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vehicle with ID %d", ErrNotFound, vehicleID)
			}
			return err
		}

		if vehicle.DriverID == nil {
			return fmt.Errorf("%w: vehicle %s has no assigned driver", ErrBusinessRule, vehicle.LicensePlate)
		}

		evict.vehicle(vehicle)
		if err := s.clearAssignment(ctx, stores, vehicle, "", principal, &evict); err != nil {
			return err
		}
		if err := stores.Vehicles.Save(ctx, vehicle); err != nil {
			return err
		}

		evict.vehicle(vehicle)
		view = buildVehicleView(vehicle)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.flush(&evict)
	s.log.Info().Uint("vehicle_id", vehicleID).Msg("driver removed from vehicle")
	return &view, nil
}

// UpdateMileage overwrites mileage. The negative-value check runs before
// the existence check; a negative request never touches the store.
func (s *VehicleService) UpdateMileage(ctx context.Context, principal model.Principal, id uint, mileage float64) (*model.VehicleView, error) {
	if mileage < 0 {
		return nil, fmt.Errorf("%w: mileage cannot be negative", ErrBusinessRule)
	}

	var view model.VehicleView
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		vehicle, err := stores.Vehicles.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vehicle with ID %d", ErrNotFound, id)
			}
			return err
		}

		evict.vehicle(vehicle)
		vehicle.Mileage = mileage
		if err := stores.Vehicles.Save(ctx, vehicle); err != nil {
			return err
		}

		evict.vehicle(vehicle)
		view = buildVehicleView(vehicle)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.flush(&evict)
	s.log.Info().Uint("vehicle_id", id).Float64("mileage", mileage).Msg("vehicle mileage updated")
	return &view, nil
}

// UpdateStatus overwrites the status unconditionally. It deliberately does
// not touch the assignment: setting OUT_OF_ORDER on an assigned vehicle
// keeps the link (see DESIGN.md).
func (s *VehicleService) UpdateStatus(ctx context.Context, principal model.Principal, id uint, status model.VehicleStatus) (*model.VehicleView, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown vehicle status %q", ErrBusinessRule, string(status))
	}

	var view model.VehicleView
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		vehicle, err := stores.Vehicles.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vehicle with ID %d", ErrNotFound, id)
			}
			return err
		}

		evict.vehicle(vehicle)
		if err := s.evictAssignedDriver(ctx, stores, vehicle, &evict); err != nil {
			return err
		}
		vehicle.Status = status
		if err := stores.Vehicles.Save(ctx, vehicle); err != nil {
			return err
		}

		evict.vehicle(vehicle)
		view = buildVehicleView(vehicle)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.flush(&evict)
	s.log.Info().Uint("vehicle_id", id).Str("status", string(status)).Msg("vehicle status updated")
	return &view, nil
}

func (s *VehicleService) GetByID(ctx context.Context, id uint) (*model.VehicleView, error) {
	key := vehicleIDKey(id)
	if cached, ok := s.vehicleCache.Get(key); ok {
		if view, ok := cached.(model.VehicleView); ok {
			return &view, nil
		}
	}

	vehicle, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vehicle with ID %d", ErrNotFound, id)
		}
		return nil, err
	}

	view := buildVehicleView(vehicle)
	s.vehicleCache.Set(key, view)
	return &view, nil
}

func (s *VehicleService) GetByLicensePlate(ctx context.Context, plate string) (*model.VehicleView, error) {
	key := vehiclePlateKey(plate)
	if cached, ok := s.vehicleCache.Get(key); ok {
		if view, ok := cached.(model.VehicleView); ok {
			return &view, nil
		}
	}

	vehicle, err := s.vehicles.FindByLicensePlate(ctx, plate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vehicle with license plate %s", ErrNotFound, plate)
		}
		return nil, err
	}

	view := buildVehicleView(vehicle)
	s.vehicleCache.Set(key, view)
	return &view, nil
}

func (s *VehicleService) ListByStatus(ctx context.Context, status model.VehicleStatus) ([]model.VehicleView, error) {
	key := "status:" + string(status)
	if cached, ok := s.vehicleCache.Get(key); ok {
		if views, ok := cached.([]model.VehicleView); ok {
			return views, nil
		}
	}

	vehicles, err := s.vehicles.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	views := buildVehicleViews(vehicles)
	s.vehicleCache.Set(key, views)
	return views, nil
}

func (s *VehicleService) ListByType(ctx context.Context, vehicleType model.VehicleType) ([]model.VehicleView, error) {
	key := "type:" + string(vehicleType)
	if cached, ok := s.vehicleCache.Get(key); ok {
		if views, ok := cached.([]model.VehicleView); ok {
			return views, nil
		}
	}

	vehicles, err := s.vehicles.FindByType(ctx, vehicleType)
	if err != nil {
		return nil, err
	}

	views := buildVehicleViews(vehicles)
	s.vehicleCache.Set(key, views)
	return views, nil
}

func (s *VehicleService) ListByBrandAndModel(ctx context.Context, brand, vehicleModel string) ([]model.VehicleView, error) {
	key := fmt.Sprintf("brandAndModel:%s:%s", brand, vehicleModel)
	if cached, ok := s.vehicleCache.Get(key); ok {
		if views, ok := cached.([]model.VehicleView); ok {
			return views, nil
		}
	}

	vehicles, err := s.vehicles.FindByBrandAndModel(ctx, brand, vehicleModel)
	if err != nil {
		return nil, err
	}

	views := buildVehicleViews(vehicles)
	s.vehicleCache.Set(key, views)
	return views, nil
}

// ListByDriver fails with NotFound when the driver itself is unknown,
// independent of whether any vehicles are assigned.
func (s *VehicleService) ListByDriver(ctx context.Context, driverID uint) ([]model.VehicleView, error) {
	if _, err := s.drivers.FindByID(ctx, driverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: driver with ID %d", ErrNotFound, driverID)
		}
		return nil, err
	}

	key := vehiclesByDriverKey(driverID)
	if cached, ok := s.vehicleCache.Get(key); ok {
		if views, ok := cached.([]model.VehicleView); ok {
			return views, nil
		}
	}

	vehicles, err := s.vehicles.FindByDriverID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	views := buildVehicleViews(vehicles)
	s.vehicleCache.Set(key, views)
	return views, nil
}

func (s *VehicleService) List(ctx context.Context, page, size int) (*model.VehiclePage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	vehicles, total, err := s.vehicles.FindPage(ctx, (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	return &model.VehiclePage{
		Items:      buildVehicleViews(vehicles),
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages(total, size),
	}, nil
}

func (s *VehicleService) AssignmentHistory(ctx context.Context, vehicleID uint) ([]model.AssignmentLog, error) {
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vehicle with ID %d", ErrNotFound, vehicleID)
		}
		return nil, err
	}
	return s.logs.ListByVehicle(ctx, vehicleID)
}

// validateInspectionDate fails when the inspection date has already passed
// and logs an advisory when it expires within a month. Invoked on create
// and update only.
func (s *VehicleService) validateInspectionDate(plate string, date model.Date) error {
	today := model.DateOf(s.now())
	if date.Before(today) {
		s.log.Error().
			Str("license_plate", plate).
			Str("inspection_date", date.String()).
			Msg("technical inspection date has already passed")
		return fmt.Errorf("%w: technical inspection date %s has already passed", ErrBusinessRule, date)
	}
	if date.Before(today.AddMonths(1)) {
		s.log.Warn().
			Str("license_plate", plate).
			Str("inspection_date", date.String()).
			Msg("technical inspection expires within a month")
	}
	return nil
}

// relinkDriver resolves the requested driver and swaps the assignment,
// logging the unassignment of the previous driver when there is one.
func (s *VehicleService) relinkDriver(ctx context.Context, stores Stores, vehicle *model.Vehicle, driverID uint, principal model.Principal, evict *eviction) error {
	driver, err := stores.Drivers.FindByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: driver with ID %d", ErrNotFound, driverID)
		}
		return err
	}

	if vehicle.DriverID != nil {
		if err := s.clearAssignment(ctx, stores, vehicle, "unassigned on vehicle update", principal, evict); err != nil {
			return err
		}
	}

	vehicle.DriverID = &driver.ID
	vehicle.Driver = driver
	evict.driver(driver)

	return stores.Logs.Append(ctx, &model.AssignmentLog{
		VehicleID: vehicle.ID,
		DriverID:  driver.ID,
		Action:    model.AssignmentActionAssigned,
		ChangedBy: changedBy(principal),
	})
}

// evictAssignedDriver marks the assigned driver's cache keys for eviction:
// the driver's derived view embeds a brief of this vehicle, so any vehicle
// field change must drop the cached driver view too.
func (s *VehicleService) evictAssignedDriver(ctx context.Context, stores Stores, vehicle *model.Vehicle, evict *eviction) error {
	if vehicle.DriverID == nil {
		return nil
	}
	driver, err := stores.Drivers.FindByID(ctx, *vehicle.DriverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	evict.driver(driver)
	return nil
}

// clearAssignment drops the vehicle's driver link and records the
// unassignment. The caller persists the vehicle afterwards.
func (s *VehicleService) clearAssignment(ctx context.Context, stores Stores, vehicle *model.Vehicle, note string, principal model.Principal, evict *eviction) error {
	previousID := *vehicle.DriverID

	previous, err := stores.Drivers.FindByID(ctx, previousID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if previous != nil {
		evict.driver(previous)
	}

	vehicle.DriverID = nil
	vehicle.Driver = nil

	return stores.Logs.Append(ctx, &model.AssignmentLog{
		VehicleID: vehicle.ID,
		DriverID:  previousID,
		Action:    model.AssignmentActionUnassigned,
		Note:      note,
		ChangedBy: changedBy(principal),
	})
}

func (s *VehicleService) flush(evict *eviction) {
	if len(evict.vehicleKeys) > 0 {
		s.vehicleCache.Delete(evict.vehicleKeys...)
	}
	if len(evict.driverKeys) > 0 {
		s.driverCache.Delete(evict.driverKeys...)
	}
}

func changedBy(principal model.Principal) *uuid.UUID {
	if principal.UserID == uuid.Nil {
		return nil
	}
	id := principal.UserID
	return &id
}

func totalPages(total int64, size int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
