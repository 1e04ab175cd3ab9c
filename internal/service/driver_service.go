package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-service/internal/cache"
	"fleet-service/internal/model"
)

type DriverService struct {
	tx           TxManager
	drivers      DriverStore
	vehicles     VehicleStore
	logs         AssignmentLogStore
	driverCache  cache.Cache
	vehicleCache cache.Cache
	log          zerolog.Logger

	now func() time.Time
}

func NewDriverService(
	tx TxManager,
	drivers DriverStore,
	vehicles VehicleStore,
	logs AssignmentLogStore,
	driverCache cache.Cache,
	vehicleCache cache.Cache,
	log zerolog.Logger,
) *DriverService {
	return &DriverService{
		tx:           tx,
		drivers:      drivers,
		vehicles:     vehicles,
		logs:         logs,
		driverCache:  driverCache,
		vehicleCache: vehicleCache,
		log:          log,
		now:          time.Now,
	}
}

type CreateDriverInput struct {
	FirstName     string
	LastName      string
	LicenseNumber string
	LicenseType   model.LicenseType
	DateOfBirth   model.Date
	PhoneNumber   string
	Email         string
	Status        model.DriverStatus
}

// DriverPatch carries a partial update; a nil field keeps the stored value.
type DriverPatch struct {
	FirstName     *string
	LastName      *string
	LicenseNumber *string
	LicenseType   *model.LicenseType
	DateOfBirth   *model.Date
	PhoneNumber   *string
	Email         *string
	Status        *model.DriverStatus
}

func (s *DriverService) Create(ctx context.Context, principal model.Principal, input CreateDriverInput) (*model.DriverView, error) {
	if !input.LicenseType.Valid() {
		return nil, fmt.Errorf("%w: unknown license type %q", ErrBusinessRule, string(input.LicenseType))
	}
	if input.Status == "" {
		input.Status = model.DriverStatusActive
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown driver status %q", ErrBusinessRule, string(input.Status))
	}
	if input.DateOfBirth.After(model.DateOf(s.now())) {
		return nil, fmt.Errorf("%w: date of birth cannot be in the future", ErrBusinessRule)
	}

	var view model.DriverView
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		existing, err := stores.Drivers.FindByLicenseNumber(ctx, input.LicenseNumber)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: driver with license number %s already exists", ErrConflict, input.LicenseNumber)
		}

		driver := &model.Driver{
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			LicenseNumber: input.LicenseNumber,
			LicenseType:   input.LicenseType,
			DateOfBirth:   input.DateOfBirth,
			PhoneNumber:   input.PhoneNumber,
			Email:         input.Email,
			Status:        input.Status,
		}
		if err := stores.Drivers.Save(ctx, driver); err != nil {
			return err
		}

		evict.driver(driver)
		view = buildDriverView(driver, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.flush(&evict)
	s.log.Info().Uint("driver_id", view.ID).Str("license_number", view.LicenseNumber).Msg("driver created")
	return &view, nil
}

func (s *DriverService) Update(ctx context.Context, principal model.Principal, id uint, patch DriverPatch) (*model.DriverView, error) {
	var view model.DriverView
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		driver, err := stores.Drivers.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: driver with ID %d", ErrNotFound, id)
			}
			return err
		}
		evict.driver(driver)

		if patch.LicenseNumber != nil && *patch.LicenseNumber != driver.LicenseNumber {
			other, err := stores.Drivers.FindByLicenseNumber(ctx, *patch.LicenseNumber)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if other != nil && other.ID != driver.ID {
				return fmt.Errorf("%w: driver with license number %s already exists", ErrConflict, *patch.LicenseNumber)
			}
			driver.LicenseNumber = *patch.LicenseNumber
		}
		if patch.FirstName != nil {
			driver.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			driver.LastName = *patch.LastName
		}
		if patch.LicenseType != nil {
			// Changing the license type does not re-validate existing
			// assignments (see DESIGN.md).
			if !patch.LicenseType.Valid() {
				return fmt.Errorf("%w: unknown license type %q", ErrBusinessRule, string(*patch.LicenseType))
			}
			driver.LicenseType = *patch.LicenseType
		}
		if patch.DateOfBirth != nil {
			if patch.DateOfBirth.After(model.DateOf(s.now())) {
				return fmt.Errorf("%w: date of birth cannot be in the future", ErrBusinessRule)
			}
			driver.DateOfBirth = *patch.DateOfBirth
		}
		if patch.PhoneNumber != nil {
			driver.PhoneNumber = *patch.PhoneNumber
		}
		if patch.Email != nil {
			driver.Email = *patch.Email
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return fmt.Errorf("%w: unknown driver status %q", ErrBusinessRule, string(*patch.Status))
			}
			driver.Status = *patch.Status
		}

		if err := stores.Drivers.Save(ctx, driver); err != nil {
			return err
		}
		evict.driver(driver)

		vehicles, err := stores.Vehicles.FindByDriverID(ctx, driver.ID)
		if err != nil {
			return err
		}
		// The vehicles' embedded driver brief changed with the driver.
		for i := range vehicles {
			evict.vehicle(&vehicles[i])
		}

		view = buildDriverView(driver, vehicles)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.flush(&evict)
	s.log.Info().Uint("driver_id", id).Msg("driver updated")
	return &view, nil
}

// UpdateStatus overwrites the status unconditionally. Suspending a driver
// leaves current assignments in place; only future assignments are blocked.
func (s *DriverService) UpdateStatus(ctx context.Context, principal model.Principal, id uint, status model.DriverStatus) (*model.DriverView, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown driver status %q", ErrBusinessRule, string(status))
	}

	var view model.DriverView
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		driver, err := stores.Drivers.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: driver with ID %d", ErrNotFound, id)
			}
			return err
		}

		evict.driver(driver)
		driver.Status = status
		if err := stores.Drivers.Save(ctx, driver); err != nil {
			return err
		}
		evict.driver(driver)

		vehicles, err := stores.Vehicles.FindByDriverID(ctx, driver.ID)
		if err != nil {
			return err
		}
		view = buildDriverView(driver, vehicles)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.flush(&evict)
	s.log.Info().Uint("driver_id", id).Str("status", string(status)).Msg("driver status updated")
	return &view, nil
}

// Delete is blocked while any of the driver's vehicles is in use;
// otherwise it unassigns them all before deleting the driver.
func (s *DriverService) Delete(ctx context.Context, principal model.Principal, id uint) error {
	var evict eviction
	err := s.tx.InTx(ctx, func(stores Stores) error {
		driver, err := stores.Drivers.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: driver with ID %d", ErrNotFound, id)
			}
			return err
		}

		vehicles, err := stores.Vehicles.FindByDriverID(ctx, driver.ID)
		if err != nil {
			return err
		}
		for i := range vehicles {
			if vehicles[i].Status == model.VehicleStatusInUse {
				return fmt.Errorf("%w: driver %s %s currently operates vehicle %s",
					ErrBusinessRule, driver.FirstName, driver.LastName, vehicles[i].LicensePlate)
			}
		}

		for i := range vehicles {
			vehicle := &vehicles[i]
			evict.vehicle(vehicle)
			vehicle.DriverID = nil
			vehicle.Driver = nil
			if err := stores.Vehicles.Save(ctx, vehicle); err != nil {
				return err
			}
			if err := stores.Logs.Append(ctx, &model.AssignmentLog{
				VehicleID: vehicle.ID,
				DriverID:  driver.ID,
				Action:    model.AssignmentActionUnassigned,
				Note:      "unassigned on driver deletion",
				ChangedBy: changedBy(principal),
			}); err != nil {
				return err
			}
			evict.vehicle(vehicle)
		}

		evict.driver(driver)
		return stores.Drivers.Delete(ctx, driver.ID)
	})
	if err != nil {
		return err
	}

	s.flush(&evict)
	s.log.Info().Uint("driver_id", id).Msg("driver deleted")
	return nil
}

func (s *DriverService) GetByID(ctx context.Context, id uint) (*model.DriverView, error) {
	key := driverIDKey(id)
	if cached, ok := s.driverCache.Get(key); ok {
		if view, ok := cached.(model.DriverView); ok {
			return &view, nil
		}
	}

	driver, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: driver with ID %d", ErrNotFound, id)
		}
		return nil, err
	}

	vehicles, err := s.vehicles.FindByDriverID(ctx, driver.ID)
	if err != nil {
		return nil, err
	}

	view := buildDriverView(driver, vehicles)
	s.driverCache.Set(key, view)
	return &view, nil
}

func (s *DriverService) GetByLicenseNumber(ctx context.Context, licenseNumber string) (*model.DriverView, error) {
	key := "licenseNumber:" + licenseNumber
	if cached, ok := s.driverCache.Get(key); ok {
		if view, ok := cached.(model.DriverView); ok {
			return &view, nil
		}
	}

	driver, err := s.drivers.FindByLicenseNumber(ctx, licenseNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: driver with license number %s", ErrNotFound, licenseNumber)
		}
		return nil, err
	}

	vehicles, err := s.vehicles.FindByDriverID(ctx, driver.ID)
	if err != nil {
		return nil, err
	}

	view := buildDriverView(driver, vehicles)
	s.driverCache.Set(key, view)
	return &view, nil
}

func (s *DriverService) ListByStatus(ctx context.Context, status model.DriverStatus) ([]model.DriverView, error) {
	key := "status:" + string(status)
	if cached, ok := s.driverCache.Get(key); ok {
		if views, ok := cached.([]model.DriverView); ok {
			return views, nil
		}
	}

	drivers, err := s.drivers.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, drivers)
	if err != nil {
		return nil, err
	}
	s.driverCache.Set(key, views)
	return views, nil
}

func (s *DriverService) List(ctx context.Context, page, size int) (*model.DriverPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	drivers, total, err := s.drivers.FindPage(ctx, (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, drivers)
	if err != nil {
		return nil, err
	}

	return &model.DriverPage{
		Items:      views,
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages(total, size),
	}, nil
}

func (s *DriverService) buildViews(ctx context.Context, drivers []model.Driver) ([]model.DriverView, error) {
	views := make([]model.DriverView, 0, len(drivers))
	for i := range drivers {
		vehicles, err := s.vehicles.FindByDriverID(ctx, drivers[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, buildDriverView(&drivers[i], vehicles))
	}
	return views, nil
}

func (s *DriverService) flush(evict *eviction) {
	if len(evict.vehicleKeys) > 0 {
		s.vehicleCache.Delete(evict.vehicleKeys...)
	}
	if len(evict.driverKeys) > 0 {
		s.driverCache.Delete(evict.driverKeys...)
	}
}
