package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-service/internal/model"
)

type vehicleEnv struct {
	svc      *VehicleService
	vehicles *fakeVehicleStore
	drivers  *fakeDriverStore
	logs     *fakeLogStore
	vcache   *recordingCache
	dcache   *recordingCache
	logBuf   *bytes.Buffer
}

func newVehicleEnv() *vehicleEnv {
	vehicles := newFakeVehicleStore()
	drivers := newFakeDriverStore()
	logs := &fakeLogStore{}
	tx := &fakeTx{stores: Stores{Vehicles: vehicles, Drivers: drivers, Logs: logs}}
	vcache := newRecordingCache()
	dcache := newRecordingCache()
	buf := &bytes.Buffer{}

	svc := NewVehicleService(tx, vehicles, drivers, logs, vcache, dcache, zerolog.New(buf))
	svc.now = func() time.Time { return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC) }

	return &vehicleEnv{
		svc:      svc,
		vehicles: vehicles,
		drivers:  drivers,
		logs:     logs,
		vcache:   vcache,
		dcache:   dcache,
		logBuf:   buf,
	}
}

func (e *vehicleEnv) seedDriver(licenseNumber string, licenseType model.LicenseType, status model.DriverStatus) model.Driver {
	return e.drivers.seed(model.Driver{
		FirstName:     "Jan",
		LastName:      "Kowalski",
		LicenseNumber: licenseNumber,
		LicenseType:   licenseType,
		DateOfBirth:   model.NewDate(1990, time.May, 20),
		Status:        status,
	})
}

func (e *vehicleEnv) seedVehicle(plate string, vehicleType model.VehicleType, status model.VehicleStatus, driverID *uint) model.Vehicle {
	return e.vehicles.seed(model.Vehicle{
		LicensePlate:            plate,
		Brand:                   "Volvo",
		Model:                   "FH16",
		ProductionYear:          2020,
		Type:                    vehicleType,
		RegistrationDate:        model.NewDate(2020, time.January, 10),
		TechnicalInspectionDate: model.NewDate(2026, time.June, 1),
		Mileage:                 120000,
		Status:                  status,
		DriverID:                driverID,
	})
}

func testPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.UserRoleFleetManager}
}

func validCreateInput(plate string) CreateVehicleInput {
	return CreateVehicleInput{
		LicensePlate:            plate,
		Brand:                   "Scania",
		Model:                   "R450",
		ProductionYear:          2022,
		Type:                    model.VehicleTypeTruck,
		RegistrationDate:        model.NewDate(2022, time.February, 1),
		TechnicalInspectionDate: model.NewDate(2026, time.June, 1),
		Mileage:                 5000,
	}
}

func TestVehicleServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate plate fails with conflict and writes nothing", func(t *testing.T) {
		env := newVehicleEnv()
		env.seedVehicle("KR 1234X", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)

		_, err := env.svc.Create(ctx, testPrincipal(), validCreateInput("KR 1234X"))
		require.ErrorIs(t, err, ErrConflict)
		assert.Len(t, env.vehicles.records, 1)
	})

	t.Run("inspection date in the past fails", func(t *testing.T) {
		env := newVehicleEnv()
		input := validCreateInput("KR 2222A")
		input.TechnicalInspectionDate = model.NewDate(2026, time.March, 14)

		_, err := env.svc.Create(ctx, testPrincipal(), input)
		require.ErrorIs(t, err, ErrBusinessRule)
		assert.Empty(t, env.vehicles.records)
	})

	t.Run("inspection expiring within a month succeeds with advisory", func(t *testing.T) {
		env := newVehicleEnv()
		input := validCreateInput("KR 3333B")
		input.TechnicalInspectionDate = model.NewDate(2026, time.March, 25)

		view, err := env.svc.Create(ctx, testPrincipal(), input)
		require.NoError(t, err)
		assert.Equal(t, "KR 3333B", view.LicensePlate)
		assert.Contains(t, env.logBuf.String(), "technical inspection expires within a month")
	})

	t.Run("inspection two months out succeeds silently", func(t *testing.T) {
		env := newVehicleEnv()
		input := validCreateInput("KR 4444C")
		input.TechnicalInspectionDate = model.NewDate(2026, time.May, 15)

		_, err := env.svc.Create(ctx, testPrincipal(), input)
		require.NoError(t, err)
		assert.NotContains(t, env.logBuf.String(), "technical inspection expires")
	})

	t.Run("negative mileage fails", func(t *testing.T) {
		env := newVehicleEnv()
		input := validCreateInput("KR 5555D")
		input.Mileage = -1

		_, err := env.svc.Create(ctx, testPrincipal(), input)
		require.ErrorIs(t, err, ErrBusinessRule)
	})

	t.Run("unknown vehicle type fails", func(t *testing.T) {
		env := newVehicleEnv()
		input := validCreateInput("KR 6666E")
		input.Type = model.VehicleType("TRACTOR")

		_, err := env.svc.Create(ctx, testPrincipal(), input)
		require.ErrorIs(t, err, ErrBusinessRule)
	})

	t.Run("supplied driver id is resolved and linked", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-100", model.LicenseTypeC, model.DriverStatusActive)

		input := validCreateInput("KR 7777F")
		input.DriverID = &driver.ID

		view, err := env.svc.Create(ctx, testPrincipal(), input)
		require.NoError(t, err)
		require.NotNil(t, view.Driver)
		assert.Equal(t, driver.ID, view.Driver.ID)

		require.Len(t, env.logs.entries, 1)
		assert.Equal(t, model.AssignmentActionAssigned, env.logs.entries[0].Action)
	})

	t.Run("unknown driver id fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		missing := uint(42)
		input := validCreateInput("KR 8888G")
		input.DriverID = &missing

		_, err := env.svc.Create(ctx, testPrincipal(), input)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, env.vehicles.records)
	})

	t.Run("status defaults to available", func(t *testing.T) {
		env := newVehicleEnv()

		view, err := env.svc.Create(ctx, testPrincipal(), validCreateInput("KR 9999H"))
		require.NoError(t, err)
		assert.Equal(t, model.VehicleStatusAvailable, view.Status)
	})
}

func TestVehicleServiceAssignDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown vehicle fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		_, err := env.svc.AssignDriver(ctx, testPrincipal(), 99, 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("out of order blocks before the driver is even looked up", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 1111A", model.VehicleTypeTruck, model.VehicleStatusOutOfOrder, nil)

		_, err := env.svc.AssignDriver(ctx, testPrincipal(), vehicle.ID, 404)
		require.ErrorIs(t, err, ErrBusinessRule)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("already assigned fails with conflict even for a different driver", func(t *testing.T) {
		env := newVehicleEnv()
		current := env.seedDriver("LIC-1", model.LicenseTypeC, model.DriverStatusActive)
		other := env.seedDriver("LIC-2", model.LicenseTypeC, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 2222B", model.VehicleTypeTruck, model.VehicleStatusAvailable, &current.ID)

		_, err := env.svc.AssignDriver(ctx, testPrincipal(), vehicle.ID, other.ID)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown driver fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 3333C", model.VehicleTypeTruck, model.VehicleStatusAvailable, nil)

		_, err := env.svc.AssignDriver(ctx, testPrincipal(), vehicle.ID, 404)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("suspended driver fails", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-3", model.LicenseTypeC, model.DriverStatusSuspended)
		vehicle := env.seedVehicle("KR 4444D", model.VehicleTypeTruck, model.VehicleStatusAvailable, nil)

		_, err := env.svc.AssignDriver(ctx, testPrincipal(), vehicle.ID, driver.ID)
		require.ErrorIs(t, err, ErrBusinessRule)
	})

	t.Run("license B cannot operate a van", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-4", model.LicenseTypeB, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 5555E", model.VehicleTypeVan, model.VehicleStatusAvailable, nil)

		_, err := env.svc.AssignDriver(ctx, testPrincipal(), vehicle.ID, driver.ID)
		require.ErrorIs(t, err, ErrBusinessRule)
		assert.Contains(t, err.Error(), "does not allow operating")
	})

	t.Run("successful assignment links and logs", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-5", model.LicenseTypeD, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 6666F", model.VehicleTypeBus, model.VehicleStatusAvailable, nil)

		view, err := env.svc.AssignDriver(ctx, testPrincipal(), vehicle.ID, driver.ID)
		require.NoError(t, err)
		require.NotNil(t, view.Driver)
		assert.Equal(t, driver.ID, view.Driver.ID)

		stored := env.vehicles.records[vehicle.ID]
		require.NotNil(t, stored.DriverID)
		assert.Equal(t, driver.ID, *stored.DriverID)

		require.Len(t, env.logs.entries, 1)
		assert.Equal(t, model.AssignmentActionAssigned, env.logs.entries[0].Action)
		assert.Equal(t, vehicle.ID, env.logs.entries[0].VehicleID)
	})
}

func TestLicenseMatrix(t *testing.T) {
	cases := []struct {
		license model.LicenseType
		allowed map[model.VehicleType]bool
	}{
		{model.LicenseTypeB, map[model.VehicleType]bool{
			model.VehicleTypeCar: true, model.VehicleTypeVan: false, model.VehicleTypeTruck: false, model.VehicleTypeBus: false,
		}},
		{model.LicenseTypeC, map[model.VehicleType]bool{
			model.VehicleTypeCar: true, model.VehicleTypeVan: true, model.VehicleTypeTruck: true, model.VehicleTypeBus: false,
		}},
		{model.LicenseTypeD, map[model.VehicleType]bool{
			model.VehicleTypeCar: true, model.VehicleTypeVan: false, model.VehicleTypeTruck: false, model.VehicleTypeBus: true,
		}},
		{model.LicenseTypeCE, map[model.VehicleType]bool{
			model.VehicleTypeCar: true, model.VehicleTypeVan: true, model.VehicleTypeTruck: true, model.VehicleTypeBus: false,
		}},
		{model.LicenseTypeDE, map[model.VehicleType]bool{
			model.VehicleTypeCar: true, model.VehicleTypeVan: false, model.VehicleTypeTruck: false, model.VehicleTypeBus: true,
		}},
	}

	for _, tc := range cases {
		for vehicleType, allowed := range tc.allowed {
			t.Run(string(tc.license)+"_"+string(vehicleType), func(t *testing.T) {
				// Idempotent: the verdict must not change between evaluations.
				for i := 0; i < 2; i++ {
					err := checkLicenseAllows(tc.license, vehicleType)
					if allowed {
						assert.NoError(t, err)
					} else {
						assert.ErrorIs(t, err, ErrBusinessRule)
					}
				}
			})
		}
	}

	t.Run("unknown license type fails validation", func(t *testing.T) {
		err := checkLicenseAllows(model.LicenseType("X"), model.VehicleTypeCar)
		require.ErrorIs(t, err, ErrBusinessRule)
	})
}

func TestVehicleServiceRemoveDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown vehicle fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		_, err := env.svc.RemoveDriver(ctx, testPrincipal(), 5)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("vehicle without driver fails with business rule", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 1010A", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)

		_, err := env.svc.RemoveDriver(ctx, testPrincipal(), vehicle.ID)
		require.ErrorIs(t, err, ErrBusinessRule)
		assert.Contains(t, err.Error(), "no assigned driver")
	})

	t.Run("removal clears the link and logs, second removal fails", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-10", model.LicenseTypeC, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 2020B", model.VehicleTypeTruck, model.VehicleStatusAvailable, &driver.ID)

		view, err := env.svc.RemoveDriver(ctx, testPrincipal(), vehicle.ID)
		require.NoError(t, err)
		assert.Nil(t, view.Driver)

		stored := env.vehicles.records[vehicle.ID]
		assert.Nil(t, stored.DriverID)

		require.Len(t, env.logs.entries, 1)
		assert.Equal(t, model.AssignmentActionUnassigned, env.logs.entries[0].Action)

		_, err = env.svc.RemoveDriver(ctx, testPrincipal(), vehicle.ID)
		require.ErrorIs(t, err, ErrBusinessRule)
	})
}

func TestVehicleServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("in use with assigned driver is blocked", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-20", model.LicenseTypeC, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 3030C", model.VehicleTypeTruck, model.VehicleStatusInUse, &driver.ID)

		err := env.svc.Delete(ctx, testPrincipal(), vehicle.ID)
		require.ErrorIs(t, err, ErrBusinessRule)
		assert.Contains(t, env.vehicles.records, vehicle.ID)
	})

	t.Run("assigned but not in use clears the relation and deletes", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-21", model.LicenseTypeC, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 4040D", model.VehicleTypeTruck, model.VehicleStatusAvailable, &driver.ID)

		err := env.svc.Delete(ctx, testPrincipal(), vehicle.ID)
		require.NoError(t, err)
		assert.NotContains(t, env.vehicles.records, vehicle.ID)

		require.Len(t, env.logs.entries, 1)
		assert.Equal(t, model.AssignmentActionUnassigned, env.logs.entries[0].Action)
	})

	t.Run("in use without driver deletes", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 5050E", model.VehicleTypeCar, model.VehicleStatusInUse, nil)

		err := env.svc.Delete(ctx, testPrincipal(), vehicle.ID)
		require.NoError(t, err)
		assert.NotContains(t, env.vehicles.records, vehicle.ID)
	})

	t.Run("unknown vehicle fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		err := env.svc.Delete(ctx, testPrincipal(), 77)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVehicleServiceUpdateMileage(t *testing.T) {
	ctx := context.Background()

	t.Run("negative mileage fails before the existence check", func(t *testing.T) {
		env := newVehicleEnv()
		_, err := env.svc.UpdateMileage(ctx, testPrincipal(), 12345, -5)
		require.ErrorIs(t, err, ErrBusinessRule)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("negative mileage leaves the stored value untouched", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 6060F", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)

		_, err := env.svc.UpdateMileage(ctx, testPrincipal(), vehicle.ID, -5)
		require.ErrorIs(t, err, ErrBusinessRule)
		assert.Equal(t, float64(120000), env.vehicles.records[vehicle.ID].Mileage)
	})

	t.Run("valid mileage overwrites", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 7070G", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)

		view, err := env.svc.UpdateMileage(ctx, testPrincipal(), vehicle.ID, 130500.5)
		require.NoError(t, err)
		assert.Equal(t, 130500.5, view.Mileage)
		assert.Equal(t, 130500.5, env.vehicles.records[vehicle.ID].Mileage)
		assert.Contains(t, env.logBuf.String(), "vehicle mileage updated")
	})

	t.Run("unknown vehicle fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		_, err := env.svc.UpdateMileage(ctx, testPrincipal(), 88, 100)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVehicleServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown status literal fails", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 8080H", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)

		_, err := env.svc.UpdateStatus(ctx, testPrincipal(), vehicle.ID, model.VehicleStatus("PARKED"))
		require.ErrorIs(t, err, ErrBusinessRule)
	})

	t.Run("unknown vehicle fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		_, err := env.svc.UpdateStatus(ctx, testPrincipal(), 99, model.VehicleStatusInUse)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("out of order on an assigned vehicle keeps the assignment", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-30", model.LicenseTypeC, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 9090I", model.VehicleTypeTruck, model.VehicleStatusInUse, &driver.ID)

		view, err := env.svc.UpdateStatus(ctx, testPrincipal(), vehicle.ID, model.VehicleStatusOutOfOrder)
		require.NoError(t, err)
		assert.Equal(t, model.VehicleStatusOutOfOrder, view.Status)

		stored := env.vehicles.records[vehicle.ID]
		require.NotNil(t, stored.DriverID)
		assert.Equal(t, driver.ID, *stored.DriverID)
	})
}

func TestVehicleServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown vehicle fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		_, err := env.svc.Update(ctx, testPrincipal(), 11, VehiclePatch{})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("plate collision with another vehicle fails with conflict", func(t *testing.T) {
		env := newVehicleEnv()
		env.seedVehicle("KR 0001A", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)
		target := env.seedVehicle("KR 0002B", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)

		plate := "KR 0001A"
		_, err := env.svc.Update(ctx, testPrincipal(), target.ID, VehiclePatch{LicensePlate: &plate})
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("keeping the own plate is not a conflict", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 0003C", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)

		plate := "KR 0003C"
		_, err := env.svc.Update(ctx, testPrincipal(), vehicle.ID, VehiclePatch{LicensePlate: &plate})
		require.NoError(t, err)
	})

	t.Run("partial patch leaves omitted fields untouched", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 0004D", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)

		brand := "MAN"
		view, err := env.svc.Update(ctx, testPrincipal(), vehicle.ID, VehiclePatch{Brand: &brand})
		require.NoError(t, err)
		assert.Equal(t, "MAN", view.Brand)
		assert.Equal(t, "FH16", view.Model)
		assert.Equal(t, "KR 0004D", view.LicensePlate)
		assert.Equal(t, float64(120000), view.Mileage)
	})

	t.Run("inspection re-validation uses the updated date", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 0005E", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)

		past := model.NewDate(2026, time.January, 1)
		_, err := env.svc.Update(ctx, testPrincipal(), vehicle.ID, VehiclePatch{TechnicalInspectionDate: &past})
		require.ErrorIs(t, err, ErrBusinessRule)
		assert.Equal(t, model.NewDate(2026, time.June, 1), env.vehicles.records[vehicle.ID].TechnicalInspectionDate)
	})

	t.Run("omitted driver id clears the assignment", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-40", model.LicenseTypeC, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 0006F", model.VehicleTypeTruck, model.VehicleStatusAvailable, &driver.ID)

		view, err := env.svc.Update(ctx, testPrincipal(), vehicle.ID, VehiclePatch{})
		require.NoError(t, err)
		assert.Nil(t, view.Driver)
		assert.Nil(t, env.vehicles.records[vehicle.ID].DriverID)

		require.Len(t, env.logs.entries, 1)
		assert.Equal(t, model.AssignmentActionUnassigned, env.logs.entries[0].Action)

		_, err = env.svc.RemoveDriver(ctx, testPrincipal(), vehicle.ID)
		require.ErrorIs(t, err, ErrBusinessRule)
	})

	t.Run("supplied driver id relinks and logs both sides", func(t *testing.T) {
		env := newVehicleEnv()
		oldDriver := env.seedDriver("LIC-41", model.LicenseTypeC, model.DriverStatusActive)
		newDriver := env.seedDriver("LIC-42", model.LicenseTypeC, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 0007G", model.VehicleTypeTruck, model.VehicleStatusAvailable, &oldDriver.ID)

		view, err := env.svc.Update(ctx, testPrincipal(), vehicle.ID, VehiclePatch{DriverID: &newDriver.ID})
		require.NoError(t, err)
		require.NotNil(t, view.Driver)
		assert.Equal(t, newDriver.ID, view.Driver.ID)

		require.Len(t, env.logs.entries, 2)
		assert.Equal(t, model.AssignmentActionUnassigned, env.logs.entries[0].Action)
		assert.Equal(t, oldDriver.ID, env.logs.entries[0].DriverID)
		assert.Equal(t, model.AssignmentActionAssigned, env.logs.entries[1].Action)
		assert.Equal(t, newDriver.ID, env.logs.entries[1].DriverID)
	})

	t.Run("unknown driver id fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 0008H", model.VehicleTypeTruck, model.VehicleStatusAvailable, nil)

		missing := uint(404)
		_, err := env.svc.Update(ctx, testPrincipal(), vehicle.ID, VehiclePatch{DriverID: &missing})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVehicleServiceQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("get by id is served from cache on repeat", func(t *testing.T) {
		env := newVehicleEnv()
		vehicle := env.seedVehicle("KR 1001A", model.VehicleTypeCar, model.VehicleStatusAvailable, nil)

		_, err := env.svc.GetByID(ctx, vehicle.ID)
		require.NoError(t, err)
		_, err = env.svc.GetByID(ctx, vehicle.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, env.vehicles.findByIDCalls)
	})

	t.Run("get by id unknown fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		_, err := env.svc.GetByID(ctx, 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get by plate unknown fails with not found", func(t *testing.T) {
		env := newVehicleEnv()
		_, err := env.svc.GetByLicensePlate(ctx, "XX 0000")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("collection queries return empty results without failing", func(t *testing.T) {
		env := newVehicleEnv()

		byStatus, err := env.svc.ListByStatus(ctx, model.VehicleStatusInUse)
		require.NoError(t, err)
		assert.Empty(t, byStatus)

		byType, err := env.svc.ListByType(ctx, model.VehicleTypeBus)
		require.NoError(t, err)
		assert.Empty(t, byType)

		byBrand, err := env.svc.ListByBrandAndModel(ctx, "Iveco", "Daily")
		require.NoError(t, err)
		assert.Empty(t, byBrand)
	})

	t.Run("list by driver requires the driver to exist", func(t *testing.T) {
		env := newVehicleEnv()
		_, err := env.svc.ListByDriver(ctx, 9)
		require.ErrorIs(t, err, ErrNotFound)

		driver := env.seedDriver("LIC-50", model.LicenseTypeB, model.DriverStatusActive)
		vehicles, err := env.svc.ListByDriver(ctx, driver.ID)
		require.NoError(t, err)
		assert.Empty(t, vehicles)
	})

	t.Run("paginated list reports totals", func(t *testing.T) {
		env := newVehicleEnv()
		for _, plate := range []string{"P1", "P2", "P3", "P4", "P5"} {
			env.seedVehicle(plate, model.VehicleTypeCar, model.VehicleStatusAvailable, nil)
		}

		page, err := env.svc.List(ctx, 2, 2)
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, int64(5), page.TotalItems)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, "P3", page.Items[0].LicensePlate)
	})

	t.Run("assignment history requires the vehicle to exist", func(t *testing.T) {
		env := newVehicleEnv()
		_, err := env.svc.AssignmentHistory(ctx, 3)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVehicleServiceCacheInvalidation(t *testing.T) {
	ctx := context.Background()

	t.Run("assignment evicts every key either image could serve", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-60", model.LicenseTypeC, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 2001B", model.VehicleTypeTruck, model.VehicleStatusAvailable, nil)

		_, err := env.svc.AssignDriver(ctx, testPrincipal(), vehicle.ID, driver.ID)
		require.NoError(t, err)

		assert.Contains(t, env.vcache.deleted, "vehicle:1")
		assert.Contains(t, env.vcache.deleted, "licensePlate:KR 2001B")
		assert.Contains(t, env.vcache.deleted, "status:AVAILABLE")
		assert.Contains(t, env.vcache.deleted, "type:TRUCK")
		assert.Contains(t, env.vcache.deleted, "driver:1")
		assert.Contains(t, env.dcache.deleted, "driver:1")
		assert.Contains(t, env.dcache.deleted, "licenseNumber:LIC-60")
	})

	t.Run("status change drops the assigned driver's cached view", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-62", model.LicenseTypeC, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 2003D", model.VehicleTypeTruck, model.VehicleStatusAvailable, &driver.ID)

		tx := &fakeTx{stores: Stores{Vehicles: env.vehicles, Drivers: env.drivers, Logs: env.logs}}
		driverSvc := NewDriverService(tx, env.drivers, env.vehicles, env.logs, env.dcache, env.vcache, zerolog.Nop())

		primed, err := driverSvc.GetByID(ctx, driver.ID)
		require.NoError(t, err)
		require.Len(t, primed.Vehicles, 1)
		assert.Equal(t, model.VehicleStatusAvailable, primed.Vehicles[0].Status)

		_, err = env.svc.UpdateStatus(ctx, testPrincipal(), vehicle.ID, model.VehicleStatusOutOfOrder)
		require.NoError(t, err)
		assert.Contains(t, env.dcache.deleted, "driver:1")
		assert.Contains(t, env.dcache.deleted, "licenseNumber:LIC-62")

		fresh, err := driverSvc.GetByID(ctx, driver.ID)
		require.NoError(t, err)
		require.Len(t, fresh.Vehicles, 1)
		assert.Equal(t, model.VehicleStatusOutOfOrder, fresh.Vehicles[0].Status)
	})

	t.Run("scalar update keeping the driver evicts the driver's keys", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-63", model.LicenseTypeC, model.DriverStatusActive)
		vehicle := env.seedVehicle("KR 2004E", model.VehicleTypeTruck, model.VehicleStatusAvailable, &driver.ID)

		brand := "DAF"
		_, err := env.svc.Update(ctx, testPrincipal(), vehicle.ID, VehiclePatch{Brand: &brand, DriverID: &driver.ID})
		require.NoError(t, err)

		assert.Contains(t, env.dcache.deleted, "driver:1")
		assert.Contains(t, env.dcache.deleted, "licenseNumber:LIC-63")
		assert.Empty(t, env.logs.entries)
	})

	t.Run("failed mutation invalidates nothing", func(t *testing.T) {
		env := newVehicleEnv()
		driver := env.seedDriver("LIC-61", model.LicenseTypeC, model.DriverStatusSuspended)
		vehicle := env.seedVehicle("KR 2002C", model.VehicleTypeTruck, model.VehicleStatusAvailable, nil)

		_, err := env.svc.AssignDriver(ctx, testPrincipal(), vehicle.ID, driver.ID)
		require.ErrorIs(t, err, ErrBusinessRule)
		assert.Empty(t, env.vcache.deleted)
		assert.Empty(t, env.dcache.deleted)
	})
}
