package service

import (
	"context"

	"fleet-service/internal/model"
)

// VehicleStore is the vehicle record store. Implementations return
// gorm.ErrRecordNotFound from the single-entity lookups when nothing
// matches; the services translate that into ErrNotFound.
type VehicleStore interface {
	FindByID(ctx context.Context, id uint) (*model.Vehicle, error)
	FindByLicensePlate(ctx context.Context, plate string) (*model.Vehicle, error)
	FindByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error)
	FindByType(ctx context.Context, vehicleType model.VehicleType) ([]model.Vehicle, error)
	FindByBrandAndModel(ctx context.Context, brand, vehicleModel string) ([]model.Vehicle, error)
	FindByDriverID(ctx context.Context, driverID uint) ([]model.Vehicle, error)
	FindPage(ctx context.Context, offset, limit int) ([]model.Vehicle, int64, error)
	Save(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, id uint) error
}

type DriverStore interface {
	FindByID(ctx context.Context, id uint) (*model.Driver, error)
	FindByLicenseNumber(ctx context.Context, licenseNumber string) (*model.Driver, error)
	FindByStatus(ctx context.Context, status model.DriverStatus) ([]model.Driver, error)
	FindPage(ctx context.Context, offset, limit int) ([]model.Driver, int64, error)
	Save(ctx context.Context, driver *model.Driver) error
	Delete(ctx context.Context, id uint) error
}

type AssignmentLogStore interface {
	Append(ctx context.Context, entry *model.AssignmentLog) error
	ListByVehicle(ctx context.Context, vehicleID uint) ([]model.AssignmentLog, error)
}

// Stores bundles transaction-scoped record stores handed to an InTx closure.
type Stores struct {
	Vehicles VehicleStore
	Drivers  DriverStore
	Logs     AssignmentLogStore
}

// TxManager runs a closure as one atomic unit against the backing store.
// Every mutating operation goes through it so that its read-validate-write
// sequence cannot interleave with a concurrent mutation of the same records.
type TxManager interface {
	InTx(ctx context.Context, fn func(stores Stores) error) error
}
