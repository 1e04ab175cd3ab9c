package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-service/internal/model"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) FindByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).
		Preload("Driver").
		First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindByLicensePlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).
		Preload("Driver").
		First(&vehicle, "license_plate = ?", plate).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindByStatus(ctx context.Context, status model.VehicleStatus) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Preload("Driver").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) FindByType(ctx context.Context, vehicleType model.VehicleType) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).
		Where("type = ?", vehicleType).
		Order("id ASC").
		Preload("Driver").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) FindByBrandAndModel(ctx context.Context, brand, vehicleModel string) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).
		Where("brand = ? AND model = ?", brand, vehicleModel).
		Order("id ASC").
		Preload("Driver").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) FindByDriverID(ctx context.Context, driverID uint) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("id ASC").
		Preload("Driver").
		Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) FindPage(ctx context.Context, offset, limit int) ([]model.Vehicle, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Vehicle{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Preload("Driver").
		Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// Save writes the full row. Omitting associations keeps gorm from
// upserting a preloaded Driver alongside the vehicle.
func (r *VehicleRepository) Save(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(vehicle).Error
}

func (r *VehicleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Vehicle{}, "id = ?", id).Error
}
