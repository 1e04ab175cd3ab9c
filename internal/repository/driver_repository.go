package repository

import (
	"context"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) FindByID(ctx context.Context, id uint) (*model.Driver, error) {
	var driver model.Driver
	if err := r.db.WithContext(ctx).
		First(&driver, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) FindByLicenseNumber(ctx context.Context, licenseNumber string) (*model.Driver, error) {
	var driver model.Driver
	if err := r.db.WithContext(ctx).
		First(&driver, "license_number = ?", licenseNumber).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) FindByStatus(ctx context.Context, status model.DriverStatus) ([]model.Driver, error) {
	var drivers []model.Driver
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *DriverRepository) FindPage(ctx context.Context, offset, limit int) ([]model.Driver, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Driver{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var drivers []model.Driver
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&drivers).Error; err != nil {
		return nil, 0, err
	}
	return drivers, total, nil
}

func (r *DriverRepository) Save(ctx context.Context, driver *model.Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

func (r *DriverRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Driver{}, "id = ?", id).Error
}
