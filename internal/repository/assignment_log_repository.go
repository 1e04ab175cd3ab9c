package repository

import (
	"context"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type AssignmentLogRepository struct {
	db *gorm.DB
}

func NewAssignmentLogRepository(db *gorm.DB) *AssignmentLogRepository {
	return &AssignmentLogRepository{db: db}
}

func (r *AssignmentLogRepository) Append(ctx context.Context, entry *model.AssignmentLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AssignmentLogRepository) ListByVehicle(ctx context.Context, vehicleID uint) ([]model.AssignmentLog, error) {
	var entries []model.AssignmentLog
	if err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
