package repository

import (
	"context"

	"gorm.io/gorm"

	"fleet-service/internal/service"
)

// TxManager implements service.TxManager on top of gorm transactions.
// Each closure gets stores bound to the transaction connection, so the
// read-validate-write sequence of one operation is a single atomic unit.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) InTx(ctx context.Context, fn func(stores service.Stores) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(service.Stores{
			Vehicles: NewVehicleRepository(tx),
			Drivers:  NewDriverRepository(tx),
			Logs:     NewAssignmentLogRepository(tx),
		})
	})
}
