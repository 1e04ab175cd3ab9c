package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentAction string

const (
	AssignmentActionAssigned   AssignmentAction = "ASSIGNED"
	AssignmentActionUnassigned AssignmentAction = "UNASSIGNED"
)

// AssignmentLog records every change to a vehicle's driver assignment. Rows
// are appended in the same transaction as the mutation that caused them.
type AssignmentLog struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID uint             `gorm:"not null;index" json:"vehicle_id"`
	DriverID  uint             `gorm:"not null;index" json:"driver_id"`
	Action    AssignmentAction `gorm:"type:assignment_action;not null" json:"action"`
	Note      string           `gorm:"type:text" json:"note"`
	ChangedBy *uuid.UUID       `gorm:"type:uuid" json:"changed_by"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (AssignmentLog) TableName() string {
	return "assignment_log"
}

func (l *AssignmentLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
