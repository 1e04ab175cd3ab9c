package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin        UserRole = "ADMIN"
	UserRoleFleetManager UserRole = "FLEET_MANAGER"
	UserRoleViewer       UserRole = "VIEWER"
)

type Principal struct {
	UserID uuid.UUID
	Role   UserRole
}

func (p Principal) CanWrite() bool {
	return p.Role == UserRoleAdmin || p.Role == UserRoleFleetManager
}
