package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleViewer = "viewer" // solo lectura
)

// User representa un usuario del back office.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, staff, viewer
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
