package entity

import "time"

// Roles válidos para User. Enumeración cerrada: el control de acceso
// se decide contra esta lista, nunca contra strings sueltos.
const (
	RoleAdmin            = "admin"
	RoleSalesManager     = "sales_manager"
	RoleSalesRep         = "sales_rep"
	RoleInventoryManager = "inventory_manager"
	RoleAccountant       = "accountant"
	RoleHRManager        = "hr_manager"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// ValidRole indica si el rol pertenece a la enumeración.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSalesManager, RoleSalesRep, RoleInventoryManager, RoleAccountant, RoleHRManager:
		return true
	}
	return false
}

// User representa una identidad del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
