package entity

import "time"

// Roles válidos para User. La visibilidad es estrictamente anidada:
// admin ve todo, owner ve lo propio, seller ve lo de su owner.
const (
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
	RoleSeller = "seller"
)

// Estados de cuenta.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User representa una cuenta del sistema. OwnerID solo se llena para
// sellers y apunta al owner que los invitó.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string  // admin, owner, seller
	OwnerID      *string // nil salvo para sellers
	Status       string  // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ScopeOwnerID devuelve el owner_id con el que se filtran los recursos
// visibles para el usuario: admin no filtra (cadena vacía), owner filtra por
// su propio ID y seller por el ID de su owner. Un seller sin owner ligado
// filtra por su propio ID, lo que en la práctica no le muestra nada ajeno.
func (u *User) ScopeOwnerID() string {
	switch u.Role {
	case RoleAdmin:
		return ""
	case RoleOwner:
		return u.ID
	case RoleSeller:
		if u.OwnerID != nil && *u.OwnerID != "" {
			return *u.OwnerID
		}
	}
	return u.ID
}
