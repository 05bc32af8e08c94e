package entity

import "time"

// User representa una cuenta del portal.
type User struct {
	ID           string
	Email        string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	RoleID       string
	Role         *Role // cargado por el repositorio (JOIN con roles)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si la cuenta tiene el rol ADMIN cargado.
func (u *User) IsAdmin() bool {
	return u.Role != nil && u.Role.Name == RoleAdmin
}
