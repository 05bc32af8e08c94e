package entity

// Nombres de rol válidos (datos de referencia, sembrados una sola vez).
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Role es dato de referencia inmutable; User lo referencia por ID.
type Role struct {
	ID          string
	Name        string // USER | ADMIN
	Description string
}
