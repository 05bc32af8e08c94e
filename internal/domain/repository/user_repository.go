package repository

import "github.com/jhoicas/biblioteca-api/internal/domain/entity"

// UserFilter filtros opcionales (AND) para listado de usuarios.
type UserFilter struct {
	Name     string // contains, insensible a mayúsculas
	Email    string // contains, insensible a mayúsculas
	RoleName string // igualdad exacta sobre roles.name
}

// UserStats agregados para el panel de administración.
type UserStats struct {
	TotalUsers     int
	UserRoleCount  int
	AdminRoleCount int
}

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas devuelven el usuario con su Role cargado.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(filter UserFilter, limit, offset int) ([]*entity.User, int, error)
	Delete(id string) error
	Stats() (UserStats, error)
}
