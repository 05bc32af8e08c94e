package repository

import "github.com/jhoicas/biblioteca-api/internal/domain/entity"

// RoleRepository define el puerto de persistencia para Role (DIP).
type RoleRepository interface {
	GetByID(id string) (*entity.Role, error)
	GetByName(name string) (*entity.Role, error)
	List() ([]*entity.Role, error)
	// Upsert crea el rol si no existe (siembra de datos de referencia).
	Upsert(role *entity.Role) error
}
