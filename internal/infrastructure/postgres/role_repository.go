package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	pool *pgxpool.Pool
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(id string) (*entity.Role, error) {
	return r.scanOne(`SELECT id, name, description FROM roles WHERE id = $1`, id)
}

// GetByName obtiene un rol por nombre (USER | ADMIN).
func (r *RoleRepo) GetByName(name string) (*entity.Role, error) {
	return r.scanOne(`SELECT id, name, description FROM roles WHERE name = $1`, name)
}

func (r *RoleRepo) scanOne(query, arg string) (*entity.Role, error) {
	var role entity.Role
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// List devuelve todos los roles.
func (r *RoleRepo) List() ([]*entity.Role, error) {
	rows, err := r.pool.Query(context.Background(), `SELECT id, name, description FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// Upsert crea el rol si no existe; si existe actualiza la descripción.
func (r *RoleRepo) Upsert(role *entity.Role) error {
	query := `
		INSERT INTO roles (id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description`
	_, err := r.pool.Exec(context.Background(), query, role.ID, role.Name, role.Description)
	if err != nil {
		return fmt.Errorf("upsert role: %w", err)
	}
	return nil
}
