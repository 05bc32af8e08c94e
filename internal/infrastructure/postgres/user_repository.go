package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Las lecturas vienen con el rol cargado (JOIN roles).
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userSelect = `
	SELECT u.id, u.email, u.password_hash, u.name, u.role_id, u.created_at, u.updated_at,
	       r.id, r.name, r.description
	FROM users u
	JOIN roles r ON r.id = u.role_id`

// Create persiste un nuevo usuario. Email duplicado ⇒ ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.RoleID,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID (con rol).
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.scanOne(userSelect+` WHERE u.id = $1`, id)
}

// GetByEmail obtiene un usuario por email (con rol).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.scanOne(userSelect+` WHERE u.email = $1`, email)
}

func (r *UserRepo) scanOne(query, arg string) (*entity.User, error) {
	row := r.pool.QueryRow(context.Background(), query, arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario. Email duplicado ⇒ ErrEmailAlreadyExists.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, name = $4, role_id = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.RoleID, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista usuarios con filtros opcionales (AND) y devuelve el total.
func (r *UserRepo) List(filter repository.UserFilter, limit, offset int) ([]*entity.User, int, error) {
	var where []string
	var args []any
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where = append(where, fmt.Sprintf("u.name ILIKE $%d", len(args)))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		where = append(where, fmt.Sprintf("u.email ILIKE $%d", len(args)))
	}
	if filter.RoleName != "" {
		args = append(args, filter.RoleName)
		where = append(where, fmt.Sprintf("r.name = $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM users u JOIN roles r ON r.id = u.role_id` + cond
	if err := r.pool.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d",
		userSelect, cond, len(args)-1, len(args))
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Delete elimina un usuario por ID. La guarda referencial contra feedback
// existente vive en la capa de aplicación; el FK del schema la respalda.
func (r *UserRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Stats agregados de cuentas por rol.
func (r *UserRepo) Stats() (repository.UserStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE r.name = 'USER'),
		       COUNT(*) FILTER (WHERE r.name = 'ADMIN')
		FROM users u
		JOIN roles r ON r.id = u.role_id`
	var stats repository.UserStats
	err := r.pool.QueryRow(context.Background(), query).Scan(
		&stats.TotalUsers, &stats.UserRoleCount, &stats.AdminRoleCount,
	)
	if err != nil {
		return repository.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	return stats, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role entity.Role
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.RoleID, &u.CreatedAt, &u.UpdatedAt,
		&role.ID, &role.Name, &role.Description,
	)
	if err != nil {
		return nil, err
	}
	u.Role = &role
	return &u, nil
}
