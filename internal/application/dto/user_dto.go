package dto

import "time"

// SignupRequest entrada de registro (password en texto, se hashea en use case).
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserResponse salida de un usuario (nunca incluye el password).
type UserResponse struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	RoleID    string       `json:"roleId"`
	Role      RoleResponse `json:"role"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// LoginResponse salida de login: usuario + token JWT.
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

// UpdateUserRequest patch parcial de un usuario. Password, si viene, se
// hashea antes de persistir; nunca se compara ni devuelve en claro.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// ChangeRoleRequest entrada para cambiar el rol de un usuario.
type ChangeRoleRequest struct {
	RoleID string `json:"roleId" validate:"required"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Data       []UserResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// UserStatsResponse agregados para el panel de administración.
type UserStatsResponse struct {
	TotalUsers     int `json:"totalUsers"`
	UserRoleCount  int `json:"userRoleCount"`
	AdminRoleCount int `json:"adminRoleCount"`
}
