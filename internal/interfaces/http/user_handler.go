package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
)

// UserHandler maneja la administración de cuentas (todas las rutas ADMIN).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        name   query  string  false  "Filtro contains por nombre"
// @Param        email  query  string  false  "Filtro contains por email"
// @Param        role   query  string  false  "Nombre de rol exacto (USER | ADMIN)"
// @Param        page   query  int     false  "Página"  default(1)
// @Param        limit  query  int     false  "Tamaño de página"  default(10)
// @Success      200    {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	q := usecase.QueryUsers{
		Name:     c.Query("name"),
		Email:    c.Query("email"),
		RoleName: c.Query("role"),
	}
	q.Page = c.QueryInt("page", 1)
	q.Limit = c.QueryInt("limit", 10)
	out, err := h.uc.List(q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Agregados de cuentas por rol
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserStatsResponse
// @Router       /api/users/stats [get]
func (h *UserHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return failWith(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario (bloqueado si posee feedback)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}

// ChangeRole godoc
// @Summary      Cambiar el rol de un usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.ChangeRoleRequest  true  "Rol destino"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return failWith(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	if in.RoleID == "" {
		return failWith(c, fiber.StatusBadRequest, "VALIDATION", "roleId is required")
	}
	out, err := h.uc.ChangeRole(c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
