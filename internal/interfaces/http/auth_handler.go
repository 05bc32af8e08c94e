package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/auth"
	"github.com/jhoicas/biblioteca-api/internal/application/dto"
)

// AuthHandler maneja las peticiones HTTP de autenticación (público).
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Signup godoc
// @Summary      Registrar cuenta
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "Datos de registro"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return failWith(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return failWith(c, fiber.StatusBadRequest, "VALIDATION", "email, password and name are required")
	}
	out, err := h.uc.Signup(in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return failWith(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	if in.Email == "" || in.Password == "" {
		return failWith(c, fiber.StatusBadRequest, "VALIDATION", "email and password are required")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
