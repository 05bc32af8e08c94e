package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/domain"
)

// fail traduce un error de dominio a estado HTTP + ErrorResponse. Es el único
// punto donde la taxonomía de errores toca códigos de estado; los mensajes de
// cara al cliente van en inglés (contrato estable del API).
func fail(c *fiber.Ctx, err error) error {
	switch {
	// 404 — el identificador no resuelve a un recurso
	case errors.Is(err, domain.ErrUserNotFound):
		return failWith(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, domain.ErrBookNotFound):
		return failWith(c, fiber.StatusNotFound, "NOT_FOUND", "Book not found")
	case errors.Is(err, domain.ErrRoleNotFound):
		return failWith(c, fiber.StatusNotFound, "NOT_FOUND", "Role not found")
	case errors.Is(err, domain.ErrFeedbackNotFound):
		return failWith(c, fiber.StatusNotFound, "NOT_FOUND", "Feedback not found")
	case errors.Is(err, domain.ErrNotFound):
		return failWith(c, fiber.StatusNotFound, "NOT_FOUND", "Resource not found")

	// 409 — violación de unicidad
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return failWith(c, fiber.StatusConflict, "CONFLICT", "User with this email already exists")
	case errors.Is(err, domain.ErrISBNAlreadyExists):
		return failWith(c, fiber.StatusConflict, "CONFLICT", "Book with this ISBN already exists")
	case errors.Is(err, domain.ErrFeedbackAlreadyExists):
		return failWith(c, fiber.StatusConflict, "CONFLICT", "You have already submitted feedback for this book")

	// 400 — objetivo válido, transición inválida
	case errors.Is(err, domain.ErrAlreadyApproved):
		return failWith(c, fiber.StatusBadRequest, "BAD_REQUEST", "Feedback is already approved")
	case errors.Is(err, domain.ErrAlreadyRejected):
		return failWith(c, fiber.StatusBadRequest, "BAD_REQUEST", "Feedback is already rejected")
	case errors.Is(err, domain.ErrRoleAlreadyAssigned):
		return failWith(c, fiber.StatusBadRequest, "BAD_REQUEST", "User already has this role")
	case errors.Is(err, domain.ErrUserHasFeedback):
		return failWith(c, fiber.StatusBadRequest, "BAD_REQUEST",
			"Cannot delete user with existing feedback. Please delete feedback first.")
	case errors.Is(err, domain.ErrInvalidInput):
		return failWith(c, fiber.StatusBadRequest, "VALIDATION", "Invalid input")

	// 401 / 403 — identidad y permisos. La denegación de la política lleva
	// su razón específica en err.Error().
	case errors.Is(err, domain.ErrUnauthorized):
		return failWith(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		return failWith(c, fiber.StatusForbidden, "FORBIDDEN", err.Error())
	}
	return failWith(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}

func failWith(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}
