package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP son los
// únicos que los traducen a códigos de estado.
var (
	// No encontrados
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrBookNotFound     = errors.New("libro no encontrado")
	ErrRoleNotFound     = errors.New("rol no encontrado")
	ErrFeedbackNotFound = errors.New("feedback no encontrado")

	// Conflictos de unicidad
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrISBNAlreadyExists     = errors.New("el ISBN ya está registrado")
	ErrFeedbackAlreadyExists = errors.New("ya existe feedback del usuario para este libro")

	// Transiciones inválidas
	ErrAlreadyApproved     = errors.New("el feedback ya está aprobado")
	ErrAlreadyRejected     = errors.New("el feedback ya está rechazado")
	ErrRoleAlreadyAssigned = errors.New("el usuario ya tiene ese rol")
	ErrUserHasFeedback     = errors.New("el usuario tiene feedback asociado")

	// Autenticación / autorización
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	ErrInvalidInput = errors.New("entrada inválida")
)

// ForbiddenError lleva la razón específica de una denegación de la política
// de autorización. errors.Is(err, ErrForbidden) sigue funcionando.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// Forbidden construye un ForbiddenError con la razón dada.
func Forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}
