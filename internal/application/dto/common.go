package dto

import "strconv"

// PageRequest paginación por página para listados (page >= 1, limit >= 1).
type PageRequest struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// Normalize aplica los valores por defecto (page=1, limit=10) y acota limit.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset devuelve el desplazamiento equivalente para el store.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination metadatos de página en respuestas de listado.
type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPagination calcula el envelope: totalPages = ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{
		Page:            page,
		Limit:           limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// ParseOptionalBool normaliza un query param booleano que puede llegar como
// booleano nativo o su serialización ("true"/"1"). Cadena vacía ⇒ nil.
func ParseOptionalBool(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de confirmación para operaciones sin payload.
type MessageResponse struct {
	Message string `json:"message"`
}
