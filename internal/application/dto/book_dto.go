package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookRequest entrada para crear un libro (solo ADMIN).
type CreateBookRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=300"`
	Author      string `json:"author" validate:"required,min=1,max=200"`
	ISBN        string `json:"isbn" validate:"required,min=10,max=17"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PublishedAt string `json:"publishedAt" validate:"omitempty"` // RFC 3339 o YYYY-MM-DD
}

// UpdateBookRequest patch parcial de un libro.
type UpdateBookRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=300"`
	Author      *string `json:"author" validate:"omitempty,min=1,max=200"`
	ISBN        *string `json:"isbn" validate:"omitempty,min=10,max=17"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	PublishedAt *string `json:"publishedAt" validate:"omitempty"`
}

// BookResponse salida de un libro.
type BookResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	ISBN        string     `json:"isbn"`
	Description string     `json:"description,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BookListItem fila de listado: el libro más los agregados de feedback
// aprobado calculados sobre el dataset completo (no sobre la página).
type BookListItem struct {
	BookResponse
	FeedbackCount int             `json:"feedbackCount"`
	AverageRating decimal.Decimal `json:"averageRating"`
}

// BookListResponse listado paginado de libros.
type BookListResponse struct {
	Data       []BookListItem `json:"data"`
	Pagination Pagination     `json:"pagination"`
}
