package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book representa un libro del catálogo. Solo ADMIN lo crea/modifica/elimina.
type Book struct {
	ID          string
	Title       string
	Author      string
	ISBN        string // único
	Description string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookWithStats es la fila de listado: el libro más agregados calculados en
// SQL sobre el feedback aprobado (AVG devuelve NUMERIC → decimal).
type BookWithStats struct {
	Book
	FeedbackCount int
	AverageRating decimal.Decimal
}
