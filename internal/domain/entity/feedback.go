package entity

import "time"

// Feedback es la reseña de un usuario para un libro: rating 1..5 y comentario.
// Única entidad con estado de comportamiento (IsApproved): nace pendiente y
// solo un ADMIN la aprueba; rechazar la devuelve a pendiente.
// Invariante: a lo sumo un Feedback por (UserID, BookID) — respaldado por
// constraint único en el store, no solo por lógica de aplicación.
type Feedback struct {
	ID         string
	Rating     int // 1..5
	Comment    string
	UserID     string
	BookID     string
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserRef es la proyección restringida del dueño que viaja junto al feedback.
type UserRef struct {
	ID    string
	Name  string
	Email string
}

// BookRef es la proyección restringida del libro reseñado.
type BookRef struct {
	ID     string
	Title  string
	Author string
}

// FeedbackWithRefs es la única forma en que un Feedback sale del sistema:
// el registro más las proyecciones de su User y su Book.
type FeedbackWithRefs struct {
	Feedback
	User UserRef
	Book BookRef
}
