package dto

import "time"

// CreateFeedbackRequest entrada para enviar feedback. El llamador no controla
// isApproved: todo feedback nace pendiente de moderación.
type CreateFeedbackRequest struct {
	BookID  string `json:"bookId" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=10,max=1000"`
}

// UpdateFeedbackRequest patch parcial. IsApproved solo lo puede tocar ADMIN;
// la política de autorización lo rechaza para cualquier otro actor.
type UpdateFeedbackRequest struct {
	Rating     *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment    *string `json:"comment" validate:"omitempty,min=10,max=1000"`
	IsApproved *bool   `json:"isApproved"`
}

// QueryFeedbackRequest filtros de listado, todos opcionales y combinados con
// AND. Llegan como query params (números/booleanos nativos o en string).
type QueryFeedbackRequest struct {
	BookID     string `query:"bookId"`
	UserID     string `query:"userId"`
	IsApproved *bool  `query:"isApproved"`
	MinRating  int    `query:"minRating" validate:"omitempty,min=1,max=5"`
	PageRequest
}

// FeedbackUserRef proyección restringida del dueño en el wire.
type FeedbackUserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FeedbackBookRef proyección restringida del libro en el wire.
type FeedbackBookRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// FeedbackResponse la única forma en que un feedback sale al wire.
type FeedbackResponse struct {
	ID         string          `json:"id"`
	Rating     int             `json:"rating"`
	Comment    string          `json:"comment"`
	UserID     string          `json:"userId"`
	BookID     string          `json:"bookId"`
	IsApproved bool            `json:"isApproved"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	User       FeedbackUserRef `json:"user"`
	Book       FeedbackBookRef `json:"book"`
}

// FeedbackListResponse listado paginado de feedback.
type FeedbackListResponse struct {
	Data       []FeedbackResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}
