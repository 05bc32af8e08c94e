package repository

import "github.com/jhoicas/biblioteca-api/internal/domain/entity"

// FeedbackFilter filtros opcionales combinados con AND. IsApproved es
// tri-estado: nil significa sin restricción.
type FeedbackFilter struct {
	BookID     string
	UserID     string
	IsApproved *bool
	MinRating  int // 0 = sin restricción; n>0 ⇒ rating >= n
}

// FeedbackRepository define el puerto de persistencia para Feedback (DIP).
// Create devuelve domain.ErrFeedbackAlreadyExists ante la violación del
// constraint único (user_id, book_id): un insert duplicado en carrera debe
// aflorar como el mismo conflicto que el pre-chequeo habría producido.
type FeedbackRepository interface {
	Create(f *entity.Feedback) error
	// GetByID devuelve el feedback con las proyecciones de User y Book.
	GetByID(id string) (*entity.FeedbackWithRefs, error)
	GetByUserAndBook(userID, bookID string) (*entity.Feedback, error)
	// List devuelve la página (orden: created_at DESC) y el total que
	// satisface el filtro.
	List(filter FeedbackFilter, limit, offset int) ([]*entity.FeedbackWithRefs, int, error)
	Update(f *entity.Feedback) error
	Delete(id string) error
	// ExistsByUser indica si el usuario posee al menos un feedback
	// (guarda referencial para el borrado de usuarios).
	ExistsByUser(userID string) (bool, error)
}
