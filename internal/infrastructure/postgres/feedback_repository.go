package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

// FeedbackRepo implementación del puerto FeedbackRepository sobre PostgreSQL.
// Las lecturas llevan las proyecciones restringidas de User y Book (JOIN).
type FeedbackRepo struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository construye el adaptador de persistencia para feedback.
func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

const feedbackSelect = `
	SELECT f.id, f.rating, f.comment, f.user_id, f.book_id, f.is_approved, f.created_at, f.updated_at,
	       u.id, u.name, u.email,
	       b.id, b.title, b.author
	FROM feedback f
	JOIN users u ON u.id = f.user_id
	JOIN books b ON b.id = f.book_id`

// Create persiste feedback nuevo. La violación del constraint único
// (user_id, book_id) — incluido el caso de dos creates en carrera — se
// traduce a ErrFeedbackAlreadyExists, el mismo conflicto del pre-chequeo.
func (r *FeedbackRepo) Create(f *entity.Feedback) error {
	query := `
		INSERT INTO feedback (id, rating, comment, user_id, book_id, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		f.ID, f.Rating, f.Comment, f.UserID, f.BookID, f.IsApproved,
		f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrFeedbackAlreadyExists
		}
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// GetByID obtiene el feedback por ID con sus proyecciones.
func (r *FeedbackRepo) GetByID(id string) (*entity.FeedbackWithRefs, error) {
	row := r.pool.QueryRow(context.Background(), feedbackSelect+` WHERE f.id = $1`, id)
	out, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feedback by id: %w", err)
	}
	return out, nil
}

// GetByUserAndBook obtiene el feedback de un usuario para un libro, si existe.
func (r *FeedbackRepo) GetByUserAndBook(userID, bookID string) (*entity.Feedback, error) {
	query := `
		SELECT id, rating, comment, user_id, book_id, is_approved, created_at, updated_at
		FROM feedback WHERE user_id = $1 AND book_id = $2`
	var f entity.Feedback
	err := r.pool.QueryRow(context.Background(), query, userID, bookID).Scan(
		&f.ID, &f.Rating, &f.Comment, &f.UserID, &f.BookID, &f.IsApproved,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feedback by user and book: %w", err)
	}
	return &f, nil
}

// List lista feedback según el filtro (AND), más reciente primero, y devuelve
// el total que satisface el filtro.
func (r *FeedbackRepo) List(filter repository.FeedbackFilter, limit, offset int) ([]*entity.FeedbackWithRefs, int, error) {
	var where []string
	var args []any
	if filter.BookID != "" {
		args = append(args, filter.BookID)
		where = append(where, fmt.Sprintf("f.book_id = $%d", len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("f.user_id = $%d", len(args)))
	}
	if filter.IsApproved != nil {
		args = append(args, *filter.IsApproved)
		where = append(where, fmt.Sprintf("f.is_approved = $%d", len(args)))
	}
	if filter.MinRating > 0 {
		args = append(args, filter.MinRating)
		where = append(where, fmt.Sprintf("f.rating >= $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM feedback f`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY f.created_at DESC LIMIT $%d OFFSET $%d",
		feedbackSelect, cond, len(args)-1, len(args))
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var list []*entity.FeedbackWithRefs
	for rows.Next() {
		out, err := scanFeedback(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan feedback: %w", err)
		}
		list = append(list, out)
	}
	return list, total, rows.Err()
}

// Update actualiza rating, comment y estado de aprobación.
func (r *FeedbackRepo) Update(f *entity.Feedback) error {
	query := `
		UPDATE feedback SET rating = $2, comment = $3, is_approved = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		f.ID, f.Rating, f.Comment, f.IsApproved, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	return nil
}

// Delete elimina el feedback (hard delete).
func (r *FeedbackRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}

// ExistsByUser indica si el usuario posee al menos un feedback.
func (r *FeedbackRepo) ExistsByUser(userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM feedback WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists feedback by user: %w", err)
	}
	return exists, nil
}

func scanFeedback(row pgx.Row) (*entity.FeedbackWithRefs, error) {
	var out entity.FeedbackWithRefs
	err := row.Scan(
		&out.ID, &out.Rating, &out.Comment, &out.UserID, &out.BookID, &out.IsApproved,
		&out.CreatedAt, &out.UpdatedAt,
		&out.User.ID, &out.User.Name, &out.User.Email,
		&out.Book.ID, &out.Book.Title, &out.Book.Author,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
