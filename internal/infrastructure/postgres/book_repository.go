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

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo implementación del puerto BookRepository sobre PostgreSQL.
type BookRepo struct {
	pool *pgxpool.Pool
}

// NewBookRepository construye el adaptador de persistencia para libros.
func NewBookRepository(pool *pgxpool.Pool) *BookRepo {
	return &BookRepo{pool: pool}
}

// Create persiste un libro nuevo. ISBN duplicado ⇒ ErrISBNAlreadyExists.
func (r *BookRepo) Create(book *entity.Book) error {
	query := `
		INSERT INTO books (id, title, author, isbn, description, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		book.ID, book.Title, book.Author, book.ISBN, book.Description, book.PublishedAt,
		book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrISBNAlreadyExists
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetByID obtiene un libro por ID.
func (r *BookRepo) GetByID(id string) (*entity.Book, error) {
	return r.scanOne(`WHERE id = $1`, id)
}

// GetByISBN obtiene un libro por ISBN.
func (r *BookRepo) GetByISBN(isbn string) (*entity.Book, error) {
	return r.scanOne(`WHERE isbn = $1`, isbn)
}

func (r *BookRepo) scanOne(cond, arg string) (*entity.Book, error) {
	query := `
		SELECT id, title, author, isbn, description, published_at, created_at, updated_at
		FROM books ` + cond
	var b entity.Book
	err := r.pool.QueryRow(context.Background(), query, arg).Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Description, &b.PublishedAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &b, nil
}

// Update actualiza un libro. ISBN duplicado ⇒ ErrISBNAlreadyExists.
func (r *BookRepo) Update(book *entity.Book) error {
	query := `
		UPDATE books SET title = $2, author = $3, isbn = $4, description = $5, published_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		book.ID, book.Title, book.Author, book.ISBN, book.Description, book.PublishedAt, book.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrISBNAlreadyExists
		}
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// List lista libros con filtros contains insensibles a mayúsculas y acentos
// (los términos llegan ya normalizados; unaccent vive en el schema) y agrega
// por fila el conteo y el promedio de rating del feedback aprobado, calculado
// sobre el dataset completo y no sobre la página.
func (r *BookRepo) List(filter repository.BookFilter, limit, offset int) ([]*entity.BookWithStats, int, error) {
	var where []string
	var args []any
	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		where = append(where, fmt.Sprintf("unaccent(lower(b.title)) LIKE $%d", len(args)))
	}
	if filter.Author != "" {
		args = append(args, "%"+filter.Author+"%")
		where = append(where, fmt.Sprintf("unaccent(lower(b.author)) LIKE $%d", len(args)))
	}
	if filter.ISBN != "" {
		args = append(args, "%"+filter.ISBN+"%")
		where = append(where, fmt.Sprintf("b.isbn LIKE $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM books b`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT b.id, b.title, b.author, b.isbn, b.description, b.published_at, b.created_at, b.updated_at,
		       COUNT(f.id), COALESCE(AVG(f.rating), 0)
		FROM books b
		LEFT JOIN feedback f ON f.book_id = b.id AND f.is_approved = TRUE
		%s
		GROUP BY b.id
		ORDER BY b.created_at DESC
		LIMIT $%d OFFSET $%d`, cond, len(args)-1, len(args))
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var list []*entity.BookWithStats
	for rows.Next() {
		var b entity.BookWithStats
		var count int64
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Description, &b.PublishedAt,
			&b.CreatedAt, &b.UpdatedAt, &count, &b.AverageRating,
		); err != nil {
			return nil, 0, fmt.Errorf("scan book: %w", err)
		}
		b.FeedbackCount = int(count)
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

// Delete elimina un libro por ID; el feedback asociado cae por la cascada del FK.
func (r *BookRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
