package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
	"github.com/jhoicas/biblioteca-api/pkg/textutil"
)

// BookUseCase casos de uso CRUD del catálogo. Las mutaciones son de ADMIN
// (lo impone el router); la unicidad de ISBN se chequea aquí y la respalda
// el constraint del store.
type BookUseCase struct {
	repo repository.BookRepository
}

// NewBookUseCase construye el caso de uso.
func NewBookUseCase(repo repository.BookRepository) *BookUseCase {
	return &BookUseCase{repo: repo}
}

// QueryBooks filtros de listado del catálogo.
type QueryBooks struct {
	Title  string
	Author string
	ISBN   string
	dto.PageRequest
}

// Create crea un libro. Conflicto si el ISBN ya existe.
func (uc *BookUseCase) Create(in dto.CreateBookRequest) (*dto.BookResponse, error) {
	existing, err := uc.repo.GetByISBN(in.ISBN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrISBNAlreadyExists
	}
	publishedAt, err := parsePublishedAt(in.PublishedAt)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	book := &entity.Book{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		Description: in.Description,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(book); err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// GetByID obtiene un libro por ID.
func (uc *BookUseCase) GetByID(id string) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return toBookResponse(book), nil
}

// List lista el catálogo con filtros contains (insensibles a mayúsculas y
// acentos) y paginación; cada fila lleva los agregados de feedback aprobado.
func (uc *BookUseCase) List(q QueryBooks) (*dto.BookListResponse, error) {
	q.Normalize()
	filter := repository.BookFilter{
		Title:  textutil.NormalizeSearch(q.Title),
		Author: textutil.NormalizeSearch(q.Author),
		ISBN:   textutil.NormalizeSearch(q.ISBN),
	}
	rows, total, err := uc.repo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	data := make([]dto.BookListItem, 0, len(rows))
	for _, r := range rows {
		data = append(data, dto.BookListItem{
			BookResponse:  *toBookResponse(&r.Book),
			FeedbackCount: r.FeedbackCount,
			AverageRating: r.AverageRating,
		})
	}
	return &dto.BookListResponse{
		Data:       data,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// Update aplica un patch parcial. Si cambia el ISBN, chequea conflicto
// excluyendo el propio registro.
func (uc *BookUseCase) Update(id string, in dto.UpdateBookRequest) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	if in.ISBN != nil && *in.ISBN != book.ISBN {
		other, err := uc.repo.GetByISBN(*in.ISBN)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrISBNAlreadyExists
		}
		book.ISBN = *in.ISBN
	}
	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Author != nil {
		book.Author = *in.Author
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	if in.PublishedAt != nil {
		publishedAt, err := parsePublishedAt(*in.PublishedAt)
		if err != nil {
			return nil, err
		}
		book.PublishedAt = publishedAt
	}
	book.UpdatedAt = time.Now()
	if err := uc.repo.Update(book); err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// Delete elimina un libro; su feedback cae en cascada en el store.
func (uc *BookUseCase) Delete(id string) error {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if book == nil {
		return domain.ErrBookNotFound
	}
	return uc.repo.Delete(id)
}

// parsePublishedAt acepta RFC 3339 o fecha sola (YYYY-MM-DD). Vacío ⇒ nil.
func parsePublishedAt(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

func toBookResponse(b *entity.Book) *dto.BookResponse {
	if b == nil {
		return nil
	}
	return &dto.BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Description: b.Description,
		PublishedAt: b.PublishedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
