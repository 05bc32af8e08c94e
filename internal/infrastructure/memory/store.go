// Package memory implementa los cuatro puertos de persistencia sobre mapas
// en memoria protegidos por mutex. Sirve para el modo de desarrollo local
// sin PostgreSQL y para las pruebas de integración de la capa HTTP.
// La semántica replica la del adaptador de PostgreSQL: not-found ⇒ (nil, nil),
// duplicados ⇒ los mismos errores de conflicto del dominio, listados en orden
// created_at descendente.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
	"github.com/jhoicas/biblioteca-api/pkg/textutil"
)

// Store guarda todo el estado compartido entre los repositorios en memoria.
type Store struct {
	mu       sync.RWMutex
	roles    map[string]*entity.Role     // por ID
	users    map[string]*entity.User     // por ID
	books    map[string]*entity.Book     // por ID
	feedback map[string]*entity.Feedback // por ID
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		roles:    make(map[string]*entity.Role),
		users:    make(map[string]*entity.User),
		books:    make(map[string]*entity.Book),
		feedback: make(map[string]*entity.Feedback),
	}
}

// Roles devuelve el adaptador del puerto RoleRepository.
func (s *Store) Roles() repository.RoleRepository { return &roleStore{s} }

// Users devuelve el adaptador del puerto UserRepository.
func (s *Store) Users() repository.UserRepository { return &userStore{s} }

// Books devuelve el adaptador del puerto BookRepository.
func (s *Store) Books() repository.BookRepository { return &bookStore{s} }

// Feedback devuelve el adaptador del puerto FeedbackRepository.
func (s *Store) Feedback() repository.FeedbackRepository { return &feedbackStore{s} }

// ── Roles ─────────────────────────────────────────────────────────────────────

type roleStore struct{ s *Store }

func (r *roleStore) GetByID(id string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if role, ok := r.s.roles[id]; ok {
		cp := *role
		return &cp, nil
	}
	return nil, nil
}

func (r *roleStore) GetByName(name string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, role := range r.s.roles {
		if role.Name == name {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *roleStore) List() ([]*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		cp := *role
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *roleStore) Upsert(role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.roles {
		if existing.Name == role.Name {
			existing.Description = role.Description
			return nil
		}
	}
	cp := *role
	r.s.roles[role.ID] = &cp
	return nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

type userStore struct{ s *Store }

func (r *userStore) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userStore) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return r.s.userWithRole(u), nil
}

func (r *userStore) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return r.s.userWithRole(u), nil
		}
	}
	return nil, nil
}

func (r *userStore) Update(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, u := range r.s.users {
		if id != user.ID && u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	if _, ok := r.s.users[user.ID]; !ok {
		return nil
	}
	cp := *user
	cp.Role = nil
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userStore) List(filter repository.UserFilter, limit, offset int) ([]*entity.User, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.User
	for _, u := range r.s.users {
		if filter.Name != "" && !containsFold(u.Name, filter.Name) {
			continue
		}
		if filter.Email != "" && !containsFold(u.Email, filter.Email) {
			continue
		}
		if filter.RoleName != "" {
			role := r.s.roles[u.RoleID]
			if role == nil || role.Name != filter.RoleName {
				continue
			}
		}
		all = append(all, r.s.userWithRole(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	return page(all, limit, offset), total, nil
}

func (r *userStore) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

func (r *userStore) Stats() (repository.UserStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var stats repository.UserStats
	for _, u := range r.s.users {
		stats.TotalUsers++
		if role := r.s.roles[u.RoleID]; role != nil {
			switch role.Name {
			case entity.RoleUser:
				stats.UserRoleCount++
			case entity.RoleAdmin:
				stats.AdminRoleCount++
			}
		}
	}
	return stats, nil
}

// userWithRole copia el usuario y le adjunta su rol. Requiere lock tomado.
func (s *Store) userWithRole(u *entity.User) *entity.User {
	cp := *u
	if role, ok := s.roles[u.RoleID]; ok {
		rc := *role
		cp.Role = &rc
	}
	return &cp
}

// ── Books ─────────────────────────────────────────────────────────────────────

type bookStore struct{ s *Store }

func (r *bookStore) Create(book *entity.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.books {
		if b.ISBN == book.ISBN {
			return domain.ErrISBNAlreadyExists
		}
	}
	cp := *book
	r.s.books[book.ID] = &cp
	return nil
}

func (r *bookStore) GetByID(id string) (*entity.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if b, ok := r.s.books[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *bookStore) GetByISBN(isbn string) (*entity.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.books {
		if b.ISBN == isbn {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *bookStore) Update(book *entity.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, b := range r.s.books {
		if id != book.ID && b.ISBN == book.ISBN {
			return domain.ErrISBNAlreadyExists
		}
	}
	if _, ok := r.s.books[book.ID]; !ok {
		return nil
	}
	cp := *book
	r.s.books[book.ID] = &cp
	return nil
}

func (r *bookStore) List(filter repository.BookFilter, limit, offset int) ([]*entity.BookWithStats, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.BookWithStats
	for _, b := range r.s.books {
		if filter.Title != "" && !strings.Contains(textutil.NormalizeSearch(b.Title), filter.Title) {
			continue
		}
		if filter.Author != "" && !strings.Contains(textutil.NormalizeSearch(b.Author), filter.Author) {
			continue
		}
		if filter.ISBN != "" && !strings.Contains(b.ISBN, filter.ISBN) {
			continue
		}
		all = append(all, r.s.bookWithStats(b))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	return page(all, limit, offset), total, nil
}

// Delete elimina el libro y, como la cascada del FK, todo su feedback.
func (r *bookStore) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.books, id)
	for fid, f := range r.s.feedback {
		if f.BookID == id {
			delete(r.s.feedback, fid)
		}
	}
	return nil
}

// bookWithStats agrega conteo y promedio de rating del feedback aprobado,
// sobre el dataset completo del libro. Requiere lock tomado.
func (s *Store) bookWithStats(b *entity.Book) *entity.BookWithStats {
	out := &entity.BookWithStats{Book: *b, AverageRating: decimal.Zero}
	sum := 0
	for _, f := range s.feedback {
		if f.BookID == b.ID && f.IsApproved {
			out.FeedbackCount++
			sum += f.Rating
		}
	}
	if out.FeedbackCount > 0 {
		out.AverageRating = decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(out.FeedbackCount)))
	}
	return out
}

// ── Feedback ──────────────────────────────────────────────────────────────────

type feedbackStore struct{ s *Store }

func (r *feedbackStore) Create(f *entity.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.feedback {
		if existing.UserID == f.UserID && existing.BookID == f.BookID {
			return domain.ErrFeedbackAlreadyExists
		}
	}
	cp := *f
	r.s.feedback[f.ID] = &cp
	return nil
}

func (r *feedbackStore) GetByID(id string) (*entity.FeedbackWithRefs, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	f, ok := r.s.feedback[id]
	if !ok {
		return nil, nil
	}
	return r.s.feedbackWithRefs(f), nil
}

func (r *feedbackStore) GetByUserAndBook(userID, bookID string) (*entity.Feedback, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, f := range r.s.feedback {
		if f.UserID == userID && f.BookID == bookID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *feedbackStore) List(filter repository.FeedbackFilter, limit, offset int) ([]*entity.FeedbackWithRefs, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.FeedbackWithRefs
	for _, f := range r.s.feedback {
		if filter.BookID != "" && f.BookID != filter.BookID {
			continue
		}
		if filter.UserID != "" && f.UserID != filter.UserID {
			continue
		}
		if filter.IsApproved != nil && f.IsApproved != *filter.IsApproved {
			continue
		}
		if filter.MinRating > 0 && f.Rating < filter.MinRating {
			continue
		}
		all = append(all, r.s.feedbackWithRefs(f))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	return page(all, limit, offset), total, nil
}

func (r *feedbackStore) Update(f *entity.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.feedback[f.ID]; !ok {
		return nil
	}
	cp := *f
	r.s.feedback[f.ID] = &cp
	return nil
}

func (r *feedbackStore) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.feedback, id)
	return nil
}

func (r *feedbackStore) ExistsByUser(userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, f := range r.s.feedback {
		if f.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// feedbackWithRefs arma la proyección con los refs de usuario y libro.
// Requiere lock tomado.
func (s *Store) feedbackWithRefs(f *entity.Feedback) *entity.FeedbackWithRefs {
	out := &entity.FeedbackWithRefs{Feedback: *f}
	if u, ok := s.users[f.UserID]; ok {
		out.User = entity.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	if b, ok := s.books[f.BookID]; ok {
		out.Book = entity.BookRef{ID: b.ID, Title: b.Title, Author: b.Author}
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
