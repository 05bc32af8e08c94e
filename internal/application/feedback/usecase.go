// Package feedback implementa el motor de ciclo de vida del feedback:
// creación, lectura, edición, borrado y moderación (aprobar/rechazar),
// aplicando la política de autorización al inicio de cada operación mutante.
//
// Máquina de estados sobre IsApproved:
//
//	Pending (false) ──approve──▶ Approved (true)
//	Approved (true) ──reject───▶ Pending (false)   (re-aprobable)
//	cualquiera      ──remove───▶ eliminado (hard delete)
package feedback

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/policy"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

// UseCase orquesta las operaciones del ciclo de vida contra los puertos de
// persistencia, delegando las decisiones de permiso en domain/policy.
type UseCase struct {
	feedbackRepo repository.FeedbackRepository
	bookRepo     repository.BookRepository
	userRepo     repository.UserRepository
}

// NewUseCase construye el motor con sus puertos.
func NewUseCase(feedbackRepo repository.FeedbackRepository, bookRepo repository.BookRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{feedbackRepo: feedbackRepo, bookRepo: bookRepo, userRepo: userRepo}
}

// Create registra feedback nuevo para un libro. Siempre nace con
// IsApproved=false, ignore lo que el llamador haya mandado. El conflicto por
// (usuario, libro) duplicado se detecta con pre-chequeo y, ante una carrera,
// lo garantiza el constraint único del store (el repo lo traduce al mismo
// error de conflicto).
func (uc *UseCase) Create(userID string, in dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	book, err := uc.bookRepo.GetByID(in.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}

	existing, err := uc.feedbackRepo.GetByUserAndBook(userID, in.BookID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrFeedbackAlreadyExists
	}

	now := time.Now()
	f := &entity.Feedback{
		ID:         uuid.New().String(),
		Rating:     in.Rating,
		Comment:    in.Comment,
		UserID:     userID,
		BookID:     in.BookID,
		IsApproved: false, // todo feedback nuevo requiere moderación
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.feedbackRepo.Create(f); err != nil {
		return nil, err
	}
	return uc.joined(f.ID)
}

// GetByID devuelve el feedback con sus proyecciones de User y Book.
func (uc *UseCase) GetByID(id string) (*dto.FeedbackResponse, error) {
	return uc.joined(id)
}

// List lista feedback con filtros opcionales combinados con AND y paginación
// page/limit; orden: más reciente primero.
func (uc *UseCase) List(q dto.QueryFeedbackRequest) (*dto.FeedbackListResponse, error) {
	q.Normalize()
	filter := repository.FeedbackFilter{
		BookID:     q.BookID,
		UserID:     q.UserID,
		IsApproved: q.IsApproved,
		MinRating:  q.MinRating,
	}
	rows, total, err := uc.feedbackRepo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	data := make([]dto.FeedbackResponse, 0, len(rows))
	for _, r := range rows {
		data = append(data, *toFeedbackResponse(r))
	}
	return &dto.FeedbackListResponse{
		Data:       data,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// Update aplica un patch parcial bajo la política de autorización. Regla de
// negocio adicional: si el actor es el dueño no-admin, IsApproved se fuerza a
// false en todo update exitoso (editar tu propio feedback lo devuelve a
// moderación), aunque el patch no mencione el campo. Un admin aplica
// IsApproved tal cual venga o conserva el valor existente.
func (uc *UseCase) Update(id string, in dto.UpdateFeedbackRequest, actor policy.Actor) (*dto.FeedbackResponse, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	existing, err := uc.feedbackRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrFeedbackNotFound
	}

	decision := policy.Decide(actor,
		policy.Resource{OwnerID: existing.UserID, IsApproved: existing.IsApproved},
		policy.ActionUpdate, in.IsApproved != nil)
	if !decision.Allowed {
		return nil, domain.Forbidden(decision.Reason)
	}

	f := existing.Feedback
	if in.Rating != nil {
		f.Rating = *in.Rating
	}
	if in.Comment != nil {
		f.Comment = *in.Comment
	}
	if actor.IsAdmin() {
		if in.IsApproved != nil {
			f.IsApproved = *in.IsApproved
		}
	} else {
		// Toda mutación de contenido por el dueño revoca la aprobación previa.
		f.IsApproved = false
	}
	f.UpdatedAt = time.Now()

	if err := uc.feedbackRepo.Update(&f); err != nil {
		return nil, err
	}
	return uc.joined(f.ID)
}

// Remove elimina el feedback (hard delete). Aplica solo la regla de
// propiedad/admin: la congelación por aprobación no bloquea el borrado.
func (uc *UseCase) Remove(id string, actor policy.Actor) error {
	existing, err := uc.feedbackRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrFeedbackNotFound
	}
	decision := policy.Decide(actor,
		policy.Resource{OwnerID: existing.UserID, IsApproved: existing.IsApproved},
		policy.ActionDelete, false)
	if !decision.Allowed {
		return domain.Forbidden(decision.Reason)
	}
	return uc.feedbackRepo.Delete(id)
}

// Approve marca el feedback como aprobado. Falla si ya lo estaba.
func (uc *UseCase) Approve(id string, actor policy.Actor) (*dto.FeedbackResponse, error) {
	return uc.setApproval(id, actor, policy.ActionApprove, true)
}

// Reject devuelve el feedback a pendiente ("rechazar" = desaprobar, no es un
// estado terminal: puede re-aprobarse después). Falla si ya estaba pendiente.
func (uc *UseCase) Reject(id string, actor policy.Actor) (*dto.FeedbackResponse, error) {
	return uc.setApproval(id, actor, policy.ActionReject, false)
}

func (uc *UseCase) setApproval(id string, actor policy.Actor, action policy.Action, approved bool) (*dto.FeedbackResponse, error) {
	existing, err := uc.feedbackRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrFeedbackNotFound
	}
	decision := policy.Decide(actor,
		policy.Resource{OwnerID: existing.UserID, IsApproved: existing.IsApproved},
		action, false)
	if !decision.Allowed {
		return nil, domain.Forbidden(decision.Reason)
	}
	if existing.IsApproved == approved {
		if approved {
			return nil, domain.ErrAlreadyApproved
		}
		return nil, domain.ErrAlreadyRejected
	}
	f := existing.Feedback
	f.IsApproved = approved
	f.UpdatedAt = time.Now()
	if err := uc.feedbackRepo.Update(&f); err != nil {
		return nil, err
	}
	return uc.joined(f.ID)
}

// GetBookFeedback es la única ruta de lectura pública: fuerza bookId y
// isApproved=true ignorando cualquier override del llamador, para no filtrar
// contenido sin moderar.
func (uc *UseCase) GetBookFeedback(bookID string, q dto.QueryFeedbackRequest) (*dto.FeedbackListResponse, error) {
	book, err := uc.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	approved := true
	q.BookID = bookID
	q.IsApproved = &approved
	return uc.List(q)
}

// GetUserFeedback fuerza userId y delega en List. No fuerza filtro de
// aprobación: quién puede consultar qué userId lo decide la capa de
// presentación, no este motor.
func (uc *UseCase) GetUserFeedback(userID string, q dto.QueryFeedbackRequest) (*dto.FeedbackListResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	q.UserID = userID
	return uc.List(q)
}

func (uc *UseCase) joined(id string) (*dto.FeedbackResponse, error) {
	row, err := uc.feedbackRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrFeedbackNotFound
	}
	return toFeedbackResponse(row), nil
}

const minCommentLen = 10

func validateCreate(in dto.CreateFeedbackRequest) error {
	if in.BookID == "" || in.Rating < 1 || in.Rating > 5 || len(in.Comment) < minCommentLen {
		return domain.ErrInvalidInput
	}
	return nil
}

func validateUpdate(in dto.UpdateFeedbackRequest) error {
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return domain.ErrInvalidInput
	}
	if in.Comment != nil && len(*in.Comment) < minCommentLen {
		return domain.ErrInvalidInput
	}
	return nil
}

func toFeedbackResponse(r *entity.FeedbackWithRefs) *dto.FeedbackResponse {
	if r == nil {
		return nil
	}
	return &dto.FeedbackResponse{
		ID:         r.ID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		UserID:     r.UserID,
		BookID:     r.BookID,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		User:       dto.FeedbackUserRef{ID: r.User.ID, Name: r.User.Name, Email: r.User.Email},
		Book:       dto.FeedbackBookRef{ID: r.Book.ID, Title: r.Book.Title, Author: r.Book.Author},
	}
}
