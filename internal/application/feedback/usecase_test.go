package feedback_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/application/feedback"
	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/policy"
	"github.com/jhoicas/biblioteca-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	userID     = "00000000-0000-0000-0000-0000000000u1"
	otherID    = "00000000-0000-0000-0000-0000000000u2"
	adminID    = "00000000-0000-0000-0000-0000000000a1"
	bookID     = "00000000-0000-0000-0000-0000000000b1"
	goodRating = 5
)

var (
	asOwner = policy.Actor{ID: userID, Role: entity.RoleUser}
	asOther = policy.Actor{ID: otherID, Role: entity.RoleUser}
	asAdmin = policy.Actor{ID: adminID, Role: entity.RoleAdmin}
)

// newEngine arma el motor sobre un store en memoria ya sembrado con los roles
// de referencia, dos usuarios regulares, un admin y un libro.
func newEngine(t *testing.T) (*feedback.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()

	require.NoError(t, store.Roles().Upsert(&entity.Role{ID: "user", Name: entity.RoleUser}))
	require.NoError(t, store.Roles().Upsert(&entity.Role{ID: "admin", Name: entity.RoleAdmin}))

	now := time.Now()
	for _, u := range []*entity.User{
		{ID: userID, Email: "ana@example.com", Name: "Ana", RoleID: "user", CreatedAt: now, UpdatedAt: now},
		{ID: otherID, Email: "beto@example.com", Name: "Beto", RoleID: "user", CreatedAt: now, UpdatedAt: now},
		{ID: adminID, Email: "admin@example.com", Name: "Admin", RoleID: "admin", CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, store.Users().Create(u))
	}
	require.NoError(t, store.Books().Create(&entity.Book{
		ID: bookID, Title: "Cien años de soledad", Author: "Gabriel García Márquez",
		ISBN: "978-0060883287", CreatedAt: now, UpdatedAt: now,
	}))

	return feedback.NewUseCase(store.Feedback(), store.Books(), store.Users()), store
}

func mustCreate(t *testing.T, uc *feedback.UseCase, uid string, rating int, comment string) *dto.FeedbackResponse {
	t.Helper()
	out, err := uc.Create(uid, dto.CreateFeedbackRequest{BookID: bookID, Rating: rating, Comment: comment})
	require.NoError(t, err, "el create de referencia no debe fallar")
	return out
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NaceSiempreSinAprobar(t *testing.T) {
	uc, _ := newEngine(t)
	out := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	assert.False(t, out.IsApproved, "todo feedback nuevo debe nacer pendiente de moderación")
	assert.Equal(t, userID, out.UserID)
	assert.Equal(t, bookID, out.BookID)
	assert.Equal(t, "Ana", out.User.Name, "la proyección del dueño debe viajar en la respuesta")
	assert.Equal(t, "Cien años de soledad", out.Book.Title)
}

func TestCreate_LibroInexistente_NotFound(t *testing.T) {
	uc, _ := newEngine(t)
	_, err := uc.Create(userID, dto.CreateFeedbackRequest{
		BookID: "no-existe", Rating: 4, Comment: "Decent but not memorable",
	})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

// Escenario A: el segundo create del mismo usuario para el mismo libro es conflicto.
func TestCreate_DuplicadoPorUsuarioYLibro_Conflict(t *testing.T) {
	uc, _ := newEngine(t)
	mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	_, err := uc.Create(userID, dto.CreateFeedbackRequest{
		BookID: bookID, Rating: 3, Comment: "Changed my mind now",
	})
	assert.ErrorIs(t, err, domain.ErrFeedbackAlreadyExists,
		"el segundo create de (usuario, libro) debe ser Conflict")
}

func TestCreate_ValidacionDeEntrada(t *testing.T) {
	uc, _ := newEngine(t)
	cases := []dto.CreateFeedbackRequest{
		{BookID: bookID, Rating: 0, Comment: "Rating fuera de rango bajo"},
		{BookID: bookID, Rating: 6, Comment: "Rating fuera de rango alto"},
		{BookID: bookID, Rating: 3, Comment: "corto"},
		{BookID: "", Rating: 3, Comment: "Sin libro al que apuntar"},
	}
	for _, in := range cases {
		_, err := uc.Create(userID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — política + reset de aprobación
// ──────────────────────────────────────────────────────────────────────────────

// Escenario B: editar como dueño deja el feedback sin aprobar, aunque el patch
// no mencione isApproved.
func TestUpdate_DuenoResetaAprobacion(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	out, err := uc.Update(created.ID, dto.UpdateFeedbackRequest{Rating: ptr(4)}, asOwner)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Rating)
	assert.False(t, out.IsApproved, "editar tu propio feedback lo devuelve a moderación")
}

func TestUpdate_AdminPreservaAprobacionSiElPatchNoLaMenciona(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")
	_, err := uc.Approve(created.ID, asAdmin)
	require.NoError(t, err)

	out, err := uc.Update(created.ID, dto.UpdateFeedbackRequest{Comment: ptr("Edited by moderation team")}, asAdmin)
	require.NoError(t, err)
	assert.True(t, out.IsApproved, "el update de admin sin isApproved debe conservar el estado")
}

func TestUpdate_AdminAplicaIsApprovedVerbatim(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	out, err := uc.Update(created.ID, dto.UpdateFeedbackRequest{IsApproved: ptr(true)}, asAdmin)
	require.NoError(t, err)
	assert.True(t, out.IsApproved)
}

// Congelación por aprobación: el dueño no-admin no edita feedback aprobado,
// pero sí puede borrarlo.
func TestUpdate_AprobacionCongelaEdicionDelDueno(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")
	_, err := uc.Approve(created.ID, asAdmin)
	require.NoError(t, err)

	_, err = uc.Update(created.ID, dto.UpdateFeedbackRequest{Comment: ptr("xxxxxxxxxx")}, asOwner)
	require.ErrorIs(t, err, domain.ErrForbidden)

	var fe *domain.ForbiddenError
	require.True(t, errors.As(err, &fe), "la denegación debe llevar su razón")
	assert.Equal(t, policy.ReasonApprovedFrozen, fe.Reason)

	assert.NoError(t, uc.Remove(created.ID, asOwner),
		"la congelación no aplica al borrado del propio feedback")
}

// Borde de propiedad: un tercero no-admin siempre recibe Forbidden, sea cual
// sea el contenido del patch.
func TestUpdateYRemove_NoDuenoSiempreForbidden(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	_, err := uc.Update(created.ID, dto.UpdateFeedbackRequest{Rating: ptr(1)}, asOther)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Remove(created.ID, asOther)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_DuenoNoPuedeTocarIsApproved(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	_, err := uc.Update(created.ID, dto.UpdateFeedbackRequest{IsApproved: ptr(true)}, asOwner)
	require.ErrorIs(t, err, domain.ErrForbidden)

	var fe *domain.ForbiddenError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, policy.ReasonApprovalIsAdmin, fe.Reason)
}

func TestUpdate_Inexistente_NotFound(t *testing.T) {
	uc, _ := newEngine(t)
	_, err := uc.Update("no-existe", dto.UpdateFeedbackRequest{Rating: ptr(3)}, asAdmin)
	assert.ErrorIs(t, err, domain.ErrFeedbackNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve / Reject
// ──────────────────────────────────────────────────────────────────────────────

// Escenario C: aprobar dos veces seguidas falla la segunda.
func TestApprove_DobleAprobacion_BadRequest(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	out, err := uc.Approve(created.ID, asAdmin)
	require.NoError(t, err)
	assert.True(t, out.IsApproved)

	_, err = uc.Approve(created.ID, asAdmin)
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
}

// Idempotencia del rechazo: sobre pendiente falla; sobre aprobado voltea a
// pendiente exactamente una vez y puede re-aprobarse.
func TestReject_SobrePendienteFalla_SobreAprobadoVoltea(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	_, err := uc.Reject(created.ID, asAdmin)
	assert.ErrorIs(t, err, domain.ErrAlreadyRejected,
		"rechazar un feedback ya pendiente debe fallar")

	_, err = uc.Approve(created.ID, asAdmin)
	require.NoError(t, err)

	out, err := uc.Reject(created.ID, asAdmin)
	require.NoError(t, err)
	assert.False(t, out.IsApproved)

	// Rechazar no es terminal: se puede volver a aprobar.
	out, err = uc.Approve(created.ID, asAdmin)
	require.NoError(t, err)
	assert.True(t, out.IsApproved)
}

func TestApproveYReject_SoloAdmin(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	_, err := uc.Approve(created.ID, asOwner)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"ni el propio dueño puede aprobar su feedback")

	_, err = uc.Reject(created.ID, asOther)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

// Escenario D: la lectura pública por libro solo devuelve feedback aprobado.
func TestGetBookFeedback_SoloAprobado(t *testing.T) {
	uc, _ := newEngine(t)
	approved := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")
	mustCreate(t, uc, otherID, 2, "Still waiting for moderation")
	_, err := uc.Approve(approved.ID, asAdmin)
	require.NoError(t, err)

	out, err := uc.GetBookFeedback(bookID, dto.QueryFeedbackRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Pagination.Total, "el pendiente no debe contarse")
	require.Len(t, out.Data, 1)
	assert.Equal(t, approved.ID, out.Data[0].ID)
}

func TestGetBookFeedback_IgnoraOverrideDeAprobacion(t *testing.T) {
	uc, _ := newEngine(t)
	mustCreate(t, uc, userID, goodRating, "Still waiting for moderation")

	// Aunque el llamador pida isApproved=false, la ruta pública lo fuerza a true.
	out, err := uc.GetBookFeedback(bookID, dto.QueryFeedbackRequest{IsApproved: ptr(false)})
	require.NoError(t, err)
	assert.Empty(t, out.Data)
	assert.Zero(t, out.Pagination.Total)
}

func TestGetUserFeedback_IncluyePendienteYAprobado(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")
	_, err := uc.Approve(created.ID, asAdmin)
	require.NoError(t, err)

	out, err := uc.GetUserFeedback(userID, dto.QueryFeedbackRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Pagination.Total)

	_, err = uc.GetUserFeedback("no-existe", dto.QueryFeedbackRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestList_FiltroMinRating(t *testing.T) {
	uc, _ := newEngine(t)
	mustCreate(t, uc, userID, 5, "Great read, loved it!")
	mustCreate(t, uc, otherID, 2, "Not really my cup of tea")

	out, err := uc.List(dto.QueryFeedbackRequest{MinRating: 4})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, 5, out.Data[0].Rating)
}

func TestList_Paginacion(t *testing.T) {
	uc, store := newEngine(t)
	now := time.Now()
	// Tres libros más para poder crear varios feedback del mismo usuario.
	extra := []string{"b2", "b3", "b4"}
	for i, id := range extra {
		require.NoError(t, store.Books().Create(&entity.Book{
			ID: id, Title: "Libro " + id, Author: "Autora", ISBN: "isbn-" + id,
			CreatedAt: now, UpdatedAt: now,
		}))
		_, err := uc.Create(userID, dto.CreateFeedbackRequest{
			BookID: id, Rating: i + 1, Comment: "Comment long enough here",
		})
		require.NoError(t, err)
	}
	mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	q := dto.QueryFeedbackRequest{}
	q.Page = 1
	q.Limit = 3
	out, err := uc.List(q)
	require.NoError(t, err)
	assert.Len(t, out.Data, 3)
	assert.Equal(t, 4, out.Pagination.Total)
	assert.Equal(t, 2, out.Pagination.TotalPages)
	assert.True(t, out.Pagination.HasNextPage)
	assert.False(t, out.Pagination.HasPreviousPage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove_DuenoYAdmin(t *testing.T) {
	uc, _ := newEngine(t)
	created := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")

	require.NoError(t, uc.Remove(created.ID, asOwner))
	_, err := uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrFeedbackNotFound)

	again := mustCreate(t, uc, userID, goodRating, "Great read, loved it!")
	require.NoError(t, uc.Remove(again.ID, asAdmin), "admin borra feedback ajeno")
}
