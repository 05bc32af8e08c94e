package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/infrastructure/memory"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Roles().Upsert(&entity.Role{ID: "user", Name: entity.RoleUser}))
	require.NoError(t, store.Roles().Upsert(&entity.Role{ID: "admin", Name: entity.RoleAdmin}))

	now := time.Now()
	for _, u := range []*entity.User{
		{ID: "u1", Email: "ana@example.com", Name: "Ana", RoleID: "user", CreatedAt: now, UpdatedAt: now},
		{ID: "u2", Email: "beto@example.com", Name: "Beto", RoleID: "user", CreatedAt: now.Add(time.Second), UpdatedAt: now},
		{ID: "a1", Email: "admin@example.com", Name: "Admin", RoleID: "admin", CreatedAt: now.Add(2 * time.Second), UpdatedAt: now},
	} {
		require.NoError(t, store.Users().Create(u))
	}
	return store
}

func newUserUC(t *testing.T) (*usecase.UserUseCase, *memory.Store) {
	t.Helper()
	store := seededStore(t)
	return usecase.NewUserUseCase(store.Users(), store.Roles(), store.Feedback()), store
}

func TestUserUpdate_EmailDuplicado_Conflict(t *testing.T) {
	uc, _ := newUserUC(t)
	email := "beto@example.com"
	_, err := uc.Update("u1", dto.UpdateUserRequest{Email: &email})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUpdate_PasswordSeHashea(t *testing.T) {
	uc, store := newUserUC(t)
	password := "nuevo-secreto-123"
	_, err := uc.Update("u1", dto.UpdateUserRequest{Password: &password})
	require.NoError(t, err)

	u, err := store.Users().GetByID("u1")
	require.NoError(t, err)
	assert.NotEqual(t, password, u.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)))
}

// Escenario E: borrar un usuario con feedback está bloqueado; tras eliminar el
// feedback, el mismo borrado procede.
func TestUserRemove_BloqueadoPorFeedbackExistente(t *testing.T) {
	uc, store := newUserUC(t)
	now := time.Now()
	require.NoError(t, store.Books().Create(&entity.Book{
		ID: "b1", Title: "Rayuela", Author: "Julio Cortázar", ISBN: "isbn-1",
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Feedback().Create(&entity.Feedback{
		ID: "f1", Rating: 5, Comment: "Un clásico total", UserID: "u1", BookID: "b1",
		CreatedAt: now, UpdatedAt: now,
	}))

	err := uc.Remove("u1")
	assert.ErrorIs(t, err, domain.ErrUserHasFeedback)

	require.NoError(t, store.Feedback().Delete("f1"))
	assert.NoError(t, uc.Remove("u1"), "sin feedback el borrado debe proceder")

	_, err = uc.GetByID("u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserChangeRole(t *testing.T) {
	uc, _ := newUserUC(t)

	_, err := uc.ChangeRole("u1", dto.ChangeRoleRequest{RoleID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)

	_, err = uc.ChangeRole("u1", dto.ChangeRoleRequest{RoleID: "user"})
	assert.ErrorIs(t, err, domain.ErrRoleAlreadyAssigned,
		"asignar el rol que ya tiene debe fallar")

	out, err := uc.ChangeRole("u1", dto.ChangeRoleRequest{RoleID: "admin"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role.Name)
}

func TestUserList_FiltrosYPaginacion(t *testing.T) {
	uc, _ := newUserUC(t)

	q := usecase.QueryUsers{RoleName: entity.RoleUser}
	out, err := uc.List(q)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Pagination.Total)

	q = usecase.QueryUsers{Email: "ANA@"}
	out, err = uc.List(q)
	require.NoError(t, err)
	require.Len(t, out.Data, 1, "el filtro de email es insensible a mayúsculas")
	assert.Equal(t, "Ana", out.Data[0].Name)
}

func TestUserStats(t *testing.T) {
	uc, _ := newUserUC(t)
	out, err := uc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalUsers)
	assert.Equal(t, 2, out.UserRoleCount)
	assert.Equal(t, 1, out.AdminRoleCount)
}
