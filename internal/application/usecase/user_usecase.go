package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

// UserUseCase casos de uso de administración de cuentas.
type UserUseCase struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	feedbackRepo repository.FeedbackRepository
}

// NewUserUseCase construye el caso de uso con sus puertos.
func NewUserUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, feedbackRepo repository.FeedbackRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, roleRepo: roleRepo, feedbackRepo: feedbackRepo}
}

// QueryUsers filtros de listado de usuarios.
type QueryUsers struct {
	Name     string
	Email    string
	RoleName string
	dto.PageRequest
}

// GetByID obtiene un usuario por ID (con su rol).
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return entityToUserResponse(user), nil
}

// List lista usuarios con filtros y paginación. El password nunca viaja.
func (uc *UserUseCase) List(q QueryUsers) (*dto.UserListResponse, error) {
	q.Normalize()
	filter := repository.UserFilter{Name: q.Name, Email: q.Email, RoleName: q.RoleName}
	rows, total, err := uc.userRepo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, err
	}
	data := make([]dto.UserResponse, 0, len(rows))
	for _, u := range rows {
		data = append(data, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Data:       data,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// Update aplica un patch parcial. Si cambia el email chequea conflicto; si
// viene password se hashea con bcrypt antes de persistir.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil && *in.Email != user.Email {
		other, err := uc.userRepo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Remove elimina la cuenta solo si no posee feedback (guarda referencial,
// sin borrado en cascada).
func (uc *UserUseCase) Remove(id string) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	has, err := uc.feedbackRepo.ExistsByUser(id)
	if err != nil {
		return err
	}
	if has {
		return domain.ErrUserHasFeedback
	}
	return uc.userRepo.Delete(id)
}

// ChangeRole asigna otro rol al usuario. Falla si el rol no existe o si el
// usuario ya lo tiene.
func (uc *UserUseCase) ChangeRole(id string, in dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	role, err := uc.roleRepo.GetByID(in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	if user.RoleID == role.ID {
		return nil, domain.ErrRoleAlreadyAssigned
	}
	user.RoleID = role.ID
	user.Role = role
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Stats agregados de cuentas para el panel de administración.
func (uc *UserUseCase) Stats() (*dto.UserStatsResponse, error) {
	stats, err := uc.userRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.UserStatsResponse{
		TotalUsers:     stats.TotalUsers,
		UserRoleCount:  stats.UserRoleCount,
		AdminRoleCount: stats.AdminRoleCount,
	}, nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Role != nil {
		out.Role = dto.RoleResponse{ID: u.Role.ID, Name: u.Role.Name, Description: u.Role.Description}
	}
	return out
}
