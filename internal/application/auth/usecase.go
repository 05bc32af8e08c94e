package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
	"github.com/jhoicas/biblioteca-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, jwtCfg: jwtCfg}
}

// Signup crea una cuenta: hashea el password con bcrypt, asigna el rol USER
// por defecto y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Signup(in dto.SignupRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	userRole, err := uc.ensureUserRole()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		RoleID:       userRole.ID,
		Role:         userRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT con {sub, email, role} y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	roleName := entity.RoleUser
	if user.Role != nil {
		roleName = user.Role.Name
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, roleName, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		User:        *toUserResponse(user),
		AccessToken: token,
	}, nil
}

// ensureUserRole garantiza que el rol USER de referencia exista (la siembra
// normal es cmd/seed; esto cubre entornos recién creados).
func (uc *AuthUseCase) ensureUserRole() (*entity.Role, error) {
	role, err := uc.roleRepo.GetByName(entity.RoleUser)
	if err != nil {
		return nil, err
	}
	if role != nil {
		return role, nil
	}
	role = &entity.Role{
		ID:          "user",
		Name:        entity.RoleUser,
		Description: "Regular user with basic permissions",
	}
	if err := uc.roleRepo.Upsert(role); err != nil {
		return nil, err
	}
	return role, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
