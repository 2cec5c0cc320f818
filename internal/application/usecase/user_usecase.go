package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labinventario-api/internal/application/auth"
	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios: alta y edición (User Management) y My Profile.
// Los usuarios no se eliminan.
type UserUseCase struct {
	repo  repository.UserRepository
	roles repository.RoleRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, roles repository.RoleRepository) *UserUseCase {
	return &UserUseCase{repo: repo, roles: roles}
}

// Create da de alta un usuario con el secreto hasheado. Código de empleado repetido -> ErrEmployeeIDExists.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	name := strings.TrimSpace(in.Name)
	if employeeID == "" || name == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = entity.RoleAssistant
	}
	if err := uc.requireRole(ctx, role); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmployeeIDExists
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		EmployeeID:   employeeID,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update edición parcial de un usuario. Password vacío conserva el secreto actual.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Role != nil {
		role := strings.TrimSpace(*in.Role)
		if err := uc.requireRole(ctx, role); err != nil {
			return nil, err
		}
		user.Role = role
	}
	if err := applyProfile(user, in.Name, in.Phone, in.Password); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista todos los usuarios (sin secretos).
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// GetProfile datos del propio usuario.
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if !entity.ValidID(userID) {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile el usuario edita su nombre, teléfono y secreto. El rol no se cambia desde aquí.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if !entity.ValidID(userID) {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := applyProfile(user, in.Name, in.Phone, in.Password); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *UserUseCase) requireRole(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	role, err := uc.roles.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func applyProfile(user *entity.User, name, phone, password *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return domain.ErrInvalidInput
		}
		user.Name = n
	}
	if phone != nil {
		user.Phone = strings.TrimSpace(*phone)
	}
	if password != nil && *password != "" {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		EmployeeID: u.EmployeeID,
		Name:       u.Name,
		Role:       u.Role,
		Phone:      u.Phone,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
