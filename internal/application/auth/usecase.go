package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/labinventario-api/internal/application/access"
	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

// Principal usuario autenticado de la petición y las páginas que su rol permite.
type Principal struct {
	User        *entity.User
	Permissions entity.PageSet
}

// AuthUseCase casos de uso de autenticación: login, logout y resolución de sesión.
type AuthUseCase struct {
	users    repository.UserRepository
	sessions *SessionManager
	gate     *access.Gate
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, sessions *SessionManager, gate *access.Gate) *AuthUseCase {
	return &AuthUseCase{users: users, sessions: sessions, gate: gate}
}

// Authenticate verifica código de empleado y secreto. Código desconocido o secreto incorrecto -> (nil, nil).
func (uc *AuthUseCase) Authenticate(ctx context.Context, employeeID, secret string) (*entity.User, error) {
	user, err := uc.users.GetByEmployeeID(ctx, strings.TrimSpace(employeeID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		burnCompare(secret)
		return nil, nil
	}
	if !CheckPassword(user.PasswordHash, secret) {
		return nil, nil
	}
	return user, nil
}

// Login autentica y emite una sesión. Credenciales inválidas -> ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.EmployeeID) == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := uc.Authenticate(ctx, in.EmployeeID, in.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	perms, err := uc.gate.PermissionsFor(ctx, user.Role)
	if err != nil {
		return nil, err
	}
	sess, err := uc.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:       sess.Token,
		ExpiresAt:   sess.ExpiresAt,
		User:        *toUserResponse(user),
		Permissions: perms.Strings(),
	}, nil
}

// Logout invalida el token. Idempotente.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Invalidate(ctx, token)
}

// Resolve valida el token (extendiendo la sesión) y carga los permisos vigentes del rol.
// Sesión inválida -> (nil, nil).
func (uc *AuthUseCase) Resolve(ctx context.Context, token string) (*Principal, error) {
	user, err := uc.sessions.Validate(ctx, token)
	if err != nil || user == nil {
		return nil, err
	}
	perms, err := uc.gate.PermissionsFor(ctx, user.Role)
	if err != nil {
		return nil, err
	}
	return &Principal{User: user, Permissions: perms}, nil
}

// Session describe al usuario autenticado y sus páginas.
func (uc *AuthUseCase) Session(p *Principal) *dto.SessionResponse {
	return &dto.SessionResponse{
		User:        *toUserResponse(p.User),
		Permissions: p.Permissions.Strings(),
	}
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
