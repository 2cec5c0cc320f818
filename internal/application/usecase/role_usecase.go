package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

// RoleUseCase administra roles y sus páginas (Settings). No hay baja de roles.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// Create crea un rol. Nombre repetido -> ErrDuplicate; página desconocida -> ErrInvalidInput.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.RoleRequest) (*dto.RoleResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	perms, err := parsePermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	role := &entity.Role{Name: name, Permissions: perms}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// Update reemplaza las páginas del rol. Aplica en la siguiente petición de cualquier sesión con ese rol.
func (uc *RoleUseCase) Update(ctx context.Context, name string, permissions []string) (*dto.RoleResponse, error) {
	perms, err := parsePermissions(permissions)
	if err != nil {
		return nil, err
	}
	role, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	role.Permissions = perms
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// List lista los roles con sus páginas.
func (uc *RoleUseCase) List(ctx context.Context) ([]dto.RoleResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRoleResponse(r))
	}
	return out, nil
}

func parsePermissions(names []string) (entity.PageSet, error) {
	perms, err := entity.ParsePages(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return perms, nil
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{Name: r.Name, Permissions: r.Permissions.Strings()}
}
