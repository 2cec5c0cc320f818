// Package access decide qué páginas puede usar cada rol.
package access

import (
	"context"

	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

// Gate consulta la tabla de roles en cada verificación; no guarda caché para que
// una edición de permisos aplique en la siguiente petición.
type Gate struct {
	roles repository.RoleRepository
}

// NewGate construye la compuerta de acceso.
func NewGate(roles repository.RoleRepository) *Gate {
	return &Gate{roles: roles}
}

// PermissionsFor devuelve una copia de las páginas del rol. Rol inexistente -> conjunto vacío.
func (g *Gate) PermissionsFor(ctx context.Context, roleName string) (entity.PageSet, error) {
	perms := entity.NewPageSet()
	if roleName == "" {
		return perms, nil
	}
	role, err := g.roles.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role != nil {
		for p := range role.Permissions {
			perms[p] = struct{}{}
		}
	}
	return perms, nil
}

// IsAllowed informa si el rol puede acceder a la página. My Profile se permite sin consultar.
func (g *Gate) IsAllowed(ctx context.Context, roleName string, page entity.Page) (bool, error) {
	if page == entity.PageMyProfile {
		return true, nil
	}
	if !page.Valid() || roleName == "" {
		return false, nil
	}
	role, err := g.roles.GetByName(ctx, roleName)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, nil
	}
	return role.Permissions.Has(page), nil
}
