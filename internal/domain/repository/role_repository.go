package repository

import (
	"context"

	"github.com/jhoicas/labinventario-api/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para Role.
// No hay caché: cada consulta de permisos lee la tabla para que las ediciones apliquen de inmediato.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	List(ctx context.Context) ([]*entity.Role, error)
}
