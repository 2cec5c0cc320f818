package repository

import (
	"context"

	"github.com/jhoicas/labinventario-api/internal/domain/entity"
)

// ItemFilter filtros del listado de inventario.
type ItemFilter struct {
	Search   string // contiene, sin distinguir mayúsculas
	Category string // vacío = todas
}

// ItemRepository define el puerto de persistencia para InventoryItem (usable con pool o tx).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	List(ctx context.Context, filter ItemFilter) ([]*entity.InventoryItem, error)
	Categories(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error

	// AdjustQuantity aplica quantity += delta de forma atómica siempre que el resultado sea >= 0.
	// Devuelve el ítem actualizado, o (nil, nil) si no se aplicó (ítem inexistente o stock insuficiente).
	AdjustQuantity(ctx context.Context, id string, delta int) (*entity.InventoryItem, error)

	// ListLowStock devuelve los ítems con quantity <= reorder_threshold, ordenados por nombre.
	ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error)
}
