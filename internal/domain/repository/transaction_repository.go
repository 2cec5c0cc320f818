package repository

import (
	"context"

	"github.com/jhoicas/labinventario-api/internal/domain/entity"
)

// ItemActivity cantidad de movimientos registrados para un ítem.
type ItemActivity struct {
	ItemName string
	Count    int
}

// TransactionRepository puerto del registro de movimientos. Solo inserción y lectura.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	ListRecent(ctx context.Context, limit, offset int) ([]*entity.Transaction, error)
	CountByDirection(ctx context.Context) (map[string]int, error)
	TopItems(ctx context.Context, limit int) ([]ItemActivity, error)
	Count(ctx context.Context) (int, error)
}
