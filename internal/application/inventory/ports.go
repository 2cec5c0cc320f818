package inventory

import (
	"context"

	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el ajuste de cantidad y el registro del movimiento se confirmen juntos o no se apliquen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
