package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

// ShoppingListUseCase genera la lista de compras a partir de los ítems con stock bajo.
type ShoppingListUseCase struct {
	repo repository.ItemRepository
	now  func() time.Time
}

// NewShoppingListUseCase construye el caso de uso.
func NewShoppingListUseCase(repo repository.ItemRepository) *ShoppingListUseCase {
	return &ShoppingListUseCase{repo: repo, now: time.Now}
}

// Generate devuelve los ítems con stock bajo, la cantidad a comprar (min_stock - quantity,
// nunca negativa), el costo estimado por ítem y el costo total.
func (uc *ShoppingListUseCase) Generate(ctx context.Context) (*dto.ShoppingListResponse, error) {
	low, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	items := make([]dto.ShoppingListItem, 0, len(low))
	for _, it := range low {
		required := it.ReorderThreshold - it.Quantity
		if required < 0 {
			required = 0
		}
		cost := it.Price.Mul(decimal.NewFromInt(int64(required)))
		total = total.Add(cost)

		items = append(items, dto.ShoppingListItem{
			ItemID:           it.ID,
			Name:             it.Name,
			Category:         it.Category,
			Quantity:         it.Quantity,
			ReorderThreshold: it.ReorderThreshold,
			Required:         required,
			Price:            it.Price,
			EstimatedCost:    cost,
		})
	}

	return &dto.ShoppingListResponse{
		Items:              items,
		TotalEstimatedCost: total,
		GeneratedAt:        uc.now(),
	}, nil
}
