package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
)

// MovementUseCase registra entradas y salidas de stock de forma transaccional.
// La cantidad se ajusta con un UPDATE condicional y el movimiento se inserta en la misma tx:
// si cualquiera de los dos falla, ninguno queda aplicado.
type MovementUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, now: time.Now}
}

// MovementInput entrada de StockIn / StockOut. Actor es el nombre visible de quien registra.
type MovementInput struct {
	ItemID   string
	Quantity int
	Actor    string
	Notes    string
}

// StockIn suma Quantity al ítem y registra un movimiento "in".
func (uc *MovementUseCase) StockIn(ctx context.Context, in MovementInput) (*dto.StockMovementResponse, error) {
	return uc.register(ctx, entity.DirectionIn, in)
}

// StockOut resta Quantity al ítem si hay stock suficiente y registra un movimiento "out".
// Sin stock suficiente devuelve ErrInsufficientStock sin modificar nada; ítem inexistente -> ErrNotFound.
func (uc *MovementUseCase) StockOut(ctx context.Context, in MovementInput) (*dto.StockMovementResponse, error) {
	return uc.register(ctx, entity.DirectionOut, in)
}

func (uc *MovementUseCase) register(ctx context.Context, direction string, in MovementInput) (*dto.StockMovementResponse, error) {
	in.ItemID = strings.TrimSpace(in.ItemID)
	if in.ItemID == "" || in.Quantity <= 0 || in.Quantity > entity.MaxCount {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidID(in.ItemID) {
		return nil, domain.ErrNotFound
	}
	delta := in.Quantity
	if direction == entity.DirectionOut {
		delta = -delta
	}

	var (
		item *entity.InventoryItem
		mov  *entity.Transaction
	)
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, txRepo repository.TransactionRepository) error {
		updated, err := itemRepo.AdjustQuantity(ctx, in.ItemID, delta)
		if err != nil {
			return err
		}
		if updated == nil {
			// no se aplicó: distinguir ítem inexistente de stock insuficiente
			existing, err := itemRepo.GetByID(ctx, in.ItemID)
			if err != nil {
				return err
			}
			if existing == nil {
				return domain.ErrNotFound
			}
			return domain.ErrInsufficientStock
		}

		mov = &entity.Transaction{
			ID:        uuid.New().String(),
			ItemID:    updated.ID,
			ItemName:  updated.Name,
			Direction: direction,
			Quantity:  in.Quantity,
			User:      in.Actor,
			Timestamp: uc.now(),
			Notes:     strings.TrimSpace(in.Notes),
		}
		if err := txRepo.Create(ctx, mov); err != nil {
			return err
		}
		item = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockMovementResponse{
		Item:        *ToItemResponse(item),
		Transaction: *ToTransactionResponse(mov),
	}, nil
}

// ToItemResponse convierte la entidad al DTO de salida.
func ToItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:               it.ID,
		Name:             it.Name,
		Category:         it.Category,
		Location:         it.Location,
		Quantity:         it.Quantity,
		ReorderThreshold: it.ReorderThreshold,
		Price:            it.Price,
		LowStock:         it.LowStock(),
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.UpdatedAt,
	}
}

// ToTransactionResponse convierte un movimiento al DTO de salida.
func ToTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	if t == nil {
		return nil
	}
	return &dto.TransactionResponse{
		ID:        t.ID,
		ItemID:    t.ItemID,
		ItemName:  t.ItemName,
		Direction: t.Direction,
		Quantity:  t.Quantity,
		User:      t.User,
		Timestamp: t.Timestamp,
		Notes:     t.Notes,
	}
}
