package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/application/inventory"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/metrics"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// StockHandler entradas y salidas de stock (página Stock Operations).
type StockHandler struct {
	uc  *inventory.MovementUseCase
	log *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.MovementUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "item_id, quantity > 0"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	return h.move(c, entity.DirectionIn, h.uc.StockIn)
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Description  Falla con 409 si la cantidad supera el stock disponible; en ese caso no se registra nada.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "item_id, quantity > 0"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/out [post]
func (h *StockHandler) StockOut(c *fiber.Ctx) error {
	return h.move(c, entity.DirectionOut, h.uc.StockOut)
}

type movementFunc func(ctx context.Context, in inventory.MovementInput) (*dto.StockMovementResponse, error)

func (h *StockHandler) move(c *fiber.Ctx, direction string, fn movementFunc) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := fn(c.UserContext(), inventory.MovementInput{
		ItemID:   in.ItemID,
		Quantity: in.Quantity,
		Actor:    actorName(c),
		Notes:    in.Notes,
	})
	metrics.StockMovement(direction, movementResult(err))
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().
		Str("type", direction).
		Str("item_id", res.Item.ID).
		Int("quantity", res.Transaction.Quantity).
		Int("stock", res.Item.Quantity).
		Str("user_id", GetUserID(c)).
		Msg("movimiento registrado")
	return c.Status(fiber.StatusCreated).JSON(res)
}

func movementResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient"
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound):
		return "invalid"
	default:
		return "error"
	}
}
