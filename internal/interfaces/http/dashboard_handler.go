package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventario-api/internal/application/reports"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// DashboardHandler expone el resumen del tablero.
type DashboardHandler struct {
	uc  *reports.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary godoc
// @Summary      Resumen del tablero
// @Description  Total de componentes, valor del inventario, alertas de stock bajo y los 10 movimientos más recientes.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	res, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(res)
}
