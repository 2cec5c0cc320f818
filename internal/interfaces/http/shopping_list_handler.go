package http

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/application/inventory"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/csvio"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// ShoppingListRenderer genera el documento imprimible de la lista de compras.
type ShoppingListRenderer interface {
	Generate(ctx context.Context, list *dto.ShoppingListResponse) ([]byte, error)
}

// ShoppingListHandler lista de compras en JSON, CSV y PDF.
type ShoppingListHandler struct {
	uc       *inventory.ShoppingListUseCase
	renderer ShoppingListRenderer
	log      *logger.Logger
}

// NewShoppingListHandler construye el handler.
func NewShoppingListHandler(uc *inventory.ShoppingListUseCase, renderer ShoppingListRenderer, log *logger.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{uc: uc, renderer: renderer, log: log}
}

// Get godoc
// @Summary      Lista de compras
// @Description  Componentes con stock bajo, cantidad requerida y costo estimado.
// @Tags         shopping-list
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ShoppingListResponse
// @Router       /api/shopping-list [get]
func (h *ShoppingListHandler) Get(c *fiber.Ctx) error {
	list, err := h.uc.Generate(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// CSV godoc
// @Summary      Lista de compras (CSV)
// @Tags         shopping-list
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/shopping-list.csv [get]
func (h *ShoppingListHandler) CSV(c *fiber.Ctx) error {
	list, err := h.uc.Generate(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	var buf bytes.Buffer
	if err := csvio.WriteShoppingList(&buf, list); err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, attachment(list, "csv"))
	return c.Send(buf.Bytes())
}

// PDF godoc
// @Summary      Lista de compras (PDF)
// @Tags         shopping-list
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/shopping-list.pdf [get]
func (h *ShoppingListHandler) PDF(c *fiber.Ctx) error {
	list, err := h.uc.Generate(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	doc, err := h.renderer.Generate(c.UserContext(), list)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachment(list, "pdf"))
	return c.Send(doc)
}

func attachment(list *dto.ShoppingListResponse, ext string) string {
	return fmt.Sprintf(`attachment; filename="lista-compras-%s.%s"`, list.GeneratedAt.Format("20060102"), ext)
}
