package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/application/inventory"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/csvio"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// InventoryHandler catálogo de componentes (protegido, página Inventory).
type InventoryHandler struct {
	uc  *inventory.ItemUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ItemUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar componentes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Nombre contiene (sin distinguir mayúsculas)"
// @Param        category  query  string  false  "Categoría exacta"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	res, err := h.uc.List(c.UserContext(), c.Query("search"), c.Query("category"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(res)
}

// Create godoc
// @Summary      Crear componente
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name obligatorio; category/location/min_stock con valores por defecto"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Categories godoc
// @Summary      Categorías sugeridas y en uso
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoriesResponse
// @Router       /api/inventory/categories [get]
func (h *InventoryHandler) Categories(c *fiber.Ctx) error {
	res, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(res)
}

// Delete godoc
// @Summary      Eliminar componente (solo admin)
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "ID del componente"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("item_id", id).Str("user_id", GetUserID(c)).Msg("componente eliminado")
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Importación masiva (JSON)
// @Description  Filas sin nombre o con números negativos se omiten.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportRequest  true  "rows"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/import [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.BulkImport(c.UserContext(), in.Rows)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("importación JSON")
	return c.JSON(res)
}

// ImportCSV godoc
// @Summary      Importación masiva (CSV)
// @Description  Columnas Name, Category, Location, Quantity, Min Stock, Price. Name es obligatoria.
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "Archivo CSV"
// @Param        charset  query     string  false  "utf-8 (default), latin1, windows-1252"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/import/csv [post]
func (h *InventoryHandler) ImportCSV(c *fiber.Ctx) error {
	charset := c.Query("charset", c.FormValue("charset"))
	return h.importFile(c, "CSV", func(r io.Reader) ([]dto.ImportRow, int, error) {
		return csvio.ParseItems(r, charset)
	})
}

// ImportXLSX godoc
// @Summary      Importación masiva (Excel)
// @Description  Primera hoja del libro, mismas columnas que la importación CSV.
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .xlsx"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/import/xlsx [post]
func (h *InventoryHandler) ImportXLSX(c *fiber.Ctx) error {
	return h.importFile(c, "XLSX", csvio.ParseItemsXLSX)
}

func (h *InventoryHandler) importFile(c *fiber.Ctx, format string, parse func(io.Reader) ([]dto.ImportRow, int, error)) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo " + format + " requerido en el campo file"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer f.Close()

	rows, skipped, err := parse(f)
	if err != nil {
		return respondError(c, h.log, err)
	}
	res, err := h.uc.BulkImport(c.UserContext(), rows)
	if err != nil {
		return respondError(c, h.log, err)
	}
	res.Skipped += skipped
	h.log.Info().Str("file", fh.Filename).Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("importación " + format)
	return c.JSON(res)
}

// LowStock godoc
// @Summary      Componentes con stock bajo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	res, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(res)
}
