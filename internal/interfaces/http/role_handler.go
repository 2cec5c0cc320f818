package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/application/usecase"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// RoleHandler roles y sus páginas (página Settings).
type RoleHandler struct {
	uc  *usecase.RoleUseCase
	log *logger.Logger
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *usecase.RoleUseCase, log *logger.Logger) *RoleHandler {
	return &RoleHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar roles
// @Tags         roles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RoleResponse
// @Router       /api/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear rol
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RoleRequest  true  "name, permissions"
// @Success      201   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.RoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Update godoc
// @Summary      Reemplazar las páginas de un rol
// @Description  El cambio aplica en la siguiente petición de los usuarios con ese rol.
// @Tags         roles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        name  path  string           true  "Nombre del rol"
// @Param        body  body  dto.RoleRequest  true  "permissions"
// @Success      200   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/roles/{name} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	// fiber entrega el segmento sin decodificar: "lab%20tech"
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return respondError(c, h.log, domain.ErrInvalidInput)
	}
	var in dto.RoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Update(c.UserContext(), name, in.Permissions)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("role", res.Name).Strs("permissions", res.Permissions).Str("by", GetUserID(c)).Msg("rol actualizado")
	return c.JSON(res)
}
