package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// pageChecker contrato mínimo para autorizar una página. Lo implementa *access.Gate.
type pageChecker interface {
	IsAllowed(ctx context.Context, role string, page entity.Page) (bool, error)
}

// RequirePage verifica en cada petición que el rol del usuario tenga la página.
// La consulta no se cachea: una edición del rol aplica en la siguiente petición.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 → no hay rol en el contexto.
//   - 403 FORBIDDEN → el rol no incluye la página.
//   - 500 → fallo al consultar la tabla de roles (se registra).
func RequirePage(checker pageChecker, page entity.Page, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "rol no encontrado en la sesión"})
		}
		ok, err := checker.IsAllowed(c.UserContext(), role, page)
		if err != nil {
			return respondError(c, log, err)
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Next()
	}
}

// RequireRole restringe la ruta a los roles indicados (p. ej. borrar ítems solo admin).
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "rol no encontrado en la sesión"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Next()
	}
}
