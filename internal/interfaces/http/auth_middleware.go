package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventario-api/internal/application/auth"
	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// Locals keys de la petición autenticada.
const (
	LocalPrincipal = "principal"
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalToken     = "session_token"
)

// sessionResolver valida el token opaco y devuelve el usuario con sus permisos vigentes.
// Lo implementa *auth.AuthUseCase.
type sessionResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Principal, error)
}

// AuthMiddleware valida el Bearer token de sesión (extendiendo su vencimiento) y carga el
// Principal en c.Locals. Token ausente, desconocido o vencido -> 401.
func AuthMiddleware(resolver sessionResolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "formato: Bearer <token>"})
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}

		principal, err := resolver.Resolve(c.UserContext(), token)
		if err != nil {
			return respondError(c, log, err)
		}
		if principal == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "sesión inválida o expirada"})
		}

		c.Locals(LocalPrincipal, principal)
		c.Locals(LocalUserID, principal.User.ID)
		c.Locals(LocalRole, principal.User.Role)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// GetPrincipal devuelve el usuario autenticado (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) *auth.Principal {
	p, _ := c.Locals(LocalPrincipal).(*auth.Principal)
	return p
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetToken devuelve el token de sesión de la petición.
func GetToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalToken).(string)
	return s
}

// actorName nombre visible del usuario para el registro de movimientos.
func actorName(c *fiber.Ctx) string {
	if p := GetPrincipal(c); p != nil && p.User != nil {
		return p.User.Name
	}
	return ""
}
