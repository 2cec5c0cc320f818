package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventario-api/internal/application/dto"
	"github.com/jhoicas/labinventario-api/internal/domain"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// Mensaje genérico para fallos internos; el detalle solo va al log.
const internalErrorMessage = "error interno del servidor"

// respondError traduce errores de dominio a HTTP. Cualquier error no reconocido se registra
// y se responde como 500 sin exponer su texto.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", internalErrorMessage
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, code, msg = fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "INVALID_SESSION", "sesión inválida o expirada"
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code, msg = fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"
	case errors.Is(err, domain.ErrEmployeeIDExists):
		status, code, msg = fiber.StatusConflict, "EMPLOYEE_ID_EXISTS", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		status, code, msg = fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownPage):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		status, code, msg = fiber.StatusNotFound, "USER_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrRoleNotFound):
		status, code, msg = fiber.StatusNotFound, "ROLE_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrTooManyLoginAttempts):
		status, code, msg = fiber.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", err.Error()
	default:
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("user_id", GetUserID(c)).
			Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
