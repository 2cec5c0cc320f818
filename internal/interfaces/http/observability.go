package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventario-api/internal/infrastructure/metrics"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// RequestLogger registra cada petición con su estado y duración.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Msg("petición")
		return err
	}
}

// Metrics middleware que alimenta los contadores HTTP de Prometheus por ruta registrada.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		done := metrics.RequestStarted()
		err := c.Next()
		done(c.Method(), c.Route().Path, c.Response().StatusCode())
		return err
	}
}
