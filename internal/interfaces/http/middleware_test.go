package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	apphttp "github.com/jhoicas/labinventario-api/internal/interfaces/http"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole / RequirePage sin sesión real
// ──────────────────────────────────────────────────────────────────────────────

// withRole simula el AuthMiddleware cargando solo el rol.
func withRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals(apphttp.LocalRole, role)
		}
		return c.Next()
	}
}

func ok(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func get(t *testing.T, app *fiber.App, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name string
		role string
		want int
	}{
		{"admin permitido", entity.RoleAdmin, http.StatusOK},
		{"asistente denegado", entity.RoleAssistant, http.StatusForbidden},
		{"sin rol", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", withRole(tc.role), apphttp.RequireRole(entity.RoleAdmin), ok)
			assert.Equal(t, tc.want, get(t, app, "/x"))
		})
	}
}

type stubChecker struct {
	allowed bool
	err     error
}

func (s stubChecker) IsAllowed(context.Context, string, entity.Page) (bool, error) {
	return s.allowed, s.err
}

func TestRequirePage(t *testing.T) {
	cases := []struct {
		name    string
		checker stubChecker
		want    int
	}{
		{"permitido", stubChecker{allowed: true}, http.StatusOK},
		{"denegado", stubChecker{}, http.StatusForbidden},
		{"fallo de almacén", stubChecker{err: errors.New("db caída")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", withRole("assistant"), apphttp.RequirePage(tc.checker, entity.PageReports, logger.Nop()), ok)
			assert.Equal(t, tc.want, get(t, app, "/x"))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// LoginLimiter
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginLimiter_BloqueaTrasRafaga(t *testing.T) {
	limiter := apphttp.NewLoginLimiter(1, 2)
	app := fiber.New()
	app.Post("/login", limiter.Handler(), ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLoginLimiter_ClavesIndependientesYLimpieza(t *testing.T) {
	limiter := apphttp.NewLoginLimiter(1, 1)
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))

	assert.Zero(t, limiter.Cleanup(time.Hour))
	assert.Equal(t, 2, limiter.Cleanup(-time.Second))
	assert.True(t, limiter.Allow("10.0.0.1"), "tras la limpieza el bucket se recrea lleno")
}
