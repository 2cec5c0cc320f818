package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/pkg/config"
)

// chdir cambia el directorio de trabajo y lo restaura al terminar el test
// (equivalente a testing.T.Chdir, disponible solo desde Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	chdir(t, t.TempDir()) // sin .env en el directorio

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Session.TTLMinutes)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL())
	assert.Equal(t, "@every 1m", cfg.Session.SweepSchedule)
	assert.Equal(t, 10, cfg.Login.RatePerMinute)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.True(t, cfg.App.SeedOnStart)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, config.StorePostgres, cfg.App.Store)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_TTL_MINUTES", "15")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SEED_ON_START", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Session.TTL())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.App.SeedOnStart)
}

func TestLoad_TTLInvalido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_TTL_MINUTES", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_StoreInvalido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_STORE", "redis")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "lab", Password: "p@ss:word", DBName: "robolab", SSLMode: "disable"}
	assert.Equal(t, "postgres://lab:p%40ss%3Aword@db:5432/robolab?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
