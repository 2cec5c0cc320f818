package scheduler_test

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/labinventario-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

func TestAdd_ExpresionInvalida(t *testing.T) {
	s := scheduler.New(logger.Nop())
	err := s.Add("sweep", "cada rato", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestScheduler_EjecutaTarea(t *testing.T) {
	s := scheduler.New(logger.Nop())
	var runs atomic.Int32
	require.NoError(t, s.Add("sweep", "@every 1s", func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestNew_EtiquetaComponenteUnaVez(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	s := scheduler.New(log)
	require.NoError(t, s.Add("sweep", "@every 1m", func(context.Context) error { return nil }))

	out := buf.String()
	assert.Contains(t, out, `"component":"scheduler"`)
	assert.Equal(t, 1, strings.Count(out, `"component"`))
}
