// Package scheduler ejecuta las tareas de mantenimiento periódicas (limpieza de sesiones, limitadores).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// Job tarea programada. Cada ejecución recibe un contexto con timeout.
type Job func(ctx context.Context) error

// Scheduler envoltorio de robfig/cron con logging estructurado.
type Scheduler struct {
	cron    *cron.Cron
	log     *logger.Logger
	timeout time.Duration
}

// New construye el scheduler. Las ejecuciones de un mismo job no se solapan.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:     log.Named("scheduler"),
		timeout: 30 * time.Second,
	}
}

// Add registra job con la expresión spec (ej. "@every 1m", "*/5 * * * *").
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	if err != nil {
		return fmt.Errorf("scheduler: job %s: expresión %q inválida: %w", name, spec, err)
	}
	s.log.Info().Str("job", name).Str("schedule", spec).Msg("tarea programada")
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		s.log.Error().Err(err).Str("job", name).Msg("tarea de mantenimiento falló")
		return
	}
	s.log.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("tarea de mantenimiento completada")
}

// Start inicia el planificador en segundo plano.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop detiene el planificador y espera a las tareas en curso o a que ctx venza.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("tareas de mantenimiento interrumpidas al apagar")
	}
}
