package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/labinventario-api/internal/application/access"
	"github.com/jhoicas/labinventario-api/internal/application/auth"
	"github.com/jhoicas/labinventario-api/internal/application/bootstrap"
	"github.com/jhoicas/labinventario-api/internal/application/inventory"
	"github.com/jhoicas/labinventario-api/internal/application/reports"
	"github.com/jhoicas/labinventario-api/internal/application/usecase"
	"github.com/jhoicas/labinventario-api/internal/domain/repository"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/memory"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/labinventario-api/internal/infrastructure/pdf"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/postgres"
	"github.com/jhoicas/labinventario-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/labinventario-api/internal/interfaces/http"
	"github.com/jhoicas/labinventario-api/pkg/config"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// limiterIdle tiempo sin intentos tras el cual se olvida el bucket de una IP.
const limiterIdle = 15 * time.Minute

// storage repositorios del backend elegido con APP_STORE.
type storage struct {
	users        repository.UserRepository
	roles        repository.RoleRepository
	sessions     repository.SessionRepository
	items        repository.ItemRepository
	transactions repository.TransactionRepository
	txRunner     inventory.TxRunner
	close        func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Store == config.StoreMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			users:        store.Users(),
			roles:        store.Roles(),
			sessions:     store.Sessions(),
			items:        store.Items(),
			transactions: store.Transactions(),
			txRunner:     store.TxRunner(),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		users:        postgres.NewUserRepository(pool),
		roles:        postgres.NewRoleRepository(pool),
		sessions:     postgres.NewSessionRepository(pool),
		items:        postgres.NewItemRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		txRunner:     postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	if cfg.App.SeedOnStart {
		if err := bootstrap.NewSeeder(st.users, st.roles, log.Named("seed")).Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("sembrar datos iniciales")
		}
	}

	gate := access.NewGate(st.roles)
	sessions := auth.NewSessionManager(st.sessions, st.users, cfg.Session.TTL())
	authUC := auth.NewAuthUseCase(st.users, sessions, gate)
	limiter := httpRouter.NewLoginLimiter(cfg.Login.RatePerMinute, cfg.Login.Burst)

	// Limpieza periódica de sesiones vencidas y buckets de login inactivos
	sched := scheduler.New(log)
	if err := sched.Add("session-sweep", cfg.Session.SweepSchedule, func(ctx context.Context) error {
		n, err := sessions.Sweep(ctx)
		if err != nil {
			return err
		}
		metrics.SessionsSwept(n)
		if n > 0 {
			log.Debug().Int64("removed", n).Msg("sesiones vencidas eliminadas")
		}
		return nil
	}); err != nil {
		log.Fatal().Err(err).Msg("programar limpieza de sesiones")
	}
	if err := sched.Add("login-limiter-cleanup", "@every 5m", func(context.Context) error {
		limiter.Cleanup(limiterIdle)
		return nil
	}); err != nil {
		log.Fatal().Err(err).Msg("programar limpieza del limitador")
	}
	sched.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.Metrics())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.App.SwaggerFile,
		Path:     "docs",
		Title:    "RoboLab Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.Store})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Gate:           gate,
		ItemUC:         inventory.NewItemUseCase(st.items),
		MovementUC:     inventory.NewMovementUseCase(st.txRunner),
		ShoppingListUC: inventory.NewShoppingListUseCase(st.items),
		DashboardUC:    reports.NewDashboardUseCase(st.items, st.transactions),
		ReportUC:       reports.NewReportUseCase(st.transactions),
		UserUC:         usecase.NewUserUseCase(st.users, st.roles),
		RoleUC:         usecase.NewRoleUseCase(st.roles),
		PDF:            infrapdf.NewShoppingListPDF("Lista de compras - " + cfg.App.Name),
		LoginLimiter:   limiter,
		Log:            log.Named("api"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sched.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
