package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labinventario-api/internal/application/access"
	"github.com/jhoicas/labinventario-api/internal/application/auth"
	"github.com/jhoicas/labinventario-api/internal/application/inventory"
	"github.com/jhoicas/labinventario-api/internal/application/reports"
	"github.com/jhoicas/labinventario-api/internal/application/usecase"
	"github.com/jhoicas/labinventario-api/internal/domain/entity"
	"github.com/jhoicas/labinventario-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	Gate           *access.Gate
	ItemUC         *inventory.ItemUseCase
	MovementUC     *inventory.MovementUseCase
	ShoppingListUC *inventory.ShoppingListUseCase
	DashboardUC    *reports.DashboardUseCase
	ReportUC       *reports.ReportUseCase
	UserUC         *usecase.UserUseCase
	RoleUC         *usecase.RoleUseCase
	PDF            ShoppingListRenderer
	LoginLimiter   *LoginLimiter
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	page := func(p entity.Page) fiber.Handler { return RequirePage(deps.Gate, p, log) }

	api := app.Group("/api")

	// Auth (login público, limitado por IP)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	if deps.LoginLimiter != nil {
		authGroup.Post("/login", deps.LoginLimiter.Handler(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token de sesión)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC, log))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/session", authHandler.Session)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	protected.Get("/dashboard", page(entity.PageDashboard), dashboardHandler.GetSummary)

	// Inventory
	inventoryHandler := NewInventoryHandler(deps.ItemUC, log)
	inv := protected.Group("/inventory", page(entity.PageInventory))
	inv.Get("/items", inventoryHandler.List)
	inv.Post("/items", inventoryHandler.Create)
	inv.Delete("/items/:id", RequireRole(entity.RoleAdmin), inventoryHandler.Delete)
	inv.Get("/categories", inventoryHandler.Categories)
	inv.Post("/import", inventoryHandler.Import)
	inv.Post("/import/csv", inventoryHandler.ImportCSV)
	inv.Post("/import/xlsx", inventoryHandler.ImportXLSX)
	inv.Get("/low-stock", inventoryHandler.LowStock)

	// Stock operations
	stockHandler := NewStockHandler(deps.MovementUC, log)
	stock := protected.Group("/stock", page(entity.PageStockOperations))
	stock.Post("/in", stockHandler.StockIn)
	stock.Post("/out", stockHandler.StockOut)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC, log)
	rep := protected.Group("/reports", page(entity.PageReports))
	rep.Get("/summary", reportHandler.Summary)
	rep.Get("/transactions", reportHandler.Transactions)

	// Shopping list
	shoppingHandler := NewShoppingListHandler(deps.ShoppingListUC, deps.PDF, log)
	shopping := page(entity.PageShoppingList)
	protected.Get("/shopping-list", shopping, shoppingHandler.Get)
	protected.Get("/shopping-list.csv", shopping, shoppingHandler.CSV)
	protected.Get("/shopping-list.pdf", shopping, shoppingHandler.PDF)

	// User management
	userHandler := NewUserHandler(deps.UserUC, log)
	users := protected.Group("/users", page(entity.PageUserManagement))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)

	// Settings (roles)
	roleHandler := NewRoleHandler(deps.RoleUC, log)
	roles := protected.Group("/roles", page(entity.PageSettings))
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Put("/:name", roleHandler.Update)

	// My Profile (siempre permitido)
	profile := protected.Group("/profile", page(entity.PageMyProfile))
	profile.Get("/", userHandler.GetProfile)
	profile.Put("/", userHandler.UpdateProfile)
}
