package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/econoarena/inventario-api/internal/application/auth"
	"github.com/econoarena/inventario-api/internal/application/inventory"
	"github.com/econoarena/inventario-api/internal/application/usecase"
	"github.com/econoarena/inventario-api/internal/domain/access"
	"github.com/econoarena/inventario-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementUC       *usecase.MovementUseCase
	UserUC           *usecase.UserUseCase
	DashboardUC      *usecase.DashboardUseCase
	ReportUC         *usecase.ReportUseCase
	UserRepo         repository.UserRepository
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público salvo perfil y cambio de contraseña)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Profile)
	authGroup.Put("/password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	canRead := RequirePermission(access.CapRead, deps.UserRepo)
	canCreate := RequirePermission(access.CapCreate, deps.UserRepo)
	canUpdate := RequirePermission(access.CapUpdate, deps.UserRepo)
	canDelete := RequirePermission(access.CapDelete, deps.UserRepo)
	canManageUsers := RequirePermission(access.CapManageUsers, deps.UserRepo)
	canViewReports := RequirePermission(access.CapViewReports, deps.UserRepo)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", canRead, productHandler.List)
	products.Get("/low-stock", canRead, productHandler.LowStock)
	products.Get("/categories", canRead, productHandler.Categories)
	products.Get("/:id", canRead, productHandler.GetByID)
	products.Post("/", canCreate, productHandler.Create)
	products.Put("/:id", canUpdate, productHandler.Update)
	products.Delete("/:id", canDelete, productHandler.Delete)

	// Movements
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementUC, deps.UserRepo)
	movements.Get("/", canRead, movementHandler.List)
	movements.Get("/summary", canRead, movementHandler.Summary)
	movements.Post("/", canCreate, movementHandler.Register)

	// Users (solo manage_users)
	users := protected.Group("/users", canManageUsers)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Patch("/:id/status", userHandler.SetStatus)

	// Dashboard
	dashboard := protected.Group("/dashboard", canRead)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/categories", dashboardHandler.Categories)
	dashboard.Get("/top-products", dashboardHandler.TopProducts)

	// Reports (solo view_reports)
	reports := protected.Group("/reports", canViewReports)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/movements", reportHandler.Movements)
}
