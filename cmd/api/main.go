package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/econoarena/inventario-api/internal/application/auth"
	"github.com/econoarena/inventario-api/internal/application/inventory"
	"github.com/econoarena/inventario-api/internal/application/usecase"
	"github.com/econoarena/inventario-api/internal/domain/repository"
	"github.com/econoarena/inventario-api/internal/infrastructure/memory"
	infrapdf "github.com/econoarena/inventario-api/internal/infrastructure/pdf"
	"github.com/econoarena/inventario-api/internal/infrastructure/postgres"
	infrasession "github.com/econoarena/inventario-api/internal/infrastructure/session"
	httpRouter "github.com/econoarena/inventario-api/internal/interfaces/http"
	"github.com/econoarena/inventario-api/pkg/config"
	"github.com/econoarena/inventario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		userRepo     repository.UserRepository
		productRepo  repository.ProductRepository
		movementRepo repository.MovementRepository
		txRunner     inventory.TxRunner
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		userRepo = postgres.NewUserRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
		movementRepo = postgres.NewMovementRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	default: // memory: datos semilla de demostración
		store := memory.NewStore()
		if err := memory.Seed(store); err != nil {
			log.Fatal().Err(err).Msg("cargar datos semilla")
		}
		userRepo = memory.NewUserRepository(store)
		productRepo = memory.NewProductRepository(store)
		movementRepo = memory.NewMovementRepository(store)
		txRunner = memory.NewTxRunner(store)
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Sesión local persistida (equivalente al almacenamiento del navegador):
	// se repuebla al arrancar sin tocar red.
	sessionStore := infrasession.NewFileStore(cfg.Session.FilePath)
	sessionManager := auth.NewSessionManager(authUC, sessionStore)
	sessionManager.Restore()
	if snap := sessionManager.Snapshot(); snap.User != nil {
		log.Info().Str("username", snap.User.Username).Msg("sesión local restaurada")
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, log.Zerolog())
	productUC := usecase.NewProductUseCase(productRepo, log.Zerolog())
	movementUC := usecase.NewMovementUseCase(movementRepo)
	userUC := usecase.NewUserUseCase(userRepo, log.Zerolog())
	dashboardUC := usecase.NewDashboardUseCase(productRepo, movementRepo)
	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	reportUC := usecase.NewReportUseCase(productRepo, movementRepo, pdfGenerator, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EconoArena Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		MovementUC:       movementUC,
		UserUC:           userUC,
		DashboardUC:      dashboardUC,
		ReportUC:         reportUC,
		UserRepo:         userRepo,
		JWTSecret:        cfg.JWT.Secret,
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

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
