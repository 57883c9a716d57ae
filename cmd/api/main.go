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

	_ "github.com/jhoicas/almacen-api/docs"
	"github.com/jhoicas/almacen-api/internal/application/alerts"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/onboarding"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/salesfeed"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// @title        Almacén API
// @version      1.0
// @description  Plataforma multi-bodega de inventario: catálogo, libro de movimientos y alertas de stock bajo.
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	bundleRepo := postgres.NewProductBundleRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	salesRepo := postgres.NewSalesActivityRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Feed de ventas para las alertas: externo si hay URL configurada,
	// si no la tabla local de actividad.
	var feed alerts.SalesFeed = salesRepo
	if cfg.Alert.SalesFeedURL != "" {
		feed = salesfeed.NewRemoteFeed(cfg.Alert.SalesFeedURL)
		log.Info().Str("url", cfg.Alert.SalesFeedURL).Msg("usando feed de ventas remoto")
	}

	onboardUC := onboarding.NewOnboardProductUseCase(txRunner, productRepo, warehouseRepo)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, productRepo, warehouseRepo, inventoryRepo, postgres.NewInventoryMovementRepository(pool))
	lowStockUC := alerts.NewLowStockUseCase(feed, inventoryRepo, cfg.Alert.SalesWindowDays)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo, bundleRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo)
	salesUC := usecase.NewSalesUseCase(salesRepo, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:      companyUC,
		WarehouseUC:    warehouseUC,
		ProductUC:      productUC,
		SupplierUC:     supplierUC,
		SalesUC:        salesUC,
		OnboardProduct: onboardUC,
		Ledger:         ledgerUC,
		LowStock:       lowStockUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
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
