package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/alerts"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/onboarding"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	ProductUC      *usecase.ProductUseCase
	SupplierUC     *usecase.SupplierUseCase
	SalesUC        *usecase.SalesUseCase
	OnboardProduct *onboarding.OnboardProductUseCase
	Ledger         *inventory.LedgerUseCase
	LowStock       *alerts.LowStockUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Products (protegido); el POST hace el alta atómica producto + inventario
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.OnboardProduct, deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/components", productHandler.AddComponent)
	products.Get("/:id/components", productHandler.ListComponents)

	// Inventory (protegido): ajustes, stock y movimientos
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	invGroup.Post("/adjustments", inventoryHandler.AdjustStock)
	invGroup.Get("/stock", inventoryHandler.GetStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/:id/products/:product_id", supplierHandler.LinkProduct)
	suppliers.Delete("/:id/products/:product_id", supplierHandler.UnlinkProduct)

	// Sales (protegido): ingesta de actividad para el motor de alertas
	sales := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	sales.Post("/", salesHandler.Record)

	// Alerts (protegido)
	alertsGroup := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.LowStock)
	alertsGroup.Get("/low-stock", alertHandler.LowStock)
}
