package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vestuario-api/internal/application/auth"
	"github.com/jhoicas/Vestuario-api/internal/application/inventory"
	"github.com/jhoicas/Vestuario-api/internal/application/purchasing"
	"github.com/jhoicas/Vestuario-api/internal/application/usecase"
	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	SupplierUC    *usecase.SupplierUseCase
	ApplyMovement *inventory.ApplyMovementUseCase
	StockQuery    *inventory.StockQueryUseCase
	PurchaseUC    *purchasing.PurchaseOrderUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Lecturas para cualquier usuario
// autenticado; mutaciones para admin y staff; borrar productos solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	write := RequireRole(entity.RoleAdmin, entity.RoleStaff)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", write, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", write, categoryHandler.Update)
	categories.Delete("/:id", write, categoryHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", write, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	suppliers.Post("/", write, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", write, supplierHandler.Update)
	suppliers.Delete("/:id", write, supplierHandler.Delete)
	suppliers.Get("/:id/orders", purchaseHandler.ListBySupplier)

	// Inventory: movimientos, niveles y alertas
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ApplyMovement, deps.StockQuery)
	invGroup.Post("/movements", write, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Get("/stock", inventoryHandler.ListStockLevels)
	invGroup.Get("/alerts", inventoryHandler.LowStockAlerts)

	// Purchase orders
	orders := protected.Group("/purchase-orders")
	orders.Post("/", write, purchaseHandler.Create)
	orders.Get("/", purchaseHandler.List)
	orders.Get("/:id", purchaseHandler.GetByID)
	orders.Put("/:id/items", write, purchaseHandler.UpdateItems)
	orders.Post("/:id/order", write, purchaseHandler.MarkOrdered)
	orders.Post("/:id/receive", write, purchaseHandler.Receive)
	orders.Post("/:id/cancel", write, purchaseHandler.Cancel)
}
