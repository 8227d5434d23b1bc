package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/pos-api/internal/application/auth"
	"github.com/invorya/pos-api/internal/application/inventory"
	"github.com/invorya/pos-api/internal/application/transfer"
	"github.com/invorya/pos-api/internal/application/usecase"
	"github.com/invorya/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	LedgerUC    *inventory.LedgerUseCase
	QueryUC     *inventory.QueryUseCase
	LowStockUC  *inventory.LowStockUseCase
	TransferUC  *transfer.WorkflowUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. El RBAC por rol va en la ruta
// (RequireRole); el alcance por bodega se verifica en los casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: ledger y consultas (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.QueryUC, deps.LowStockUC)
	invGroup.Get("/", inventoryHandler.ListInventory)
	invGroup.Get("/stock", inventoryHandler.GetStock)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/adjust", inventoryHandler.AdjustStock)
	invGroup.Post("/set", inventoryHandler.SetStock)
	invGroup.Post("/transfer", RequireRole(entity.RoleAdmin), inventoryHandler.DirectTransfer)

	// Flujo de traslados (protegido; cajeros bloqueados en la ruta)
	transfers := invGroup.Group("/transfer-requests", RequireRole(entity.RoleAdmin, entity.RoleManager))
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.Get)
	transfers.Put("/:id/approve", transferHandler.Decide)
	transfers.Put("/:id/receive", transferHandler.Receive)

	// Warehouses (protegido; alta solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Products (protegido, solo lectura)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Employees: asignaciones de bodega (solo admin)
	employees := protected.Group("/employees", RequireRole(entity.RoleAdmin))
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Put("/:id/warehouses", employeeHandler.SetWarehouses)
}
