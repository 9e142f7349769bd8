package http

import (
	"github.com/gofiber/fiber/v2"

	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/reporting"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Projection *appinventory.ProjectionUseCase
	Movements  *appinventory.MovementUseCase
	Disposals  *appinventory.DisposalUseCase
	Import     *appinventory.ImportUseCase
	Valuation  *reporting.ValuationUseCase
	ReadSheet  SheetReader
	JWTSecret  string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	stock := RequireRole(RoleAdmin, RoleBodeguero)
	sales := RequireRole(RoleAdmin, RoleVendedor)
	anyRole := RequireRole(RoleAdmin, RoleBodeguero, RoleVendedor)
	adminOnly := RequireRole(RoleAdmin)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.Projection, deps.Import, deps.Valuation, deps.ReadSheet)
	inv := api.Group("/inventory")
	inv.Post("/rebuild", stock, inventoryHandler.Rebuild)
	inv.Post("/import", stock, inventoryHandler.Import)
	inv.Get("/summary", anyRole, inventoryHandler.Summary)
	inv.Get("/grouped/:warehouse_id?", anyRole, inventoryHandler.Grouped)
	inv.Get("/warehouse/:warehouse_id", anyRole, inventoryHandler.ByWarehouse)

	// Libro de movimientos
	movementHandler := NewMovementHandler(deps.Movements, deps.Valuation)
	api.Post("/movements/bulk", stock, movementHandler.Bulk)
	api.Post("/movement-groups", stock, movementHandler.CreateGroup)
	api.Get("/movement-groups/warehouse/:warehouse_id", stock, movementHandler.ByWarehouse)
	api.Get("/movement-groups/:id/summary", stock, movementHandler.GroupSummary)
	api.Get("/movement-groups/:id/movements", stock, movementHandler.GroupMovements)

	// Ventas
	saleHandler := NewSaleHandler(deps.Disposals, deps.Valuation)
	api.Post("/sales/bulk", sales, saleHandler.Bulk)
	api.Patch("/sales/:id/paid", sales, saleHandler.MarkPaid)
	api.Post("/sale-groups", sales, saleHandler.CreateGroup)
	api.Get("/sale-groups/debtors", sales, saleHandler.Debtors)
	api.Get("/sale-groups/warehouse/:warehouse_id", sales, saleHandler.ByWarehouse)
	api.Get("/sale-groups/:id/summary", sales, saleHandler.GroupSummary)
	api.Get("/sale-groups/:id/sales", sales, saleHandler.GroupSales)

	// Reportes
	reportHandler := NewReportHandler(deps.Valuation)
	reports := api.Group("/reports", adminOnly)
	reports.Get("/range", reportHandler.Range)
	reports.Get("/daily", reportHandler.Daily)
	reports.Get("/daily/pdf", reportHandler.DailyPDF)
}
