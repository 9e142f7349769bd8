package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/reporting"
	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
)

// SheetReader lee las filas de una hoja de conteo de inventario.
type SheetReader func(r io.Reader) ([]inventory.StockRow, error)

// InventoryHandler maneja la reconstrucción, los resúmenes y la importación del inventario (protegido).
type InventoryHandler struct {
	projection *appinventory.ProjectionUseCase
	importer   *appinventory.ImportUseCase
	valuation  *reporting.ValuationUseCase
	readSheet  SheetReader
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	projection *appinventory.ProjectionUseCase,
	importer *appinventory.ImportUseCase,
	valuation *reporting.ValuationUseCase,
	readSheet SheetReader,
) *InventoryHandler {
	return &InventoryHandler{projection: projection, importer: importer, valuation: valuation, readSheet: readSheet}
}

// Rebuild godoc
// @Summary      Reconstruir el inventario desde el libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RebuildResponse
// @Failure      409  {object}  dto.ErrorResponse  "otra reconstrucción en curso"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/rebuild [post]
func (h *InventoryHandler) Rebuild(c *fiber.Ctx) error {
	out, err := h.projection.Rebuild(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen actual: cantidad, inversión y deuda
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CurrentSummaryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.valuation.CurrentSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Grouped godoc
// @Summary      Inventario agrupado por artículo y bodega
// @Description  Omite los grupos con cantidad total cero. Con warehouse_id se limita a esa bodega.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path  int  false  "ID de la bodega"
// @Success      200  {array}   dto.GroupedSummaryRow
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/grouped/{warehouse_id} [get]
func (h *InventoryHandler) Grouped(c *fiber.Ctx) error {
	var warehouseID *int64
	if c.Params("warehouse_id") != "" {
		id, err := paramID(c, "warehouse_id")
		if err != nil {
			return writeError(c, err)
		}
		warehouseID = &id
	}
	out, err := h.valuation.GroupedSummary(c.UserContext(), warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar hoja de conteo (.xlsx)
// @Description  Columnas: Nombre, Cantidad, Precio de compra, Precio de venta. Toda la hoja se aplica en una transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData  file  true  "Hoja .xlsx"
// @Param        warehouse_id  formData  int   true  "Bodega destino"
// @Success      201  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/import [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	var form struct {
		WarehouseID int64 `form:"warehouse_id" validate:"required,gt=0"`
	}
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "INVALID_BODY", "formulario inválido")
	}
	if err := validateStruct(&form); err != nil {
		return writeError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "el campo file es requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo abrir el archivo")
	}
	defer f.Close()

	rows, err := h.readSheet(f)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.importer.ImportStockSheet(c.UserContext(), rows, form.WarehouseID, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ByWarehouse godoc
// @Summary      Inventario materializado de una bodega
// @Description  Filas tal como están guardadas, incluidas las de cantidad cero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path  int  true  "ID de la bodega"
// @Success      200  {array}   dto.SnapshotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/warehouse/{warehouse_id} [get]
func (h *InventoryHandler) ByWarehouse(c *fiber.Ctx) error {
	id, err := paramID(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.valuation.WarehouseInventory(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
