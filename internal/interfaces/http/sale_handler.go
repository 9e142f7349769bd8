package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/reporting"
)

// SaleHandler maneja ventas y grupos de ventas (protegido).
type SaleHandler struct {
	uc        *appinventory.DisposalUseCase
	valuation *reporting.ValuationUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *appinventory.DisposalUseCase, valuation *reporting.ValuationUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, valuation: valuation}
}

// Bulk godoc
// @Summary      Registrar ventas en lote
// @Description  Cada venta genera su salida de inventario en la misma transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkSalesRequest  true  "Ventas"
// @Success      201   {array}   dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/bulk [post]
func (h *SaleHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkSalesRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RecordDisposals(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkPaid godoc
// @Summary      Marcar venta como pagada
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/paid [patch]
func (h *SaleHandler) MarkPaid(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.MarkSalePaid(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateGroup godoc
// @Summary      Crear grupo de ventas
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGroupRequest  true  "Bodega y nota"
// @Success      201   {object}  dto.GroupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sale-groups [post]
func (h *SaleHandler) CreateGroup(c *fiber.Ctx) error {
	var in dto.CreateGroupRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateSaleGroup(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GroupSummary godoc
// @Summary      Totales y deuda de un grupo de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del grupo"
// @Success      200  {object}  dto.SaleGroupSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sale-groups/{id}/summary [get]
func (h *SaleHandler) GroupSummary(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.valuation.SaleGroupSummary(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Debtors godoc
// @Summary      Grupos de ventas con deuda pendiente
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleGroupSummaryResponse
// @Router       /api/sale-groups/debtors [get]
func (h *SaleHandler) Debtors(c *fiber.Ctx) error {
	out, err := h.valuation.DebtorSaleGroups(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GroupSales godoc
// @Summary      Ventas de un grupo
// @Description  Incluye el nombre del artículo de cada venta.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del grupo"
// @Success      200  {array}   dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sale-groups/{id}/sales [get]
func (h *SaleHandler) GroupSales(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.valuation.SaleGroupSales(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByWarehouse godoc
// @Summary      Grupos de ventas de una bodega con sus totales
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path  int  true  "ID de la bodega"
// @Success      200  {array}   dto.SaleGroupSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sale-groups/warehouse/{warehouse_id} [get]
func (h *SaleHandler) ByWarehouse(c *fiber.Ctx) error {
	id, err := paramID(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.valuation.SaleGroupsByWarehouse(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
