package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/reporting"
)

// MovementHandler maneja el libro de movimientos y sus grupos (protegido).
type MovementHandler struct {
	uc        *appinventory.MovementUseCase
	valuation *reporting.ValuationUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *appinventory.MovementUseCase, valuation *reporting.ValuationUseCase) *MovementHandler {
	return &MovementHandler{uc: uc, valuation: valuation}
}

// Bulk godoc
// @Summary      Registrar movimientos en lote
// @Description  Todas las líneas se guardan en una transacción; si una falla no se guarda ninguna.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkMovementsRequest  true  "Movimientos"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/bulk [post]
func (h *MovementHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkMovementsRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RecordMovements(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateGroup godoc
// @Summary      Crear grupo de movimientos
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGroupRequest  true  "Bodega y nota"
// @Success      201   {object}  dto.GroupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movement-groups [post]
func (h *MovementHandler) CreateGroup(c *fiber.Ctx) error {
	var in dto.CreateGroupRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateMovementGroup(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GroupSummary godoc
// @Summary      Totales de un grupo de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del grupo"
// @Success      200  {object}  dto.MovementGroupSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movement-groups/{id}/summary [get]
func (h *MovementHandler) GroupSummary(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.valuation.MovementGroupSummary(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GroupMovements godoc
// @Summary      Movimientos de un grupo
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del grupo"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movement-groups/{id}/movements [get]
func (h *MovementHandler) GroupMovements(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.valuation.MovementGroupMovements(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByWarehouse godoc
// @Summary      Grupos de movimientos de una bodega con sus totales
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path  int  true  "ID de la bodega"
// @Success      200  {array}   dto.MovementGroupSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movement-groups/warehouse/{warehouse_id} [get]
func (h *MovementHandler) ByWarehouse(c *fiber.Ctx) error {
	id, err := paramID(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.valuation.MovementGroupsByWarehouse(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
