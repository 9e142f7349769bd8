package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/reporting"
)

// ReportHandler expone los reportes por rango de fechas (protegido).
type ReportHandler struct {
	uc *reporting.ValuationUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ValuationUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Range godoc
// @Summary      Ingresos y ganancia de ventas pagadas
// @Description  Las fechas son días calendario en la zona del negocio; ambos extremos incluidos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "YYYY-MM-DD"
// @Param        end    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.RangeSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/range [get]
func (h *ReportHandler) Range(c *fiber.Ctx) error {
	var q dto.DateRangeQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RangeSummary(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Daily godoc
// @Summary      Ventas, ganancia y fiados por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "YYYY-MM-DD"
// @Param        end    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.DailyBreakdownResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	var q dto.DateRangeQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.DailyBreakdown(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DailyPDF godoc
// @Summary      Desglose diario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start  query  string  true  "YYYY-MM-DD"
// @Param        end    query  string  true  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily/pdf [get]
func (h *ReportHandler) DailyPDF(c *fiber.Ctx) error {
	var q dto.DateRangeQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	doc, err := h.uc.DailyBreakdownPDF(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="ventas_%s_%s.pdf"`, q.Start, q.End))
	return c.Send(doc)
}
