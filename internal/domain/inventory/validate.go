// Package inventory contiene la lógica pura del motor de inventario: proyección del libro de
// movimientos, índice de costos por artículo y agregados de valorización. No accede a la BD.
package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// ValidateMovement verifica las invariantes de un movimiento antes de persistirlo.
func ValidateMovement(m *entity.Movement) error {
	if m.ItemID <= 0 {
		return domain.Invalid("item_id", "requerido")
	}
	if m.Quantity <= 0 {
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if m.SourceWarehouseID == nil && m.TargetWarehouseID == nil {
		return domain.Invalid("warehouse", "se requiere bodega origen o destino")
	}
	if !m.Type.Valid() {
		return domain.Invalid("type", "tipo de movimiento desconocido: "+string(m.Type))
	}
	switch m.Type {
	case entity.MovementInbound:
		if m.TargetWarehouseID == nil || m.SourceWarehouseID != nil {
			return domain.Invalid("type", "una entrada lleva solo bodega destino")
		}
	case entity.MovementOutbound:
		if m.SourceWarehouseID == nil || m.TargetWarehouseID != nil {
			return domain.Invalid("type", "una salida lleva solo bodega origen")
		}
	case entity.MovementTransfer:
		if m.SourceWarehouseID == nil || m.TargetWarehouseID == nil {
			return domain.Invalid("type", "un traslado lleva bodega origen y destino")
		}
		if *m.SourceWarehouseID == *m.TargetWarehouseID {
			return domain.Invalid("type", "origen y destino deben ser distintos")
		}
	}
	if m.PurchasePrice != nil {
		if msg := PriceIssue(*m.PurchasePrice); msg != "" {
			return domain.Invalid("purchase_price", msg)
		}
	}
	if m.SalePrice != nil {
		if msg := PriceIssue(*m.SalePrice); msg != "" {
			return domain.Invalid("sale_price", msg)
		}
	}
	return nil
}

// ValidateSale verifica las invariantes de una venta.
func ValidateSale(s *entity.Sale) error {
	if s.ItemID <= 0 {
		return domain.Invalid("item_id", "requerido")
	}
	if s.WarehouseID <= 0 {
		return domain.Invalid("warehouse_id", "requerido")
	}
	if s.Quantity <= 0 {
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if msg := PriceIssue(s.SalePrice); msg != "" {
		return domain.Invalid("sale_price", msg)
	}
	return nil
}

// Los precios se guardan como NUMERIC(14, 4).
const (
	PriceScale     = 4
	priceIntDigits = 10
)

var priceLimit = decimal.New(1, priceIntDigits)

// PriceIssue describe por qué un precio no es almacenable sin pérdida; "" si es válido.
func PriceIssue(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return "no puede ser negativo"
	case !d.Equal(d.Truncate(PriceScale)):
		return fmt.Sprintf("admite como máximo %d decimales", PriceScale)
	case d.GreaterThanOrEqual(priceLimit):
		return "fuera de rango"
	}
	return ""
}
