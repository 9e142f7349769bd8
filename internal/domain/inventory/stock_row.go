package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/domain"
)

// StockRow fila de una hoja de conteo de inventario. Row es la fila 1-based dentro de la hoja.
type StockRow struct {
	Row           int
	Name          string
	Quantity      int64
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
}

// Blank indica que la fila no tiene nombre y debe omitirse.
func (r *StockRow) Blank() bool {
	return strings.TrimSpace(r.Name) == ""
}

// Validate rechaza cantidades negativas y precios que no se pueden almacenar sin pérdida.
func (r *StockRow) Validate() error {
	if r.Quantity < 0 {
		return domain.InvalidRow(r.Row, "Cantidad", "no puede ser negativa")
	}
	if msg := PriceIssue(r.PurchasePrice); msg != "" {
		return domain.InvalidRow(r.Row, "Precio de compra", msg)
	}
	if msg := PriceIssue(r.SalePrice); msg != "" {
		return domain.InvalidRow(r.Row, "Precio de venta", msg)
	}
	return nil
}
