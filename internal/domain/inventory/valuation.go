package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

const moneyPlaces = 2

// Summary valorización actual del inventario y deuda pendiente.
type Summary struct {
	TotalQuantity   int64
	TotalInvestment decimal.Decimal
	TotalDebt       decimal.Decimal
}

// CurrentSummary suma cantidad e inversión (cantidad * precio de compra) sobre las filas
// materializadas y la deuda (cantidad * precio de venta) sobre las ventas no pagadas.
func CurrentSummary(snaps []entity.InventorySnapshot, sales []entity.Sale) Summary {
	var qty int64
	investment := decimal.Zero
	for i := range snaps {
		qty += snaps[i].Quantity
		investment = investment.Add(snaps[i].PurchasePrice.Mul(decimal.NewFromInt(snaps[i].Quantity)))
	}
	debt := decimal.Zero
	for i := range sales {
		if !sales[i].Paid {
			debt = debt.Add(sales[i].Total())
		}
	}
	return Summary{
		TotalQuantity:   qty,
		TotalInvestment: investment.Round(moneyPlaces),
		TotalDebt:       debt.Round(moneyPlaces),
	}
}

// GroupedRow agregado por (artículo, bodega) del inventario materializado.
type GroupedRow struct {
	ItemID            int64
	WarehouseID       int64
	TotalQuantity     int64
	TotalInvestment   decimal.Decimal
	LastSalePrice     decimal.Decimal
	LastPurchasePrice decimal.Decimal
}

// GroupSnapshots agrega las filas por (artículo, bodega) tomando los precios de la fila
// actualizada más recientemente (empate: id mayor). Omite grupos con cantidad total cero.
func GroupSnapshots(snaps []entity.InventorySnapshot) []GroupedRow {
	type acc struct {
		row    GroupedRow
		latest *entity.InventorySnapshot
	}
	groups := make(map[entity.SnapshotKey]*acc)
	for i := range snaps {
		s := &snaps[i]
		g, ok := groups[s.Key()]
		if !ok {
			g = &acc{row: GroupedRow{ItemID: s.ItemID, WarehouseID: s.WarehouseID, TotalInvestment: decimal.Zero}}
			groups[s.Key()] = g
		}
		g.row.TotalQuantity += s.Quantity
		g.row.TotalInvestment = g.row.TotalInvestment.Add(s.PurchasePrice.Mul(decimal.NewFromInt(s.Quantity)))
		if g.latest == nil || s.UpdatedAt.After(g.latest.UpdatedAt) ||
			(s.UpdatedAt.Equal(g.latest.UpdatedAt) && s.ID > g.latest.ID) {
			g.latest = s
		}
	}

	out := make([]GroupedRow, 0, len(groups))
	for _, g := range groups {
		if g.row.TotalQuantity == 0 {
			continue
		}
		g.row.TotalInvestment = g.row.TotalInvestment.Round(moneyPlaces)
		g.row.LastSalePrice = g.latest.SalePrice
		g.row.LastPurchasePrice = g.latest.PurchasePrice
		out = append(out, g.row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemID != out[j].ItemID {
			return out[i].ItemID < out[j].ItemID
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out
}

// RangeSummary ingresos y ganancia de las ventas pagadas de un período.
type RangeSummary struct {
	TotalPaid   decimal.Decimal
	TotalProfit decimal.Decimal
	// UncostedSaleIDs ventas pagadas sin entrada previa con precio de compra; aportan ganancia cero.
	UncostedSaleIDs []int64
}

// SummarizeRange suma quantity*sale_price de las ventas pagadas dentro de p, y la ganancia
// quantity*(sale_price - costo) usando el costo vigente al momento de cada venta.
func SummarizeRange(sales []entity.Sale, idx *PriceIndex, p Period) RangeSummary {
	paid := decimal.Zero
	profit := decimal.Zero
	var uncosted []int64
	for i := range sales {
		s := &sales[i]
		if !s.Paid || !p.Contains(s.SoldAt) {
			continue
		}
		paid = paid.Add(s.Total())
		gain, ok := saleProfit(s, idx)
		if !ok {
			uncosted = append(uncosted, s.ID)
			continue
		}
		profit = profit.Add(gain)
	}
	return RangeSummary{
		TotalPaid:       paid.Round(moneyPlaces),
		TotalProfit:     profit.Round(moneyPlaces),
		UncostedSaleIDs: uncosted,
	}
}

// DailyBucket totales de un día calendario local. Fiados = ventas no pagadas.
type DailyBucket struct {
	Date   string
	Sales  decimal.Decimal
	Profit decimal.Decimal
	Fiados decimal.Decimal
}

// Breakdown resultado del desglose diario.
type Breakdown struct {
	Days            []DailyBucket
	UncostedSaleIDs []int64
}

// DailyBreakdown agrupa las ventas de p por día calendario en loc. Cada día acumula ventas
// (todas), ganancia (solo pagadas, mismo criterio de costo que SummarizeRange) y fiados
// (no pagadas). Devuelve un día por fecha con al menos una venta, en orden ascendente.
func DailyBreakdown(sales []entity.Sale, idx *PriceIndex, p Period, loc *time.Location) Breakdown {
	type acc struct{ sales, profit, fiados decimal.Decimal }
	days := make(map[string]*acc)
	var uncosted []int64
	for i := range sales {
		s := &sales[i]
		if !p.Contains(s.SoldAt) {
			continue
		}
		key := LocalDate(s.SoldAt, loc)
		d, ok := days[key]
		if !ok {
			d = &acc{sales: decimal.Zero, profit: decimal.Zero, fiados: decimal.Zero}
			days[key] = d
		}
		total := s.Total()
		d.sales = d.sales.Add(total)
		if !s.Paid {
			d.fiados = d.fiados.Add(total)
			continue
		}
		gain, ok := saleProfit(s, idx)
		if !ok {
			uncosted = append(uncosted, s.ID)
			continue
		}
		d.profit = d.profit.Add(gain)
	}

	out := make([]DailyBucket, 0, len(days))
	for date, d := range days {
		out = append(out, DailyBucket{
			Date:   date,
			Sales:  d.sales.Round(moneyPlaces),
			Profit: d.profit.Round(moneyPlaces),
			Fiados: d.fiados.Round(moneyPlaces),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return Breakdown{Days: out, UncostedSaleIDs: uncosted}
}

func saleProfit(s *entity.Sale, idx *PriceIndex) (decimal.Decimal, bool) {
	cost, ok := idx.CostAt(s.ItemID, s.SoldAt)
	if !ok {
		return decimal.Zero, false
	}
	return s.SalePrice.Sub(cost).Mul(decimal.NewFromInt(s.Quantity)), true
}
