package dto

import "github.com/shopspring/decimal"

// DateRangeQuery parámetros de los reportes por rango (días calendario en la zona del negocio).
type DateRangeQuery struct {
	Start string `query:"start" validate:"required,datetime=2006-01-02"`
	End   string `query:"end" validate:"required,datetime=2006-01-02"`
}

// CurrentSummaryResponse salida de GET /api/inventory/summary.
type CurrentSummaryResponse struct {
	TotalItems      int64           `json:"total_items"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	TotalDebt       decimal.Decimal `json:"total_debt"`
}

// GroupedSummaryRow fila de GET /api/inventory/grouped.
type GroupedSummaryRow struct {
	ItemID            int64           `json:"item_id"`
	ItemName          string          `json:"item_name"`
	WarehouseID       int64           `json:"warehouse_id"`
	TotalQuantity     int64           `json:"total_quantity"`
	TotalInvestment   decimal.Decimal `json:"total_investment"`
	LastSalePrice     decimal.Decimal `json:"last_sale_price"`
	LastPurchasePrice decimal.Decimal `json:"last_purchase_price"`
}

// RangeSummaryResponse salida de GET /api/reports/range.
type RangeSummaryResponse struct {
	Start       string          `json:"start"`
	End         string          `json:"end"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	// UncostedSales ventas pagadas sin costo base conocido; no aportan ganancia.
	UncostedSales []int64 `json:"uncosted_sales,omitempty"`
}

// DailyBucketResponse un día de GET /api/reports/daily.
type DailyBucketResponse struct {
	Date   string          `json:"date"`
	Sales  decimal.Decimal `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
	Fiados decimal.Decimal `json:"fiados"`
}

// DailyBreakdownResponse salida de GET /api/reports/daily.
type DailyBreakdownResponse struct {
	Start string                `json:"start"`
	End   string                `json:"end"`
	Days  []DailyBucketResponse `json:"days"`
}
