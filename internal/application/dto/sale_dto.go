package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DisposalLine una venta de POST /api/sales/bulk. Cada línea genera la venta y su salida de inventario.
type DisposalLine struct {
	ItemID      int64           `json:"item_id" validate:"required,gt=0"`
	WarehouseID int64           `json:"warehouse_id" validate:"required,gt=0"`
	Quantity    int64           `json:"quantity" validate:"required,gt=0"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Paid        bool            `json:"paid"`
	Note        *string         `json:"note,omitempty" validate:"omitempty,max=500"`
	SoldAt      *time.Time      `json:"sold_at,omitempty"` // vacío = ahora (UTC)
}

// BulkSalesRequest body para POST /api/sales/bulk.
type BulkSalesRequest struct {
	SaleGroupID int64          `json:"sale_group_id" validate:"required,gt=0"`
	Sales       []DisposalLine `json:"sales" validate:"required,min=1,dive"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          int64           `json:"id"`
	ItemID      int64           `json:"item_id"`
	ItemName    string          `json:"item_name,omitempty"`
	WarehouseID int64           `json:"warehouse_id"`
	UserID      int64           `json:"user_id"`
	Quantity    int64           `json:"quantity"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Total       decimal.Decimal `json:"total"`
	Paid        bool            `json:"paid"`
	Note        *string         `json:"note,omitempty"`
	SoldAt      time.Time       `json:"sold_at"`
	CreatedAt   time.Time       `json:"created_at"`
	SaleGroupID int64           `json:"sale_group_id"`
	MovementID  int64           `json:"movement_id,omitempty"`
}

// SaleGroupSummaryResponse totales de un grupo de ventas.
type SaleGroupSummaryResponse struct {
	Group          GroupResponse   `json:"group"`
	TotalItems     int64           `json:"total_items"`
	TotalSalePrice decimal.Decimal `json:"total_sale_price"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
}
