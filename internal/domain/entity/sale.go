package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registra una venta concluida. SalePrice es el precio unitario cobrado.
type Sale struct {
	ID          int64           `db:"id"`
	ItemID      int64           `db:"item_id"`
	WarehouseID int64           `db:"warehouse_id"`
	UserID      int64           `db:"user_id"`
	Quantity    int64           `db:"quantity"`
	SalePrice   decimal.Decimal `db:"sale_price"`
	Paid        bool            `db:"paid"`
	Note        *string         `db:"note"`
	SoldAt      time.Time       `db:"sold_at"`
	CreatedAt   time.Time       `db:"created_at"`
	SaleGroupID int64           `db:"sale_group_id"`
}

// Total devuelve quantity * sale_price sin redondear.
func (s *Sale) Total() decimal.Decimal {
	return s.SalePrice.Mul(decimal.NewFromInt(s.Quantity))
}
