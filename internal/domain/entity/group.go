package entity

import "time"

// MovementGroup agrupa movimientos creados juntos (por ejemplo, una entrada de mercadería).
type MovementGroup struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	WarehouseID int64     `db:"warehouse_id"`
	Note        *string   `db:"note"`
	CreatedAt   time.Time `db:"created_at"`
}

// SaleGroup agrupa ventas (por ejemplo, un cierre de caja).
type SaleGroup struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	WarehouseID int64     `db:"warehouse_id"`
	Note        *string   `db:"note"`
	CreatedAt   time.Time `db:"created_at"`
}
