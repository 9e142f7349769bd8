package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySnapshot es la fila materializada por (artículo, bodega). Se reconstruye desde
// el libro de movimientos; no es autoritativa y puede estar desactualizada.
type InventorySnapshot struct {
	ID            int64           `db:"id"`
	ItemID        int64           `db:"item_id"`
	WarehouseID   int64           `db:"warehouse_id"`
	Quantity      int64           `db:"quantity"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	SalePrice     decimal.Decimal `db:"sale_price"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// SnapshotKey identifica una fila del inventario materializado.
type SnapshotKey struct {
	ItemID      int64
	WarehouseID int64
}

// Key devuelve la clave (artículo, bodega) de la fila.
func (s *InventorySnapshot) Key() SnapshotKey {
	return SnapshotKey{ItemID: s.ItemID, WarehouseID: s.WarehouseID}
}
