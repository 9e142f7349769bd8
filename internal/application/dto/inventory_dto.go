package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementLine una línea de POST /api/movements/bulk.
// inbound: solo target_warehouse_id; outbound: solo source_warehouse_id; transfer: ambos.
type MovementLine struct {
	ItemID            int64            `json:"item_id" validate:"required,gt=0"`
	Type              string           `json:"type" validate:"required,oneof=inbound outbound transfer"`
	Quantity          int64            `json:"quantity" validate:"required,gt=0"`
	SourceWarehouseID *int64           `json:"source_warehouse_id,omitempty" validate:"omitempty,gt=0"`
	TargetWarehouseID *int64           `json:"target_warehouse_id,omitempty" validate:"omitempty,gt=0"`
	PurchasePrice     *decimal.Decimal `json:"purchase_price,omitempty"`
	SalePrice         *decimal.Decimal `json:"sale_price,omitempty"`
	Timestamp         *time.Time       `json:"timestamp,omitempty"` // vacío = ahora (UTC)
}

// BulkMovementsRequest body para POST /api/movements/bulk. Todas las líneas se guardan en una transacción.
type BulkMovementsRequest struct {
	GroupID   *int64         `json:"item_movement_group_id,omitempty" validate:"omitempty,gt=0"`
	Movements []MovementLine `json:"movements" validate:"required,min=1,dive"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID                int64            `json:"id"`
	ItemID            int64            `json:"item_id"`
	ItemName          string           `json:"item_name,omitempty"`
	Type              string           `json:"type"`
	Quantity          int64            `json:"quantity"`
	SourceWarehouseID *int64           `json:"source_warehouse_id,omitempty"`
	TargetWarehouseID *int64           `json:"target_warehouse_id,omitempty"`
	PurchasePrice     *decimal.Decimal `json:"purchase_price,omitempty"`
	SalePrice         *decimal.Decimal `json:"sale_price,omitempty"`
	UserID            *int64           `json:"user_id,omitempty"`
	Timestamp         time.Time        `json:"timestamp"`
	GroupID           *int64           `json:"item_movement_group_id,omitempty"`
}

// CreateGroupRequest body para POST /api/movement-groups y /api/sale-groups.
type CreateGroupRequest struct {
	WarehouseID int64   `json:"warehouse_id" validate:"required,gt=0"`
	Note        *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// GroupResponse salida de un grupo de movimientos o de ventas.
type GroupResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	WarehouseID int64     `json:"warehouse_id"`
	Note        *string   `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementGroupSummaryResponse totales de un grupo de movimientos.
type MovementGroupSummaryResponse struct {
	Group              GroupResponse   `json:"group"`
	TotalItems         int64           `json:"total_items"`
	TotalPurchasePrice decimal.Decimal `json:"total_purchase_price"`
	TotalSalePrice     decimal.Decimal `json:"total_sale_price"`
}

// SnapshotResponse fila del inventario materializado.
type SnapshotResponse struct {
	ID            int64           `json:"id"`
	ItemID        int64           `json:"item_id"`
	ItemName      string          `json:"item_name,omitempty"`
	WarehouseID   int64           `json:"warehouse_id"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ImportResponse resultado de POST /api/inventory/import.
type ImportResponse struct {
	GroupID     int64              `json:"item_movement_group_id"`
	RowsRead    int                `json:"rows_read"`
	RowsSkipped int                `json:"rows_skipped"`
	Rows        []SnapshotResponse `json:"rows"`
}

// RebuildResponse resultado de POST /api/inventory/rebuild.
type RebuildResponse struct {
	Mode       string `json:"mode"` // full | incremental
	Movements  int    `json:"movements_applied"`
	Rows       int    `json:"rows_written"`
	DurationMS int64  `json:"duration_ms"`
}
