package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del libro de inventario.
type MovementType string

// Tipos de movimiento.
const (
	MovementInbound  MovementType = "inbound"  // entrada: solo bodega destino
	MovementOutbound MovementType = "outbound" // salida: solo bodega origen
	MovementTransfer MovementType = "transfer" // traslado: origen y destino
)

// Valid indica si el tipo es uno de los conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementInbound, MovementOutbound, MovementTransfer:
		return true
	}
	return false
}

// Movement es una entrada del libro de movimientos. Nunca se modifica después de creada.
type Movement struct {
	ID                int64            `db:"id"`
	ItemID            int64            `db:"item_id"`
	SourceWarehouseID *int64           `db:"source_warehouse_id"`
	TargetWarehouseID *int64           `db:"target_warehouse_id"`
	Quantity          int64            `db:"quantity"`
	Type              MovementType     `db:"type"`
	UserID            *int64           `db:"user_id"`
	Timestamp         time.Time        `db:"timestamp"`
	PurchasePrice     *decimal.Decimal `db:"purchase_price"`
	SalePrice         *decimal.Decimal `db:"sale_price"`
	GroupID           *int64           `db:"item_movement_group_id"`
}

// After ordena movimientos por (timestamp, id): true si m es posterior a o.
func (m *Movement) After(o *Movement) bool {
	if !m.Timestamp.Equal(o.Timestamp) {
		return m.Timestamp.After(o.Timestamp)
	}
	return m.ID > o.ID
}
