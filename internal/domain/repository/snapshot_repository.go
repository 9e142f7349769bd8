package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// SnapshotRepository puerto del inventario materializado por (artículo, bodega).
type SnapshotRepository interface {
	// AddStock suma row.Quantity a la fila de su clave (creándola si falta) y sobrescribe ambos
	// precios y updated_at en una sola sentencia. Completa row con el ID y la cantidad resultante.
	AddStock(ctx context.Context, row *entity.InventorySnapshot) error
	// Upsert inserta o sobrescribe las filas por clave y completa sus ID.
	Upsert(ctx context.Context, rows []entity.InventorySnapshot) error
	// List devuelve las filas, filtradas por bodega cuando warehouseID no es nil.
	List(ctx context.Context, warehouseID *int64) ([]entity.InventorySnapshot, error)
}
