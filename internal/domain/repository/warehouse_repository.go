package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	// GetByID devuelve (nil, nil) si la bodega no existe.
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
}
