package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// GroupRepository puerto para grupos de movimientos y de ventas. Get* devuelven (nil, nil) si no existe.
type GroupRepository interface {
	CreateMovementGroup(ctx context.Context, g *entity.MovementGroup) error
	GetMovementGroup(ctx context.Context, id int64) (*entity.MovementGroup, error)
	CreateSaleGroup(ctx context.Context, g *entity.SaleGroup) error
	GetSaleGroup(ctx context.Context, id int64) (*entity.SaleGroup, error)
	ListSaleGroups(ctx context.Context, ids []int64) ([]entity.SaleGroup, error)
	// ListMovementGroupsByWarehouse y ListSaleGroupsByWarehouse devuelven los grupos de una bodega ordenados por id.
	ListMovementGroupsByWarehouse(ctx context.Context, warehouseID int64) ([]entity.MovementGroup, error)
	ListSaleGroupsByWarehouse(ctx context.Context, warehouseID int64) ([]entity.SaleGroup, error)
}
