package reporting

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// SaleGroupSales lista las ventas de un grupo con el nombre de cada artículo, ordenadas por id.
func (uc *ValuationUseCase) SaleGroupSales(ctx context.Context, groupID int64) ([]dto.SaleResponse, error) {
	var sales []entity.Sale
	var names map[int64]string
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		group, err := s.Groups.GetSaleGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return domain.NotFound("grupo de ventas", groupID)
		}
		if sales, err = s.Sales.ListByGroups(ctx, []int64{groupID}); err != nil {
			return err
		}
		names, err = itemNames(ctx, s, uniqueIDs(sales, func(s *entity.Sale) int64 { return s.ItemID }))
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.SaleResponse, len(sales))
	for i := range sales {
		out[i] = appinventory.ToSaleResponse(&sales[i], 0)
		out[i].ItemName = names[sales[i].ItemID]
	}
	return out, nil
}

// MovementGroupMovements lista los movimientos de un grupo con el nombre de cada artículo.
func (uc *ValuationUseCase) MovementGroupMovements(ctx context.Context, groupID int64) ([]dto.MovementResponse, error) {
	var movs []entity.Movement
	var names map[int64]string
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		group, err := s.Groups.GetMovementGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return domain.NotFound("grupo de movimientos", groupID)
		}
		if movs, err = s.Movements.ListByGroups(ctx, []int64{groupID}); err != nil {
			return err
		}
		names, err = itemNames(ctx, s, uniqueIDs(movs, func(m *entity.Movement) int64 { return m.ItemID }))
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementResponse, len(movs))
	for i := range movs {
		out[i] = appinventory.ToMovementResponse(&movs[i])
		out[i].ItemName = names[movs[i].ItemID]
	}
	return out, nil
}

// MovementGroupsByWarehouse totales de cada grupo de movimientos de la bodega. Los grupos sin
// movimientos aparecen con totales en cero.
func (uc *ValuationUseCase) MovementGroupsByWarehouse(ctx context.Context, warehouseID int64) ([]dto.MovementGroupSummaryResponse, error) {
	var groups []entity.MovementGroup
	var movs []entity.Movement
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		if err := requireWarehouse(ctx, s, warehouseID); err != nil {
			return err
		}
		var err error
		if groups, err = s.Groups.ListMovementGroupsByWarehouse(ctx, warehouseID); err != nil {
			return err
		}
		movs, err = s.Movements.ListByGroups(ctx, uniqueIDs(groups, func(g *entity.MovementGroup) int64 { return g.ID }))
		return err
	})
	if err != nil {
		return nil, err
	}

	byGroup := make(map[int64][]entity.Movement, len(groups))
	for _, m := range movs {
		byGroup[*m.GroupID] = append(byGroup[*m.GroupID], m)
	}
	out := make([]dto.MovementGroupSummaryResponse, len(groups))
	for i := range groups {
		out[i] = summarizeMovementGroup(&groups[i], byGroup[groups[i].ID])
	}
	return out, nil
}

// SaleGroupsByWarehouse totales y deuda de cada grupo de ventas de la bodega.
func (uc *ValuationUseCase) SaleGroupsByWarehouse(ctx context.Context, warehouseID int64) ([]dto.SaleGroupSummaryResponse, error) {
	var groups []entity.SaleGroup
	var sales []entity.Sale
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		if err := requireWarehouse(ctx, s, warehouseID); err != nil {
			return err
		}
		var err error
		if groups, err = s.Groups.ListSaleGroupsByWarehouse(ctx, warehouseID); err != nil {
			return err
		}
		sales, err = s.Sales.ListByGroups(ctx, uniqueIDs(groups, func(g *entity.SaleGroup) int64 { return g.ID }))
		return err
	})
	if err != nil {
		return nil, err
	}

	byGroup := make(map[int64][]entity.Sale, len(groups))
	for _, sale := range sales {
		byGroup[sale.SaleGroupID] = append(byGroup[sale.SaleGroupID], sale)
	}
	out := make([]dto.SaleGroupSummaryResponse, len(groups))
	for i := range groups {
		out[i] = summarizeSaleGroup(&groups[i], byGroup[groups[i].ID])
	}
	return out, nil
}

// WarehouseInventory filas materializadas de una bodega tal como están guardadas, incluidas
// las de cantidad cero.
func (uc *ValuationUseCase) WarehouseInventory(ctx context.Context, warehouseID int64) ([]dto.SnapshotResponse, error) {
	var snaps []entity.InventorySnapshot
	var names map[int64]string
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		if err := requireWarehouse(ctx, s, warehouseID); err != nil {
			return err
		}
		var err error
		if snaps, err = s.Snapshots.List(ctx, &warehouseID); err != nil {
			return err
		}
		names, err = itemNames(ctx, s, uniqueIDs(snaps, func(s *entity.InventorySnapshot) int64 { return s.ItemID }))
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.SnapshotResponse, len(snaps))
	for i := range snaps {
		out[i] = appinventory.ToSnapshotResponse(&snaps[i], names[snaps[i].ItemID])
	}
	return out, nil
}

func requireWarehouse(ctx context.Context, s repository.Store, id int64) error {
	wh, err := s.Warehouses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.NotFound("bodega", id)
	}
	return nil
}

func itemNames(ctx context.Context, s repository.Store, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	items, err := s.Items.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		names[it.ID] = it.Name
	}
	return names, nil
}
