package reporting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Listados por grupo y por bodega
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleGroupSales_ConNombreDeArticulo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.inbound(t, 10, t0, "1.00", "2.00")

	g := e.saleGroup(t)
	first := e.sell(t, g, 2, "2.00", true, t0)
	second := e.sell(t, g, 1, "2.50", false, t0)
	e.sell(t, e.saleGroup(t), 1, "2.00", true, t0)

	sales, err := e.uc.SaleGroupSales(ctx, g)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, []int64{first, second}, []int64{sales[0].ID, sales[1].ID})
	for _, s := range sales {
		assert.Equal(t, "Arroz 1lb", s.ItemName)
		assert.Equal(t, g, s.SaleGroupID)
	}
	assert.Equal(t, "2.50", sales[1].Total.StringFixed(2))

	_, err = e.uc.SaleGroupSales(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementGroupMovements_ConNombreDeArticulo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	g, err := e.movements.CreateMovementGroup(ctx, 1, dto.CreateGroupRequest{WarehouseID: e.wh})
	require.NoError(t, err)
	wh := e.wh
	_, err = e.movements.RecordMovements(ctx, 1, dto.BulkMovementsRequest{GroupID: &g.ID, Movements: []dto.MovementLine{
		{ItemID: e.item, Type: "inbound", Quantity: 4, TargetWarehouseID: &wh, PurchasePrice: ptr(dec("1.00"))},
		{ItemID: e.item, Type: "outbound", Quantity: 1, SourceWarehouseID: &wh},
	}})
	require.NoError(t, err)
	e.inbound(t, 5, t0, "1.00", "2.00") // fuera del grupo

	movs, err := e.uc.MovementGroupMovements(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, string(entity.MovementInbound), movs[0].Type)
	assert.Equal(t, string(entity.MovementOutbound), movs[1].Type)
	assert.Equal(t, "Arroz 1lb", movs[0].ItemName)
	assert.Equal(t, g.ID, *movs[1].GroupID)

	_, err = e.uc.MovementGroupMovements(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGroupsByWarehouse(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	otra := &entity.Warehouse{Name: "Sucursal"}
	require.NoError(t, e.db.Store().Warehouses.Create(ctx, otra))
	e.inbound(t, 10, t0, "1.00", "2.00")

	vacio, err := e.movements.CreateMovementGroup(ctx, 1, dto.CreateGroupRequest{WarehouseID: e.wh})
	require.NoError(t, err)
	lleno, err := e.movements.CreateMovementGroup(ctx, 1, dto.CreateGroupRequest{WarehouseID: e.wh})
	require.NoError(t, err)
	_, err = e.movements.CreateMovementGroup(ctx, 1, dto.CreateGroupRequest{WarehouseID: otra.ID})
	require.NoError(t, err)
	wh := e.wh
	_, err = e.movements.RecordMovements(ctx, 1, dto.BulkMovementsRequest{GroupID: &lleno.ID, Movements: []dto.MovementLine{
		{ItemID: e.item, Type: "inbound", Quantity: 3, TargetWarehouseID: &wh, PurchasePrice: ptr(dec("1.50"))},
	}})
	require.NoError(t, err)

	movGroups, err := e.uc.MovementGroupsByWarehouse(ctx, e.wh)
	require.NoError(t, err)
	require.Len(t, movGroups, 2)
	assert.Equal(t, vacio.ID, movGroups[0].Group.ID)
	assert.Zero(t, movGroups[0].TotalItems, "grupo sin movimientos se lista con totales en cero")
	assert.Equal(t, int64(3), movGroups[1].TotalItems)
	assert.Equal(t, "4.50", movGroups[1].TotalPurchasePrice.StringFixed(2))

	g := e.saleGroup(t)
	e.sell(t, g, 2, "2.00", false, t0)
	saleGroups, err := e.uc.SaleGroupsByWarehouse(ctx, e.wh)
	require.NoError(t, err)
	require.Len(t, saleGroups, 1)
	assert.Equal(t, "4.00", saleGroups[0].TotalDebt.StringFixed(2))

	saleGroups, err = e.uc.SaleGroupsByWarehouse(ctx, otra.ID)
	require.NoError(t, err)
	assert.Empty(t, saleGroups)

	_, err = e.uc.MovementGroupsByWarehouse(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.uc.SaleGroupsByWarehouse(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseInventory_IncluyeSaldoCero(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.inbound(t, 2, t0, "1.00", "2.00")
	g := e.saleGroup(t)
	e.sell(t, g, 2, "2.00", true, t0)
	e.rebuild(t)

	rows, err := e.uc.WarehouseInventory(ctx, e.wh)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Arroz 1lb", rows[0].ItemName)
	assert.Zero(t, rows[0].Quantity)

	grouped, err := e.uc.GroupedSummary(ctx, &e.wh)
	require.NoError(t, err)
	assert.Empty(t, grouped, "el resumen agrupado sí omite saldos en cero")

	_, err = e.uc.WarehouseInventory(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
