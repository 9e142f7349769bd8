package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

func newSaleGroup(t *testing.T, f *fixture, uc *appinventory.DisposalUseCase) int64 {
	t.Helper()
	g, err := uc.CreateSaleGroup(context.Background(), 1, dto.CreateGroupRequest{WarehouseID: f.warehouses[0]})
	require.NoError(t, err)
	return g.ID
}

func TestRecordDisposals_VentaYSalidaJuntas(t *testing.T) {
	f := newFixture(t)
	uc := appinventory.NewDisposalUseCase(f.db, logger.Nop())
	groupID := newSaleGroup(t, f, uc)

	out, err := uc.RecordDisposals(context.Background(), 3, dto.BulkSalesRequest{
		SaleGroupID: groupID,
		Sales: []dto.DisposalLine{
			{ItemID: f.items[0], WarehouseID: f.warehouses[0], Quantity: 3, SalePrice: dec("5.00"), Paid: true, SoldAt: &t0},
			{ItemID: f.items[1], WarehouseID: f.warehouses[0], Quantity: 2, SalePrice: dec("1.125"), Note: ptr("fiado")},
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "15.00", out[0].Total.StringFixed(2))
	assert.Equal(t, "2.25", out[1].Total.StringFixed(2))

	movs := f.movements(t)
	require.Len(t, movs, 2, "cada venta genera su salida")
	m := movs[0]
	assert.Equal(t, out[0].MovementID, m.ID)
	assert.Equal(t, entity.MovementOutbound, m.Type)
	assert.Equal(t, f.warehouses[0], *m.SourceWarehouseID)
	assert.Nil(t, m.TargetWarehouseID)
	assert.Equal(t, int64(3), m.Quantity)
	assert.Equal(t, t0, m.Timestamp, "la salida lleva el sold_at de la venta")
	assert.True(t, m.SalePrice.Equal(dec("5.00")))
	assert.Nil(t, m.PurchasePrice)
}

func TestRecordDisposals_Atomicidad(t *testing.T) {
	f := newFixture(t)
	uc := appinventory.NewDisposalUseCase(f.db, logger.Nop())
	groupID := newSaleGroup(t, f, uc)

	f.db.FailWrites(func(op string) error {
		if op == "insert movement" {
			return errors.New("disco lleno")
		}
		return nil
	})

	_, err := uc.RecordDisposals(context.Background(), 1, dto.BulkSalesRequest{
		SaleGroupID: groupID,
		Sales: []dto.DisposalLine{
			{ItemID: f.items[0], WarehouseID: f.warehouses[0], Quantity: 1, SalePrice: dec("2.00")},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	f.db.FailWrites(nil)
	unpaid, err := f.db.Store().Sales.ListUnpaid(context.Background())
	require.NoError(t, err)
	assert.Empty(t, unpaid, "la venta no queda sin su salida")
	assert.Empty(t, f.movements(t))
}

func TestRecordDisposals_Validaciones(t *testing.T) {
	f := newFixture(t)
	uc := appinventory.NewDisposalUseCase(f.db, logger.Nop())
	groupID := newSaleGroup(t, f, uc)
	ctx := context.Background()

	_, err := uc.RecordDisposals(ctx, 1, dto.BulkSalesRequest{SaleGroupID: 77, Sales: []dto.DisposalLine{
		{ItemID: f.items[0], WarehouseID: f.warehouses[0], Quantity: 1, SalePrice: dec("1")},
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "grupo de ventas inexistente")

	_, err = uc.RecordDisposals(ctx, 1, dto.BulkSalesRequest{SaleGroupID: groupID, Sales: []dto.DisposalLine{
		{ItemID: f.items[0], WarehouseID: f.warehouses[0], Quantity: 1, SalePrice: dec("-1")},
	}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.RecordDisposals(ctx, 1, dto.BulkSalesRequest{SaleGroupID: groupID, Sales: []dto.DisposalLine{
		{ItemID: f.items[0], WarehouseID: f.warehouses[0], Quantity: 1, SalePrice: dec("1.00005")},
	}})
	assert.ErrorIs(t, err, domain.ErrValidation, "más decimales de los que admite la columna")

	_, err = uc.RecordDisposals(ctx, 1, dto.BulkSalesRequest{SaleGroupID: groupID, Sales: []dto.DisposalLine{
		{ItemID: 999, WarehouseID: f.warehouses[0], Quantity: 1, SalePrice: dec("1")},
	}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.movements(t))
}

func TestMarkSalePaid(t *testing.T) {
	f := newFixture(t)
	uc := appinventory.NewDisposalUseCase(f.db, logger.Nop())
	groupID := newSaleGroup(t, f, uc)
	ctx := context.Background()

	out, err := uc.RecordDisposals(ctx, 1, dto.BulkSalesRequest{SaleGroupID: groupID, Sales: []dto.DisposalLine{
		{ItemID: f.items[0], WarehouseID: f.warehouses[0], Quantity: 2, SalePrice: dec("4.00")},
	}})
	require.NoError(t, err)
	require.False(t, out[0].Paid)

	paid, err := uc.MarkSalePaid(ctx, out[0].ID)
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	assert.Equal(t, "8.00", paid.Total.StringFixed(2))

	_, err = uc.MarkSalePaid(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
