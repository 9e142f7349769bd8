package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	db         *memory.DB
	warehouses []int64
	items      []int64
}

// newFixture crea dos bodegas y dos artículos.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{db: memory.New()}
	s := f.db.Store()
	for _, name := range []string{"Central", "Mercado"} {
		w := &entity.Warehouse{Name: name}
		require.NoError(t, s.Warehouses.Create(ctx, w))
		f.warehouses = append(f.warehouses, w.ID)
	}
	for _, code := range []string{"ARROZ", "FRIJOL"} {
		it := &entity.Item{Code: code, Name: code}
		require.NoError(t, s.Items.Create(ctx, it))
		f.items = append(f.items, it.ID)
	}
	return f
}

func (f *fixture) snapshots(t *testing.T) []entity.InventorySnapshot {
	t.Helper()
	rows, err := f.db.Store().Snapshots.List(context.Background(), nil)
	require.NoError(t, err)
	return rows
}

func (f *fixture) movements(t *testing.T) []entity.Movement {
	t.Helper()
	movs, err := f.db.Store().Movements.ListAll(context.Background())
	require.NoError(t, err)
	return movs
}
