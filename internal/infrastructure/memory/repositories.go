package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

var errUniqueCode = errors.New("constraint items_code_key")

func (s *session) persist(op string, fn func(t *tables) error) error {
	if err := s.write(op, fn); err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return err
		}
		return domain.Persistence(op, err)
	}
	return nil
}

// ── artículos ────────────────────────────────────────────────────────────────

type itemRepo struct{ s *session }

func (r *itemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.s.persist("insert item", func(t *tables) error {
		for _, it := range t.items {
			if it.Code == item.Code {
				return errUniqueCode
			}
		}
		item.ID = t.next("items")
		if item.CreatedAt.IsZero() {
			item.CreatedAt = time.Now().UTC()
		}
		t.items[item.ID] = *item
		return nil
	})
}

func (r *itemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	var out *entity.Item
	r.s.read(func(t *tables) {
		if it, ok := t.items[id]; ok {
			out = &it
		}
	})
	return out, nil
}

func (r *itemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	var out *entity.Item
	r.s.read(func(t *tables) {
		for _, it := range t.items {
			if it.Code == code {
				it := it
				out = &it
				return
			}
		}
	})
	return out, nil
}

func (r *itemRepo) ListByIDs(_ context.Context, ids []int64) ([]entity.Item, error) {
	var out []entity.Item
	r.s.read(func(t *tables) {
		for _, id := range ids {
			if it, ok := t.items[id]; ok {
				out = append(out, it)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── bodegas ──────────────────────────────────────────────────────────────────

type warehouseRepo struct{ s *session }

func (r *warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.s.persist("insert warehouse", func(t *tables) error {
		w.ID = t.next("warehouses")
		if w.CreatedAt.IsZero() {
			w.CreatedAt = time.Now().UTC()
		}
		t.warehouses[w.ID] = *w
		return nil
	})
}

func (r *warehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.s.read(func(t *tables) {
		if w, ok := t.warehouses[id]; ok {
			out = &w
		}
	})
	return out, nil
}

// ── movimientos ──────────────────────────────────────────────────────────────

type movementRepo struct{ s *session }

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	return r.s.persist("insert movement", func(t *tables) error {
		m.ID = t.next("movements")
		t.movements = append(t.movements, *m)
		return nil
	})
}

func (r *movementRepo) filter(keep func(m *entity.Movement) bool) []entity.Movement {
	var out []entity.Movement
	r.s.read(func(t *tables) {
		for i := range t.movements {
			if keep(&t.movements[i]) {
				out = append(out, t.movements[i])
			}
		}
	})
	return out
}

func (r *movementRepo) ListAll(_ context.Context) ([]entity.Movement, error) {
	return r.filter(func(*entity.Movement) bool { return true }), nil
}

func (r *movementRepo) ListAfter(_ context.Context, afterID int64) ([]entity.Movement, error) {
	return r.filter(func(m *entity.Movement) bool { return m.ID > afterID }), nil
}

func (r *movementRepo) CountUpTo(_ context.Context, id int64) (int64, error) {
	return int64(len(r.filter(func(m *entity.Movement) bool { return m.ID <= id }))), nil
}

func (r *movementRepo) ListInbound(_ context.Context, itemIDs []int64, until time.Time) ([]entity.Movement, error) {
	want := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		want[id] = true
	}
	return r.filter(func(m *entity.Movement) bool {
		return m.Type == entity.MovementInbound && want[m.ItemID] && !m.Timestamp.After(until)
	}), nil
}

func (r *movementRepo) ListByGroups(_ context.Context, groupIDs []int64) ([]entity.Movement, error) {
	want := make(map[int64]bool, len(groupIDs))
	for _, id := range groupIDs {
		want[id] = true
	}
	return r.filter(func(m *entity.Movement) bool { return m.GroupID != nil && want[*m.GroupID] }), nil
}

// ── ventas ───────────────────────────────────────────────────────────────────

type saleRepo struct{ s *session }

func (r *saleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.s.persist("insert sale", func(t *tables) error {
		s.ID = t.next("sales")
		if s.CreatedAt.IsZero() {
			s.CreatedAt = time.Now().UTC()
		}
		t.sales[s.ID] = *s
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	r.s.read(func(t *tables) {
		if s, ok := t.sales[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *saleRepo) MarkPaid(_ context.Context, id int64) (bool, error) {
	found := false
	err := r.s.persist("mark sale paid", func(t *tables) error {
		s, ok := t.sales[id]
		if !ok {
			return nil
		}
		s.Paid = true
		t.sales[id] = s
		found = true
		return nil
	})
	return found, err
}

func (r *saleRepo) filter(keep func(s *entity.Sale) bool) []entity.Sale {
	var out []entity.Sale
	r.s.read(func(t *tables) {
		for _, s := range t.sales {
			if keep(&s) {
				out = append(out, s)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *saleRepo) ListUnpaid(_ context.Context) ([]entity.Sale, error) {
	return r.filter(func(s *entity.Sale) bool { return !s.Paid }), nil
}

func (r *saleRepo) ListSoldBetween(_ context.Context, from, to time.Time) ([]entity.Sale, error) {
	return r.filter(func(s *entity.Sale) bool { return !s.SoldAt.Before(from) && !s.SoldAt.After(to) }), nil
}

func (r *saleRepo) ListByGroups(_ context.Context, groupIDs []int64) ([]entity.Sale, error) {
	want := make(map[int64]bool, len(groupIDs))
	for _, id := range groupIDs {
		want[id] = true
	}
	return r.filter(func(s *entity.Sale) bool { return want[s.SaleGroupID] }), nil
}

// ── inventario materializado ─────────────────────────────────────────────────

type snapshotRepo struct{ s *session }

func (r *snapshotRepo) AddStock(_ context.Context, row *entity.InventorySnapshot) error {
	return r.s.persist("add inventory stock", func(t *tables) error {
		if prev, ok := t.snapshots[row.Key()]; ok {
			row.ID = prev.ID
			row.Quantity += prev.Quantity
		} else {
			row.ID = t.next("inventory")
		}
		t.snapshots[row.Key()] = *row
		return nil
	})
}

func (r *snapshotRepo) Upsert(_ context.Context, rows []entity.InventorySnapshot) error {
	if len(rows) == 0 {
		return nil
	}
	return r.s.persist("upsert inventory", func(t *tables) error {
		for i := range rows {
			row := &rows[i]
			if prev, ok := t.snapshots[row.Key()]; ok {
				row.ID = prev.ID
			} else {
				row.ID = t.next("inventory")
			}
			t.snapshots[row.Key()] = *row
		}
		return nil
	})
}

func (r *snapshotRepo) List(_ context.Context, warehouseID *int64) ([]entity.InventorySnapshot, error) {
	var out []entity.InventorySnapshot
	r.s.read(func(t *tables) {
		for _, row := range t.snapshots {
			if warehouseID == nil || row.WarehouseID == *warehouseID {
				out = append(out, row)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemID != out[j].ItemID {
			return out[i].ItemID < out[j].ItemID
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out, nil
}

// ── grupos ───────────────────────────────────────────────────────────────────

type groupRepo struct{ s *session }

func (r *groupRepo) CreateMovementGroup(_ context.Context, g *entity.MovementGroup) error {
	return r.s.persist("insert movement group", func(t *tables) error {
		g.ID = t.next("movement_groups")
		if g.CreatedAt.IsZero() {
			g.CreatedAt = time.Now().UTC()
		}
		t.movementGroups[g.ID] = *g
		return nil
	})
}

func (r *groupRepo) GetMovementGroup(_ context.Context, id int64) (*entity.MovementGroup, error) {
	var out *entity.MovementGroup
	r.s.read(func(t *tables) {
		if g, ok := t.movementGroups[id]; ok {
			out = &g
		}
	})
	return out, nil
}

func (r *groupRepo) CreateSaleGroup(_ context.Context, g *entity.SaleGroup) error {
	return r.s.persist("insert sale group", func(t *tables) error {
		g.ID = t.next("sale_groups")
		if g.CreatedAt.IsZero() {
			g.CreatedAt = time.Now().UTC()
		}
		t.saleGroups[g.ID] = *g
		return nil
	})
}

func (r *groupRepo) GetSaleGroup(_ context.Context, id int64) (*entity.SaleGroup, error) {
	var out *entity.SaleGroup
	r.s.read(func(t *tables) {
		if g, ok := t.saleGroups[id]; ok {
			out = &g
		}
	})
	return out, nil
}

func (r *groupRepo) ListSaleGroups(_ context.Context, ids []int64) ([]entity.SaleGroup, error) {
	var out []entity.SaleGroup
	r.s.read(func(t *tables) {
		for _, id := range ids {
			if g, ok := t.saleGroups[id]; ok {
				out = append(out, g)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *groupRepo) ListMovementGroupsByWarehouse(_ context.Context, warehouseID int64) ([]entity.MovementGroup, error) {
	var out []entity.MovementGroup
	r.s.read(func(t *tables) {
		for _, g := range t.movementGroups {
			if g.WarehouseID == warehouseID {
				out = append(out, g)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *groupRepo) ListSaleGroupsByWarehouse(_ context.Context, warehouseID int64) ([]entity.SaleGroup, error) {
	var out []entity.SaleGroup
	r.s.read(func(t *tables) {
		for _, g := range t.saleGroups {
			if g.WarehouseID == warehouseID {
				out = append(out, g)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
