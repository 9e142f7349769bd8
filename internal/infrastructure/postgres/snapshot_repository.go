package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

var snapshotColumns = []string{"id", "item_id", "warehouse_id", "quantity", "purchase_price", "sale_price", "updated_at"}

const upsertSnapshotSQL = `
	INSERT INTO inventory (item_id, warehouse_id, quantity, purchase_price, sale_price, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (item_id, warehouse_id)
	DO UPDATE SET quantity = EXCLUDED.quantity, purchase_price = EXCLUDED.purchase_price,
		sale_price = EXCLUDED.sale_price, updated_at = EXCLUDED.updated_at
	RETURNING id`

const addStockSQL = `
	INSERT INTO inventory (item_id, warehouse_id, quantity, purchase_price, sale_price, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (item_id, warehouse_id)
	DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity, purchase_price = EXCLUDED.purchase_price,
		sale_price = EXCLUDED.sale_price, updated_at = EXCLUDED.updated_at
	RETURNING id, quantity`

// SnapshotRepo inventario materializado (tabla inventory) sobre PostgreSQL.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// AddStock resuelve la suma dentro del ON CONFLICT, sin lectura previa de la fila.
func (r *SnapshotRepo) AddStock(ctx context.Context, row *entity.InventorySnapshot) error {
	err := r.q.QueryRow(ctx, addStockSQL,
		row.ItemID, row.WarehouseID, row.Quantity, row.PurchasePrice, row.SalePrice, row.UpdatedAt,
	).Scan(&row.ID, &row.Quantity)
	return wrapErr("add inventory stock", err)
}

// Upsert envía todas las filas en un único batch y completa sus ID.
func (r *SnapshotRepo) Upsert(ctx context.Context, rows []entity.InventorySnapshot) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i := range rows {
		s := &rows[i]
		batch.Queue(upsertSnapshotSQL, s.ItemID, s.WarehouseID, s.Quantity, s.PurchasePrice, s.SalePrice, s.UpdatedAt)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()

	for i := range rows {
		if err := br.QueryRow().Scan(&rows[i].ID); err != nil {
			return wrapErr(fmt.Sprintf("upsert inventory row %d/%d", i+1, len(rows)), err)
		}
	}
	return wrapErr("upsert inventory batch", br.Close())
}

// List devuelve las filas ordenadas por (item_id, warehouse_id).
func (r *SnapshotRepo) List(ctx context.Context, warehouseID *int64) ([]entity.InventorySnapshot, error) {
	qb := psql.Select(snapshotColumns...).From("inventory").OrderBy("item_id", "warehouse_id")
	if warehouseID != nil {
		qb = qb.Where(sq.Eq{"warehouse_id": *warehouseID})
	}
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, wrapErr("list inventory", err)
	}
	var rows []entity.InventorySnapshot
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, wrapErr("list inventory", err)
	}
	return rows, nil
}
