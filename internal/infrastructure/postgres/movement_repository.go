package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

var movementColumns = []string{
	"id", "item_id", "source_warehouse_id", "target_warehouse_id", "quantity", "type",
	"user_id", `"timestamp"`, "purchase_price", "sale_price", "item_movement_group_id",
}

// MovementRepo libro de movimientos sobre PostgreSQL (tabla item_movements). Solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create agrega el movimiento al libro y completa su ID.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO item_movements (item_id, source_warehouse_id, target_warehouse_id, quantity, type,
			user_id, "timestamp", purchase_price, sale_price, item_movement_group_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ItemID, m.SourceWarehouseID, m.TargetWarehouseID, m.Quantity, m.Type,
		m.UserID, m.Timestamp, m.PurchasePrice, m.SalePrice, m.GroupID,
	).Scan(&m.ID)
	return wrapErr("insert movement", err)
}

// ListAll devuelve el libro completo en orden de id.
func (r *MovementRepo) ListAll(ctx context.Context) ([]entity.Movement, error) {
	return r.list(ctx, "list movements", r.base())
}

// ListAfter devuelve los movimientos posteriores a afterID.
func (r *MovementRepo) ListAfter(ctx context.Context, afterID int64) ([]entity.Movement, error) {
	return r.list(ctx, "list movements after", r.base().Where(sq.Gt{"id": afterID}))
}

// CountUpTo cuenta los movimientos con id <= id.
func (r *MovementRepo) CountUpTo(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM item_movements WHERE id <= $1`, id).Scan(&n)
	if err != nil {
		return 0, wrapErr("count movements", err)
	}
	return n, nil
}

// ListInbound devuelve las entradas de los artículos con timestamp <= until (índice parcial por item_id, timestamp).
func (r *MovementRepo) ListInbound(ctx context.Context, itemIDs []int64, until time.Time) ([]entity.Movement, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	qb := r.base().Where(sq.Eq{"type": entity.MovementInbound, "item_id": itemIDs}).
		Where(sq.LtOrEq{`"timestamp"`: until})
	return r.list(ctx, "list inbound movements", qb)
}

// ListByGroups devuelve los movimientos que pertenecen a alguno de los grupos.
func (r *MovementRepo) ListByGroups(ctx context.Context, groupIDs []int64) ([]entity.Movement, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, "list movements by group", r.base().Where(sq.Eq{"item_movement_group_id": groupIDs}))
}

func (r *MovementRepo) base() sq.SelectBuilder {
	return psql.Select(movementColumns...).From("item_movements").OrderBy("id")
}

func (r *MovementRepo) list(ctx context.Context, op string, qb sq.SelectBuilder) ([]entity.Movement, error) {
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, wrapErr(op, err)
	}
	var movs []entity.Movement
	if err := pgxscan.Select(ctx, r.q, &movs, sql, args...); err != nil {
		return nil, wrapErr(op, err)
	}
	return movs, nil
}
