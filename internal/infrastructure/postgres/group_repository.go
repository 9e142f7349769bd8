package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.GroupRepository = (*GroupRepo)(nil)

var groupColumns = []string{"id", "user_id", "warehouse_id", "note", "created_at"}

// GroupRepo grupos de movimientos (item_movement_groups) y de ventas (sale_groups).
type GroupRepo struct {
	q Querier
}

// NewGroupRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGroupRepository(q Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

func (r *GroupRepo) CreateMovementGroup(ctx context.Context, g *entity.MovementGroup) error {
	query := `
		INSERT INTO item_movement_groups (user_id, warehouse_id, note)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return wrapErr("insert movement group",
		r.q.QueryRow(ctx, query, g.UserID, g.WarehouseID, g.Note).Scan(&g.ID, &g.CreatedAt))
}

func (r *GroupRepo) GetMovementGroup(ctx context.Context, id int64) (*entity.MovementGroup, error) {
	var g entity.MovementGroup
	query := `SELECT id, user_id, warehouse_id, note, created_at FROM item_movement_groups WHERE id = $1`
	if err := pgxscan.Get(ctx, r.q, &g, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrapErr("get movement group", err)
	}
	return &g, nil
}

func (r *GroupRepo) CreateSaleGroup(ctx context.Context, g *entity.SaleGroup) error {
	query := `
		INSERT INTO sale_groups (user_id, warehouse_id, note)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return wrapErr("insert sale group",
		r.q.QueryRow(ctx, query, g.UserID, g.WarehouseID, g.Note).Scan(&g.ID, &g.CreatedAt))
}

func (r *GroupRepo) GetSaleGroup(ctx context.Context, id int64) (*entity.SaleGroup, error) {
	var g entity.SaleGroup
	query := `SELECT id, user_id, warehouse_id, note, created_at FROM sale_groups WHERE id = $1`
	if err := pgxscan.Get(ctx, r.q, &g, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrapErr("get sale group", err)
	}
	return &g, nil
}

// ListSaleGroups devuelve los grupos de venta con los ids dados, ordenados por id.
func (r *GroupRepo) ListSaleGroups(ctx context.Context, ids []int64) ([]entity.SaleGroup, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sql, args, err := psql.Select(groupColumns...).
		From("sale_groups").Where(sq.Eq{"id": ids}).OrderBy("id").ToSql()
	if err != nil {
		return nil, wrapErr("list sale groups", err)
	}
	var groups []entity.SaleGroup
	if err := pgxscan.Select(ctx, r.q, &groups, sql, args...); err != nil {
		return nil, wrapErr("list sale groups", err)
	}
	return groups, nil
}

func (r *GroupRepo) ListMovementGroupsByWarehouse(ctx context.Context, warehouseID int64) ([]entity.MovementGroup, error) {
	sql, args, err := psql.Select(groupColumns...).From("item_movement_groups").
		Where(sq.Eq{"warehouse_id": warehouseID}).OrderBy("id").ToSql()
	if err != nil {
		return nil, wrapErr("list movement groups by warehouse", err)
	}
	var groups []entity.MovementGroup
	if err := pgxscan.Select(ctx, r.q, &groups, sql, args...); err != nil {
		return nil, wrapErr("list movement groups by warehouse", err)
	}
	return groups, nil
}

func (r *GroupRepo) ListSaleGroupsByWarehouse(ctx context.Context, warehouseID int64) ([]entity.SaleGroup, error) {
	sql, args, err := psql.Select(groupColumns...).From("sale_groups").
		Where(sq.Eq{"warehouse_id": warehouseID}).OrderBy("id").ToSql()
	if err != nil {
		return nil, wrapErr("list sale groups by warehouse", err)
	}
	var groups []entity.SaleGroup
	if err := pgxscan.Select(ctx, r.q, &groups, sql, args...); err != nil {
		return nil, wrapErr("list sale groups by warehouse", err)
	}
	return groups, nil
}
