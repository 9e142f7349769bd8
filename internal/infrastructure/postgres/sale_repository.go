package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

var saleColumns = []string{
	"id", "item_id", "warehouse_id", "user_id", "quantity", "sale_price",
	"paid", "note", "sold_at", "created_at", "sale_group_id",
}

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta y completa ID y CreatedAt.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (item_id, warehouse_id, user_id, quantity, sale_price, paid, note, sold_at, sale_group_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		s.ItemID, s.WarehouseID, s.UserID, s.Quantity, s.SalePrice, s.Paid, s.Note, s.SoldAt, s.SaleGroupID,
	).Scan(&s.ID, &s.CreatedAt)
	return wrapErr("insert sale", err)
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	sql, args, err := r.base().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, wrapErr("get sale", err)
	}
	var s entity.Sale
	if err := pgxscan.Get(ctx, r.q, &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrapErr("get sale", err)
	}
	return &s, nil
}

// MarkPaid marca la venta como pagada.
func (r *SaleRepo) MarkPaid(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE sales SET paid = true WHERE id = $1`, id)
	if err != nil {
		return false, wrapErr("mark sale paid", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ListUnpaid devuelve las ventas no pagadas (índice parcial sales_unpaid_idx).
func (r *SaleRepo) ListUnpaid(ctx context.Context) ([]entity.Sale, error) {
	return r.list(ctx, "list unpaid sales", r.base().Where(sq.Eq{"paid": false}))
}

// ListSoldBetween devuelve las ventas con from <= sold_at <= to.
func (r *SaleRepo) ListSoldBetween(ctx context.Context, from, to time.Time) ([]entity.Sale, error) {
	qb := r.base().Where(sq.GtOrEq{"sold_at": from}).Where(sq.LtOrEq{"sold_at": to})
	return r.list(ctx, "list sales in range", qb)
}

// ListByGroups devuelve las ventas que pertenecen a alguno de los grupos.
func (r *SaleRepo) ListByGroups(ctx context.Context, groupIDs []int64) ([]entity.Sale, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, "list sales by group", r.base().Where(sq.Eq{"sale_group_id": groupIDs}))
}

func (r *SaleRepo) base() sq.SelectBuilder {
	return psql.Select(saleColumns...).From("sales").OrderBy("id")
}

func (r *SaleRepo) list(ctx context.Context, op string, qb sq.SelectBuilder) ([]entity.Sale, error) {
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, wrapErr(op, err)
	}
	var sales []entity.Sale
	if err := pgxscan.Select(ctx, r.q, &sales, sql, args...); err != nil {
		return nil, wrapErr(op, err)
	}
	return sales, nil
}
