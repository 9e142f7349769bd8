package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = "id, code, name, category_id, created_at"

// ItemRepo implementación de ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create inserta el artículo y completa ID y CreatedAt.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (code, name, category_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, item.Code, item.Name, item.CategoryID).Scan(&item.ID, &item.CreatedAt)
	return wrapErr("insert item", err)
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	return r.getOne(ctx, "get item", sq.Eq{"id": id})
}

// GetByCode obtiene un artículo por su código único.
func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	return r.getOne(ctx, "get item by code", sq.Eq{"code": code})
}

// ListByIDs devuelve los artículos existentes entre ids, ordenados por id.
func (r *ItemRepo) ListByIDs(ctx context.Context, ids []int64) ([]entity.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sql, args, err := psql.Select(itemColumns).From("items").
		Where(sq.Eq{"id": ids}).OrderBy("id").ToSql()
	if err != nil {
		return nil, wrapErr("build list items", err)
	}
	var items []entity.Item
	if err := pgxscan.Select(ctx, r.q, &items, sql, args...); err != nil {
		return nil, wrapErr("list items", err)
	}
	return items, nil
}

func (r *ItemRepo) getOne(ctx context.Context, op string, where sq.Eq) (*entity.Item, error) {
	sql, args, err := psql.Select(itemColumns).From("items").Where(where).ToSql()
	if err != nil {
		return nil, wrapErr(op, err)
	}
	var item entity.Item
	if err := pgxscan.Get(ctx, r.q, &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return &item, nil
}
