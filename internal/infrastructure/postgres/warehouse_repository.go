package postgres

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (name, location)
		VALUES ($1, $2)
		RETURNING id, created_at`
	return wrapErr("insert warehouse", r.q.QueryRow(ctx, query, w.Name, w.Location).Scan(&w.ID, &w.CreatedAt))
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	query := `SELECT id, name, location, created_at FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	if err := pgxscan.Get(ctx, r.q, &w, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrapErr("get warehouse", err)
	}
	return &w, nil
}
