package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	// GetByID devuelve (nil, nil) si la venta no existe.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// MarkPaid marca la venta como pagada; devuelve false si no existe.
	MarkPaid(ctx context.Context, id int64) (bool, error)
	ListUnpaid(ctx context.Context) ([]entity.Sale, error)
	// ListSoldBetween devuelve las ventas con from <= sold_at <= to.
	ListSoldBetween(ctx context.Context, from, to time.Time) ([]entity.Sale, error)
	ListByGroups(ctx context.Context, groupIDs []int64) ([]entity.Sale, error)
}
