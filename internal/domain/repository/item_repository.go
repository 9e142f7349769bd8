package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para artículos.
// GetByID y GetByCode devuelven (nil, nil) cuando no existe el artículo.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	ListByIDs(ctx context.Context, ids []int64) ([]entity.Item, error)
}
