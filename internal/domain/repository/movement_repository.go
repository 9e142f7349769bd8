package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// MovementRepository puerto del libro de movimientos. Solo se agregan filas; nunca se modifican.
type MovementRepository interface {
	// Create asigna ID al movimiento.
	Create(ctx context.Context, m *entity.Movement) error
	// ListAll devuelve el libro completo ordenado por id.
	ListAll(ctx context.Context) ([]entity.Movement, error)
	// ListAfter devuelve los movimientos con id > afterID ordenados por id.
	ListAfter(ctx context.Context, afterID int64) ([]entity.Movement, error)
	// CountUpTo cuenta los movimientos con id <= id.
	CountUpTo(ctx context.Context, id int64) (int64, error)
	// ListInbound devuelve las entradas de los artículos dados con timestamp <= until.
	ListInbound(ctx context.Context, itemIDs []int64, until time.Time) ([]entity.Movement, error)
	// ListByGroups devuelve los movimientos de los grupos dados ordenados por id.
	ListByGroups(ctx context.Context, groupIDs []int64) ([]entity.Movement, error)
}
