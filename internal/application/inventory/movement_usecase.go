package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// MovementUseCase registra movimientos en el libro y crea grupos de movimientos.
// No toca el inventario materializado: eso lo hace la reconstrucción.
type MovementUseCase struct {
	txRunner repository.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner repository.TxRunner, log *logger.Logger) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, log: log.Component("movements"), now: time.Now}
}

// RecordMovements valida y guarda todas las líneas en una sola transacción. Si una línea falla
// no se guarda ninguna; el error indica la fila (1-based).
func (uc *MovementUseCase) RecordMovements(ctx context.Context, userID int64, in dto.BulkMovementsRequest) ([]dto.MovementResponse, error) {
	if len(in.Movements) == 0 {
		return nil, domain.Invalid("movements", "se requiere al menos un movimiento")
	}
	now := uc.now().UTC()
	movs := make([]entity.Movement, len(in.Movements))
	for i, line := range in.Movements {
		m := entity.Movement{
			ItemID:            line.ItemID,
			SourceWarehouseID: line.SourceWarehouseID,
			TargetWarehouseID: line.TargetWarehouseID,
			Quantity:          line.Quantity,
			Type:              entity.MovementType(line.Type),
			UserID:            &userID,
			Timestamp:         now,
			PurchasePrice:     line.PurchasePrice,
			SalePrice:         line.SalePrice,
			GroupID:           in.GroupID,
		}
		if line.Timestamp != nil {
			m.Timestamp = line.Timestamp.UTC()
		}
		if err := inventory.ValidateMovement(&m); err != nil {
			return nil, domain.AtRow(err, i+1)
		}
		movs[i] = m
	}

	err := uc.txRunner.Run(ctx, func(s repository.Store) error {
		if in.GroupID != nil {
			g, err := s.Groups.GetMovementGroup(ctx, *in.GroupID)
			if err != nil {
				return err
			}
			if g == nil {
				return domain.NotFound("grupo de movimientos", *in.GroupID)
			}
		}
		exists := newExistenceCache(s)
		for i := range movs {
			if err := exists.check(ctx, &movs[i]); err != nil {
				return domain.AtRow(err, i+1)
			}
			if err := s.Movements.Create(ctx, &movs[i]); err != nil {
				return domain.AtRow(err, i+1)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("user_id", userID).Int("count", len(movs)).Msg("movimientos registrados")
	out := make([]dto.MovementResponse, len(movs))
	for i := range movs {
		out[i] = ToMovementResponse(&movs[i])
	}
	return out, nil
}

// CreateMovementGroup crea un grupo de movimientos en la bodega indicada.
func (uc *MovementUseCase) CreateMovementGroup(ctx context.Context, userID int64, in dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	g := &entity.MovementGroup{UserID: userID, WarehouseID: in.WarehouseID, Note: in.Note, CreatedAt: uc.now().UTC()}
	err := uc.txRunner.Run(ctx, func(s repository.Store) error {
		if err := requireWarehouse(ctx, s, in.WarehouseID); err != nil {
			return err
		}
		return s.Groups.CreateMovementGroup(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	res := ToMovementGroupResponse(g)
	return &res, nil
}

// existenceCache evita repetir consultas de artículos y bodegas dentro de un lote.
type existenceCache struct {
	s          repository.Store
	items      map[int64]bool
	warehouses map[int64]bool
}

func newExistenceCache(s repository.Store) *existenceCache {
	return &existenceCache{s: s, items: map[int64]bool{}, warehouses: map[int64]bool{}}
}

func (c *existenceCache) check(ctx context.Context, m *entity.Movement) error {
	if err := c.item(ctx, m.ItemID); err != nil {
		return err
	}
	for _, id := range []*int64{m.SourceWarehouseID, m.TargetWarehouseID} {
		if id == nil {
			continue
		}
		if err := c.warehouse(ctx, *id); err != nil {
			return err
		}
	}
	return nil
}

func (c *existenceCache) item(ctx context.Context, id int64) error {
	if c.items[id] {
		return nil
	}
	it, err := c.s.Items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if it == nil {
		return domain.NotFound("artículo", id)
	}
	c.items[id] = true
	return nil
}

func (c *existenceCache) warehouse(ctx context.Context, id int64) error {
	if c.warehouses[id] {
		return nil
	}
	if err := requireWarehouse(ctx, c.s, id); err != nil {
		return err
	}
	c.warehouses[id] = true
	return nil
}

func requireWarehouse(ctx context.Context, s repository.Store, id int64) error {
	wh, err := s.Warehouses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.NotFound("bodega", id)
	}
	return nil
}
