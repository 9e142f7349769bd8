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

// DisposalUseCase registra ventas. Cada venta se guarda junto con su salida de inventario
// (misma transacción): no existe otra forma de crear una venta.
type DisposalUseCase struct {
	txRunner repository.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewDisposalUseCase construye el caso de uso.
func NewDisposalUseCase(txRunner repository.TxRunner, log *logger.Logger) *DisposalUseCase {
	return &DisposalUseCase{txRunner: txRunner, log: log.Component("disposals"), now: time.Now}
}

// RecordDisposals guarda cada línea como una venta más un movimiento outbound desde la bodega
// de la venta, con la misma cantidad, el precio de venta y timestamp = sold_at.
func (uc *DisposalUseCase) RecordDisposals(ctx context.Context, userID int64, in dto.BulkSalesRequest) ([]dto.SaleResponse, error) {
	if len(in.Sales) == 0 {
		return nil, domain.Invalid("sales", "se requiere al menos una venta")
	}
	now := uc.now().UTC()
	sales := make([]entity.Sale, len(in.Sales))
	for i, line := range in.Sales {
		s := entity.Sale{
			ItemID:      line.ItemID,
			WarehouseID: line.WarehouseID,
			UserID:      userID,
			Quantity:    line.Quantity,
			SalePrice:   line.SalePrice,
			Paid:        line.Paid,
			Note:        line.Note,
			SoldAt:      now,
			CreatedAt:   now,
			SaleGroupID: in.SaleGroupID,
		}
		if line.SoldAt != nil {
			s.SoldAt = line.SoldAt.UTC()
		}
		if err := inventory.ValidateSale(&s); err != nil {
			return nil, domain.AtRow(err, i+1)
		}
		sales[i] = s
	}

	movementIDs := make([]int64, len(sales))
	err := uc.txRunner.Run(ctx, func(s repository.Store) error {
		g, err := s.Groups.GetSaleGroup(ctx, in.SaleGroupID)
		if err != nil {
			return err
		}
		if g == nil {
			return domain.NotFound("grupo de ventas", in.SaleGroupID)
		}
		exists := newExistenceCache(s)
		for i := range sales {
			sale := &sales[i]
			price := sale.SalePrice
			mov := entity.Movement{
				ItemID:            sale.ItemID,
				SourceWarehouseID: &sale.WarehouseID,
				Quantity:          sale.Quantity,
				Type:              entity.MovementOutbound,
				UserID:            &userID,
				Timestamp:         sale.SoldAt,
				SalePrice:         &price,
			}
			if err := exists.check(ctx, &mov); err != nil {
				return domain.AtRow(err, i+1)
			}
			if err := s.Sales.Create(ctx, sale); err != nil {
				return domain.AtRow(err, i+1)
			}
			if err := s.Movements.Create(ctx, &mov); err != nil {
				return domain.AtRow(err, i+1)
			}
			movementIDs[i] = mov.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("user_id", userID).Int64("sale_group_id", in.SaleGroupID).Int("count", len(sales)).Msg("ventas registradas")
	out := make([]dto.SaleResponse, len(sales))
	for i := range sales {
		out[i] = ToSaleResponse(&sales[i], movementIDs[i])
	}
	return out, nil
}

// MarkSalePaid marca una venta como pagada. Es idempotente.
func (uc *DisposalUseCase) MarkSalePaid(ctx context.Context, saleID int64) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(s repository.Store) error {
		ok, err := s.Sales.MarkPaid(ctx, saleID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NotFound("venta", saleID)
		}
		sale, err = s.Sales.GetByID(ctx, saleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta", saleID)
	}
	res := ToSaleResponse(sale, 0)
	return &res, nil
}

// CreateSaleGroup crea un grupo de ventas en la bodega indicada.
func (uc *DisposalUseCase) CreateSaleGroup(ctx context.Context, userID int64, in dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	g := &entity.SaleGroup{UserID: userID, WarehouseID: in.WarehouseID, Note: in.Note, CreatedAt: uc.now().UTC()}
	err := uc.txRunner.Run(ctx, func(s repository.Store) error {
		if err := requireWarehouse(ctx, s, in.WarehouseID); err != nil {
			return err
		}
		return s.Groups.CreateSaleGroup(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	res := ToSaleGroupResponse(g)
	return &res, nil
}
