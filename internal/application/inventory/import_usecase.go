package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// ImportGroupNote nota del grupo de movimientos creado por cada importación.
const ImportGroupNote = "importación de inventario"

// ImportUseCase carga una hoja de conteo de inventario en una bodega.
type ImportUseCase struct {
	txRunner repository.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(txRunner repository.TxRunner, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{txRunner: txRunner, log: log.Component("import"), now: time.Now}
}

// ImportStockSheet aplica las filas en una sola transacción:
//   - filas sin nombre se omiten;
//   - el artículo se busca por código == nombre sin espacios y se crea si no existe;
//   - la fila materializada suma la cantidad y sobrescribe ambos precios;
//   - cada fila con cantidad > 0 genera una entrada en el grupo de la importación.
//
// Cualquier error revierte toda la importación.
func (uc *ImportUseCase) ImportStockSheet(ctx context.Context, rows []inventory.StockRow, warehouseID, userID int64) (*dto.ImportResponse, error) {
	now := uc.now().UTC()
	res := &dto.ImportResponse{RowsRead: len(rows)}

	err := uc.txRunner.Run(ctx, func(s repository.Store) error {
		if err := requireWarehouse(ctx, s, warehouseID); err != nil {
			return err
		}
		note := ImportGroupNote
		group := &entity.MovementGroup{UserID: userID, WarehouseID: warehouseID, Note: &note, CreatedAt: now}
		if err := s.Groups.CreateMovementGroup(ctx, group); err != nil {
			return err
		}
		res.GroupID = group.ID

		for i := range rows {
			row := &rows[i]
			if row.Blank() {
				res.RowsSkipped++
				continue
			}
			snap, name, err := uc.applyRow(ctx, s, row, warehouseID, userID, group.ID, now)
			if err != nil {
				return domain.AtRow(err, row.Row)
			}
			res.Rows = append(res.Rows, ToSnapshotResponse(snap, name))
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("warehouse_id", warehouseID).Msg("importación revertida")
		return nil, err
	}

	uc.log.Info().
		Int64("warehouse_id", warehouseID).
		Int64("group_id", res.GroupID).
		Int("rows", res.RowsRead).
		Int("skipped", res.RowsSkipped).
		Msg("inventario importado")
	return res, nil
}

func (uc *ImportUseCase) applyRow(
	ctx context.Context,
	s repository.Store,
	row *inventory.StockRow,
	warehouseID, userID, groupID int64,
	now time.Time,
) (*entity.InventorySnapshot, string, error) {
	if err := row.Validate(); err != nil {
		return nil, "", err
	}
	name := strings.TrimSpace(row.Name)

	item, err := s.Items.GetByCode(ctx, name)
	if err != nil {
		return nil, "", err
	}
	if item == nil {
		item = &entity.Item{Code: name, Name: name, CreatedAt: now}
		if err := s.Items.Create(ctx, item); err != nil {
			return nil, "", err
		}
	}

	snap := &entity.InventorySnapshot{
		ItemID:        item.ID,
		WarehouseID:   warehouseID,
		Quantity:      row.Quantity,
		PurchasePrice: row.PurchasePrice,
		SalePrice:     row.SalePrice,
		UpdatedAt:     now,
	}
	if err := s.Snapshots.AddStock(ctx, snap); err != nil {
		return nil, "", err
	}

	if row.Quantity > 0 {
		purchase, sale := decimalPtr(row.PurchasePrice), decimalPtr(row.SalePrice)
		target := warehouseID
		mov := &entity.Movement{
			ItemID:            item.ID,
			TargetWarehouseID: &target,
			Quantity:          row.Quantity,
			Type:              entity.MovementInbound,
			UserID:            &userID,
			Timestamp:         now,
			PurchasePrice:     purchase,
			SalePrice:         sale,
			GroupID:           &groupID,
		}
		if err := s.Movements.Create(ctx, mov); err != nil {
			return nil, "", err
		}
	}
	return snap, item.Name, nil
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
