package inventory

import (
	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// ToMovementResponse convierte un movimiento del libro.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                m.ID,
		ItemID:            m.ItemID,
		Type:              string(m.Type),
		Quantity:          m.Quantity,
		SourceWarehouseID: m.SourceWarehouseID,
		TargetWarehouseID: m.TargetWarehouseID,
		PurchasePrice:     m.PurchasePrice,
		SalePrice:         m.SalePrice,
		UserID:            m.UserID,
		Timestamp:         m.Timestamp,
		GroupID:           m.GroupID,
	}
}

// ToSaleResponse convierte una venta; movementID es la salida generada (0 si no aplica).
func ToSaleResponse(s *entity.Sale, movementID int64) dto.SaleResponse {
	return dto.SaleResponse{
		ID:          s.ID,
		ItemID:      s.ItemID,
		WarehouseID: s.WarehouseID,
		UserID:      s.UserID,
		Quantity:    s.Quantity,
		SalePrice:   s.SalePrice,
		Total:       s.Total().Round(2),
		Paid:        s.Paid,
		Note:        s.Note,
		SoldAt:      s.SoldAt,
		CreatedAt:   s.CreatedAt,
		SaleGroupID: s.SaleGroupID,
		MovementID:  movementID,
	}
}

// ToSnapshotResponse convierte una fila del inventario materializado.
func ToSnapshotResponse(s *entity.InventorySnapshot, itemName string) dto.SnapshotResponse {
	return dto.SnapshotResponse{
		ID:            s.ID,
		ItemID:        s.ItemID,
		ItemName:      itemName,
		WarehouseID:   s.WarehouseID,
		Quantity:      s.Quantity,
		PurchasePrice: s.PurchasePrice,
		SalePrice:     s.SalePrice,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToMovementGroupResponse convierte un grupo de movimientos.
func ToMovementGroupResponse(g *entity.MovementGroup) dto.GroupResponse {
	return dto.GroupResponse{ID: g.ID, UserID: g.UserID, WarehouseID: g.WarehouseID, Note: g.Note, CreatedAt: g.CreatedAt}
}

// ToSaleGroupResponse convierte un grupo de ventas.
func ToSaleGroupResponse(g *entity.SaleGroup) dto.GroupResponse {
	return dto.GroupResponse{ID: g.ID, UserID: g.UserID, WarehouseID: g.WarehouseID, Note: g.Note, CreatedAt: g.CreatedAt}
}
