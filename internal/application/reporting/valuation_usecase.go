// Package reporting expone los reportes de valorización y ventas sobre el libro de inventario.
package reporting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// ValuationUseCase calcula los resúmenes de inventario y ventas. Cada reporte lee dentro de
// una transacción REPEATABLE READ para que todas sus consultas vean el mismo estado.
type ValuationUseCase struct {
	txRunner     repository.TxRunner
	pdf          DailyReportPDFGenerator
	loc          *time.Location
	businessName string
	log          *logger.Logger
	now          func() time.Time
}

// NewValuationUseCase construye el caso de uso. loc es la zona del negocio (REPORT_TIMEZONE).
func NewValuationUseCase(
	txRunner repository.TxRunner,
	pdf DailyReportPDFGenerator,
	loc *time.Location,
	businessName string,
	log *logger.Logger,
) *ValuationUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ValuationUseCase{
		txRunner:     txRunner,
		pdf:          pdf,
		loc:          loc,
		businessName: businessName,
		log:          log.Component("reporting"),
		now:          time.Now,
	}
}

// CurrentSummary devuelve cantidad total, inversión y deuda pendiente.
func (uc *ValuationUseCase) CurrentSummary(ctx context.Context) (*dto.CurrentSummaryResponse, error) {
	var snaps []entity.InventorySnapshot
	var unpaid []entity.Sale
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		var err error
		if snaps, err = s.Snapshots.List(ctx, nil); err != nil {
			return err
		}
		unpaid, err = s.Sales.ListUnpaid(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	sum := inventory.CurrentSummary(snaps, unpaid)
	return &dto.CurrentSummaryResponse{
		TotalItems:      sum.TotalQuantity,
		TotalInvestment: sum.TotalInvestment,
		TotalDebt:       sum.TotalDebt,
	}, nil
}

// GroupedSummary agrega el inventario por artículo y bodega; warehouseID limita a una bodega.
func (uc *ValuationUseCase) GroupedSummary(ctx context.Context, warehouseID *int64) ([]dto.GroupedSummaryRow, error) {
	var snaps []entity.InventorySnapshot
	var names map[int64]string
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		if warehouseID != nil {
			if err := requireWarehouse(ctx, s, *warehouseID); err != nil {
				return err
			}
		}
		var err error
		if snaps, err = s.Snapshots.List(ctx, warehouseID); err != nil {
			return err
		}
		names, err = itemNames(ctx, s, uniqueIDs(snaps, func(s *entity.InventorySnapshot) int64 { return s.ItemID }))
		return err
	})
	if err != nil {
		return nil, err
	}

	rows := inventory.GroupSnapshots(snaps)
	out := make([]dto.GroupedSummaryRow, len(rows))
	for i, r := range rows {
		out[i] = dto.GroupedSummaryRow{
			ItemID:            r.ItemID,
			ItemName:          names[r.ItemID],
			WarehouseID:       r.WarehouseID,
			TotalQuantity:     r.TotalQuantity,
			TotalInvestment:   r.TotalInvestment,
			LastSalePrice:     r.LastSalePrice,
			LastPurchasePrice: r.LastPurchasePrice,
		}
	}
	return out, nil
}

// RangeSummary ingresos y ganancia de las ventas pagadas entre q.Start y q.End (días locales).
func (uc *ValuationUseCase) RangeSummary(ctx context.Context, q dto.DateRangeQuery) (*dto.RangeSummaryResponse, error) {
	p, err := inventory.LocalPeriod(q.Start, q.End, uc.loc)
	if err != nil {
		return nil, err
	}
	sales, idx, err := uc.salesWithCosts(ctx, p)
	if err != nil {
		return nil, err
	}
	sum := inventory.SummarizeRange(sales, idx, p)
	uc.auditUncosted(sum.UncostedSaleIDs, q)
	return &dto.RangeSummaryResponse{
		Start:         q.Start,
		End:           q.End,
		TotalPaid:     sum.TotalPaid,
		TotalProfit:   sum.TotalProfit,
		UncostedSales: sum.UncostedSaleIDs,
	}, nil
}

// DailyBreakdown ventas, ganancia y fiados por día calendario local.
func (uc *ValuationUseCase) DailyBreakdown(ctx context.Context, q dto.DateRangeQuery) (*dto.DailyBreakdownResponse, error) {
	b, err := uc.breakdown(ctx, q)
	if err != nil {
		return nil, err
	}
	out := &dto.DailyBreakdownResponse{Start: q.Start, End: q.End, Days: make([]dto.DailyBucketResponse, len(b.Days))}
	for i, d := range b.Days {
		out.Days[i] = dto.DailyBucketResponse{Date: d.Date, Sales: d.Sales, Profit: d.Profit, Fiados: d.Fiados}
	}
	return out, nil
}

// DailyBreakdownPDF genera el PDF del desglose diario.
func (uc *ValuationUseCase) DailyBreakdownPDF(ctx context.Context, q dto.DateRangeQuery) ([]byte, error) {
	b, err := uc.breakdown(ctx, q)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Generate(ctx, DailyReport{
		BusinessName: uc.businessName,
		From:         q.Start,
		To:           q.End,
		TimeZone:     uc.loc.String(),
		Days:         b.Days,
		GeneratedAt:  uc.now().In(uc.loc),
	})
}

func (uc *ValuationUseCase) breakdown(ctx context.Context, q dto.DateRangeQuery) (inventory.Breakdown, error) {
	p, err := inventory.LocalPeriod(q.Start, q.End, uc.loc)
	if err != nil {
		return inventory.Breakdown{}, err
	}
	sales, idx, err := uc.salesWithCosts(ctx, p)
	if err != nil {
		return inventory.Breakdown{}, err
	}
	b := inventory.DailyBreakdown(sales, idx, p, uc.loc)
	uc.auditUncosted(b.UncostedSaleIDs, q)
	return b, nil
}

// salesWithCosts carga las ventas del período y las entradas de sus artículos hasta p.To.
func (uc *ValuationUseCase) salesWithCosts(ctx context.Context, p inventory.Period) ([]entity.Sale, *inventory.PriceIndex, error) {
	var sales []entity.Sale
	var inbound []entity.Movement
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		var err error
		if sales, err = s.Sales.ListSoldBetween(ctx, p.From, p.To); err != nil {
			return err
		}
		if len(sales) == 0 {
			return nil
		}
		inbound, err = s.Movements.ListInbound(ctx, uniqueIDs(sales, func(s *entity.Sale) int64 { return s.ItemID }), p.To)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return sales, inventory.NewPriceIndex(inbound), nil
}

func (uc *ValuationUseCase) auditUncosted(ids []int64, q dto.DateRangeQuery) {
	if len(ids) == 0 {
		return
	}
	uc.log.Warn().
		Err(domain.ErrNoCostBasis).
		Ints64("sale_ids", ids).
		Str("start", q.Start).
		Str("end", q.End).
		Msg("ventas sin costo base; ganancia cero")
}

// MovementGroupSummary totales de cantidad y precios de los movimientos de un grupo.
func (uc *ValuationUseCase) MovementGroupSummary(ctx context.Context, groupID int64) (*dto.MovementGroupSummaryResponse, error) {
	var group *entity.MovementGroup
	var movs []entity.Movement
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		var err error
		if group, err = s.Groups.GetMovementGroup(ctx, groupID); err != nil {
			return err
		}
		if group == nil {
			return domain.NotFound("grupo de movimientos", groupID)
		}
		movs, err = s.Movements.ListByGroups(ctx, []int64{groupID})
		return err
	})
	if err != nil {
		return nil, err
	}
	res := summarizeMovementGroup(group, movs)
	return &res, nil
}

func summarizeMovementGroup(g *entity.MovementGroup, movs []entity.Movement) dto.MovementGroupSummaryResponse {
	var items int64
	purchase, sale := decimal.Zero, decimal.Zero
	for i := range movs {
		m := &movs[i]
		q := decimal.NewFromInt(m.Quantity)
		items += m.Quantity
		if m.PurchasePrice != nil {
			purchase = purchase.Add(m.PurchasePrice.Mul(q))
		}
		if m.SalePrice != nil {
			sale = sale.Add(m.SalePrice.Mul(q))
		}
	}
	return dto.MovementGroupSummaryResponse{
		Group:              appinventory.ToMovementGroupResponse(g),
		TotalItems:         items,
		TotalPurchasePrice: purchase.Round(2),
		TotalSalePrice:     sale.Round(2),
	}
}

// SaleGroupSummary totales de un grupo de ventas, incluida su deuda pendiente.
func (uc *ValuationUseCase) SaleGroupSummary(ctx context.Context, groupID int64) (*dto.SaleGroupSummaryResponse, error) {
	var group *entity.SaleGroup
	var sales []entity.Sale
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		var err error
		if group, err = s.Groups.GetSaleGroup(ctx, groupID); err != nil {
			return err
		}
		if group == nil {
			return domain.NotFound("grupo de ventas", groupID)
		}
		sales, err = s.Sales.ListByGroups(ctx, []int64{groupID})
		return err
	})
	if err != nil {
		return nil, err
	}
	res := summarizeSaleGroup(group, sales)
	return &res, nil
}

// DebtorSaleGroups grupos de ventas con deuda pendiente, ordenados por id.
func (uc *ValuationUseCase) DebtorSaleGroups(ctx context.Context) ([]dto.SaleGroupSummaryResponse, error) {
	var groups []entity.SaleGroup
	var sales []entity.Sale
	err := uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		unpaid, err := s.Sales.ListUnpaid(ctx)
		if err != nil {
			return err
		}
		ids := uniqueIDs(unpaid, func(s *entity.Sale) int64 { return s.SaleGroupID })
		if len(ids) == 0 {
			return nil
		}
		if groups, err = s.Groups.ListSaleGroups(ctx, ids); err != nil {
			return err
		}
		sales, err = s.Sales.ListByGroups(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}

	byGroup := make(map[int64][]entity.Sale, len(groups))
	for _, sale := range sales {
		byGroup[sale.SaleGroupID] = append(byGroup[sale.SaleGroupID], sale)
	}
	out := make([]dto.SaleGroupSummaryResponse, 0, len(groups))
	for i := range groups {
		sum := summarizeSaleGroup(&groups[i], byGroup[groups[i].ID])
		if sum.TotalDebt.IsPositive() {
			out = append(out, sum)
		}
	}
	return out, nil
}

func summarizeSaleGroup(g *entity.SaleGroup, sales []entity.Sale) dto.SaleGroupSummaryResponse {
	var items int64
	total, debt := decimal.Zero, decimal.Zero
	for i := range sales {
		t := sales[i].Total()
		items += sales[i].Quantity
		total = total.Add(t)
		if !sales[i].Paid {
			debt = debt.Add(t)
		}
	}
	return dto.SaleGroupSummaryResponse{
		Group:          appinventory.ToSaleGroupResponse(g),
		TotalItems:     items,
		TotalSalePrice: total.Round(2),
		TotalDebt:      debt.Round(2),
	}
}

// uniqueIDs devuelve los ids distintos en orden de aparición.
func uniqueIDs[T any](xs []T, id func(*T) int64) []int64 {
	seen := map[int64]bool{}
	ids := make([]int64, 0, len(xs))
	for i := range xs {
		v := id(&xs[i])
		if !seen[v] {
			seen[v] = true
			ids = append(ids, v)
		}
	}
	return ids
}
