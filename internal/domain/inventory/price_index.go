package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

type costPoint struct {
	at    time.Time
	id    int64
	price *decimal.Decimal
}

// PriceIndex índice ordenado de entradas por artículo para resolver
// "la entrada más reciente con timestamp <= t" en tiempo logarítmico.
type PriceIndex struct {
	byItem map[int64][]costPoint
}

// NewPriceIndex indexa los movimientos de entrada; el resto se ignora.
func NewPriceIndex(movs []entity.Movement) *PriceIndex {
	idx := &PriceIndex{byItem: make(map[int64][]costPoint)}
	for i := range movs {
		m := &movs[i]
		if m.Type != entity.MovementInbound {
			continue
		}
		idx.byItem[m.ItemID] = append(idx.byItem[m.ItemID], costPoint{at: m.Timestamp, id: m.ID, price: m.PurchasePrice})
	}
	for _, pts := range idx.byItem {
		sort.Slice(pts, func(i, j int) bool {
			if !pts[i].at.Equal(pts[j].at) {
				return pts[i].at.Before(pts[j].at)
			}
			return pts[i].id < pts[j].id
		})
	}
	return idx
}

// CostAt devuelve el precio de compra de la última entrada del artículo con timestamp <= t.
// Empates de timestamp: gana el id mayor. ok=false si no hay entrada previa o si esa entrada
// no registró precio de compra (costo desconocido).
func (x *PriceIndex) CostAt(itemID int64, t time.Time) (cost decimal.Decimal, ok bool) {
	pts := x.byItem[itemID]
	i := sort.Search(len(pts), func(i int) bool { return pts[i].at.After(t) })
	if i == 0 {
		return decimal.Zero, false
	}
	p := pts[i-1]
	if p.price == nil {
		return decimal.Zero, false
	}
	return *p.price, true
}
