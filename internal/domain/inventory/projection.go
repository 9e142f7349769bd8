package inventory

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// keyState estado acumulado de una clave (artículo, bodega).
type keyState struct {
	quantity    int64
	lastTouch   time.Time
	lastInbound *entity.Movement // entrada más reciente hacia esta bodega
}

// Projector pliega el libro de movimientos en filas de inventario materializado.
//
// Aplicar el libro completo a un Projector vacío equivale a la reconstrucción total.
// Un Projector "caliente" admite además aplicar solo los movimientos nuevos (id > Watermark),
// lo que produce las mismas filas para las claves tocadas.
type Projector struct {
	mu        sync.Mutex
	state     map[entity.SnapshotKey]*keyState
	watermark int64
	applied   int64
}

// NewProjector crea un Projector vacío.
func NewProjector() *Projector {
	return &Projector{state: make(map[entity.SnapshotKey]*keyState)}
}

// Watermark devuelve el mayor id de movimiento aplicado y cuántos movimientos se aplicaron.
func (p *Projector) Watermark() (maxID, applied int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.watermark, p.applied
}

// Apply incorpora movimientos y devuelve las claves afectadas, ordenadas.
func (p *Projector) Apply(movs []entity.Movement) []entity.SnapshotKey {
	p.mu.Lock()
	defer p.mu.Unlock()

	touched := make(map[entity.SnapshotKey]struct{})
	for i := range movs {
		m := &movs[i]
		if m.SourceWarehouseID != nil {
			k := entity.SnapshotKey{ItemID: m.ItemID, WarehouseID: *m.SourceWarehouseID}
			st := p.stateFor(k)
			st.quantity -= m.Quantity
			st.touch(m.Timestamp)
			touched[k] = struct{}{}
		}
		if m.TargetWarehouseID != nil {
			k := entity.SnapshotKey{ItemID: m.ItemID, WarehouseID: *m.TargetWarehouseID}
			st := p.stateFor(k)
			st.quantity += m.Quantity
			st.touch(m.Timestamp)
			if m.Type == entity.MovementInbound && (st.lastInbound == nil || m.After(st.lastInbound)) {
				cp := *m
				st.lastInbound = &cp
			}
			touched[k] = struct{}{}
		}
		if m.ID > p.watermark {
			p.watermark = m.ID
		}
		p.applied++
	}

	keys := make([]entity.SnapshotKey, 0, len(touched))
	for k := range touched {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Rows devuelve las filas proyectadas para las claves dadas (nil = todas), ordenadas por clave.
func (p *Projector) Rows(keys []entity.SnapshotKey) []entity.InventorySnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	if keys == nil {
		keys = make([]entity.SnapshotKey, 0, len(p.state))
		for k := range p.state {
			keys = append(keys, k)
		}
		sortKeys(keys)
	}
	rows := make([]entity.InventorySnapshot, 0, len(keys))
	for _, k := range keys {
		st, ok := p.state[k]
		if !ok {
			continue
		}
		row := entity.InventorySnapshot{
			ItemID:        k.ItemID,
			WarehouseID:   k.WarehouseID,
			Quantity:      st.quantity,
			PurchasePrice: decimal.Zero,
			SalePrice:     decimal.Zero,
			UpdatedAt:     st.lastTouch,
		}
		if in := st.lastInbound; in != nil {
			if in.PurchasePrice != nil {
				row.PurchasePrice = *in.PurchasePrice
			}
			if in.SalePrice != nil {
				row.SalePrice = *in.SalePrice
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (p *Projector) stateFor(k entity.SnapshotKey) *keyState {
	st, ok := p.state[k]
	if !ok {
		st = &keyState{}
		p.state[k] = st
	}
	return st
}

func (s *keyState) touch(t time.Time) {
	if t.After(s.lastTouch) {
		s.lastTouch = t
	}
}

// Project reconstruye desde cero el inventario materializado a partir del libro completo.
func Project(movs []entity.Movement) []entity.InventorySnapshot {
	p := NewProjector()
	p.Apply(movs)
	return p.Rows(nil)
}

func sortKeys(keys []entity.SnapshotKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ItemID != keys[j].ItemID {
			return keys[i].ItemID < keys[j].ItemID
		}
		return keys[i].WarehouseID < keys[j].WarehouseID
	})
}
