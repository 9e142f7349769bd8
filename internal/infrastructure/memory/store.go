// Package memory implementa los repositorios sobre estructuras en memoria. Se usa en tests y con
// DB_DRIVER=memory. Las transacciones trabajan sobre una copia del estado que se publica en el Commit.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

type tables struct {
	items          map[int64]entity.Item
	warehouses     map[int64]entity.Warehouse
	movements      []entity.Movement // en orden de id
	sales          map[int64]entity.Sale
	snapshots      map[entity.SnapshotKey]entity.InventorySnapshot
	movementGroups map[int64]entity.MovementGroup
	saleGroups     map[int64]entity.SaleGroup
	seq            map[string]int64
}

func newTables() *tables {
	return &tables{
		items:          make(map[int64]entity.Item),
		warehouses:     make(map[int64]entity.Warehouse),
		sales:          make(map[int64]entity.Sale),
		snapshots:      make(map[entity.SnapshotKey]entity.InventorySnapshot),
		movementGroups: make(map[int64]entity.MovementGroup),
		saleGroups:     make(map[int64]entity.SaleGroup),
		seq:            make(map[string]int64),
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.items {
		c.items[k] = v
	}
	for k, v := range t.warehouses {
		c.warehouses[k] = v
	}
	c.movements = append([]entity.Movement(nil), t.movements...)
	for k, v := range t.sales {
		c.sales[k] = v
	}
	for k, v := range t.snapshots {
		c.snapshots[k] = v
	}
	for k, v := range t.movementGroups {
		c.movementGroups[k] = v
	}
	for k, v := range t.saleGroups {
		c.saleGroups[k] = v
	}
	for k, v := range t.seq {
		c.seq[k] = v
	}
	return c
}

func (t *tables) next(name string) int64 {
	t.seq[name]++
	return t.seq[name]
}

// DB almacén en memoria seguro para uso concurrente. Las transacciones se serializan.
type DB struct {
	mu sync.RWMutex
	t  *tables
	// hook opcional invocado antes de cada escritura; permite simular fallas en tests.
	failWrite func(op string) error
}

// New crea un almacén vacío.
func New() *DB {
	return &DB{t: newTables()}
}

// FailWrites instala una función que puede rechazar escrituras (por nombre de operación).
func (db *DB) FailWrites(fn func(op string) error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.failWrite = fn
}

// Store devuelve repositorios que operan directamente sobre el estado confirmado.
func (db *DB) Store() repository.Store {
	return storeOn(&session{db: db, locked: false})
}

var _ repository.TxRunner = (*DB)(nil)

// Run ejecuta fn sobre una copia del estado; si fn devuelve nil la copia reemplaza al estado.
func (db *DB) Run(ctx context.Context, fn func(s repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	work := db.t.clone()
	if err := fn(storeOn(&session{db: db, t: work, locked: true})); err != nil {
		return err
	}
	db.t = work
	return nil
}

// RunSnapshot equivale a Run: las transacciones en memoria ya son serializables.
func (db *DB) RunSnapshot(ctx context.Context, fn func(s repository.Store) error) error {
	return db.Run(ctx, fn)
}

// session resuelve qué estado usan los repositorios: la copia de una tx (locked) o el estado
// confirmado, tomando el candado en cada operación.
type session struct {
	db     *DB
	t      *tables
	locked bool
}

func (s *session) read(fn func(t *tables)) {
	if s.locked {
		fn(s.t)
		return
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	fn(s.db.t)
}

func (s *session) write(op string, fn func(t *tables) error) error {
	if !s.locked {
		s.db.mu.Lock()
		defer s.db.mu.Unlock()
	}
	if s.db.failWrite != nil {
		if err := s.db.failWrite(op); err != nil {
			return err
		}
	}
	if s.locked {
		return fn(s.t)
	}
	return fn(s.db.t)
}

func storeOn(s *session) repository.Store {
	return repository.Store{
		Items:      &itemRepo{s: s},
		Warehouses: &warehouseRepo{s: s},
		Movements:  &movementRepo{s: s},
		Sales:      &saleRepo{s: s},
		Snapshots:  &snapshotRepo{s: s},
		Groups:     &groupRepo{s: s},
	}
}
