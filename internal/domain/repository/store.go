package repository

import "context"

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store struct {
	Items      ItemRepository
	Warehouses WarehouseRepository
	Movements  MovementRepository
	Sales      SaleRepository
	Snapshots  SnapshotRepository
	Groups     GroupRepository
}

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella; Commit si fn
// devuelve nil, Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(s Store) error) error
	// RunSnapshot igual que Run pero con lectura consistente (REPEATABLE READ) durante toda la tx.
	RunSnapshot(ctx context.Context, fn func(s Store) error) error
}
