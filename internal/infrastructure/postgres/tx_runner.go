package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var tracer = otel.Tracer("inventario-pos/postgres")

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(s repository.Store) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// RunSnapshot igual que Run con REPEATABLE READ: todas las lecturas ven la misma foto de la BD.
func (r *TxRunner) RunSnapshot(ctx context.Context, fn func(s repository.Store) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(s repository.Store) error) error {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(attribute.String("tx.isolation", string(opts.IsoLevel))))
	defer span.End()

	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		span.RecordError(err)
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStore(tx)); err != nil {
		span.RecordError(err)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		return wrapErr("commit transaction", err)
	}
	return nil
}

// NewStore arma el conjunto de repositorios sobre q (pool o tx).
func NewStore(q Querier) repository.Store {
	return repository.Store{
		Items:      NewItemRepository(q),
		Warehouses: NewWarehouseRepository(q),
		Movements:  NewMovementRepository(q),
		Sales:      NewSaleRepository(q),
		Snapshots:  NewSnapshotRepository(q),
		Groups:     NewGroupRepository(q),
	}
}
