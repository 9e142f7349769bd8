package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// Modos de reconstrucción.
const (
	RebuildFull        = "full"
	RebuildIncremental = "incremental"
)

// ProjectionUseCase reconstruye el inventario materializado desde el libro de movimientos.
//
// La reconstrucción completa lee el libro bajo REPEATABLE READ y escribe todas las filas en la
// misma transacción. Con incremental=true se conserva un Projector en memoria y las siguientes
// reconstrucciones aplican solo los movimientos con id mayor a la marca de agua; si el libro
// recibió movimientos con id menor a la marca (commits tardíos) se vuelve a la reconstrucción completa.
type ProjectionUseCase struct {
	txRunner    repository.TxRunner
	locker      Locker
	incremental bool
	log         *logger.Logger

	mu        sync.Mutex
	projector *inventory.Projector
}

// NewProjectionUseCase construye el caso de uso.
func NewProjectionUseCase(txRunner repository.TxRunner, locker Locker, incremental bool, log *logger.Logger) *ProjectionUseCase {
	return &ProjectionUseCase{
		txRunner:    txRunner,
		locker:      locker,
		incremental: incremental,
		log:         log.Component("projection"),
	}
}

// Rebuild recalcula el inventario materializado. Devuelve ErrConflict si otra reconstrucción está en curso.
func (uc *ProjectionUseCase) Rebuild(ctx context.Context) (*dto.RebuildResponse, error) {
	release, err := uc.locker.Obtain(ctx, RebuildLockKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo liberar el candado de reconstrucción")
		}
	}()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	start := time.Now()
	res := &dto.RebuildResponse{}
	err = uc.txRunner.RunSnapshot(ctx, func(s repository.Store) error {
		if uc.incremental && uc.projector != nil {
			done, err := uc.applyIncremental(ctx, s, res)
			if done || err != nil {
				return err
			}
		}
		return uc.applyFull(ctx, s, res)
	})
	if err != nil {
		// el estado en memoria puede ir por delante de la BD
		uc.projector = nil
		uc.log.Error().Err(err).Msg("reconstrucción fallida")
		return nil, err
	}

	res.DurationMS = time.Since(start).Milliseconds()
	uc.log.Info().
		Str("mode", res.Mode).
		Int("movements", res.Movements).
		Int("rows", res.Rows).
		Int64("duration_ms", res.DurationMS).
		Msg("inventario reconstruido")
	return res, nil
}

func (uc *ProjectionUseCase) applyFull(ctx context.Context, s repository.Store, res *dto.RebuildResponse) error {
	movs, err := s.Movements.ListAll(ctx)
	if err != nil {
		return err
	}
	p := inventory.NewProjector()
	p.Apply(movs)
	rows := p.Rows(nil)
	if err := s.Snapshots.Upsert(ctx, rows); err != nil {
		return err
	}

	res.Mode = RebuildFull
	res.Movements = len(movs)
	res.Rows = len(rows)
	if uc.incremental {
		uc.projector = p
	}
	return nil
}

// applyIncremental devuelve done=false cuando la marca de agua no es confiable y hace falta
// la reconstrucción completa.
func (uc *ProjectionUseCase) applyIncremental(ctx context.Context, s repository.Store, res *dto.RebuildResponse) (bool, error) {
	watermark, applied := uc.projector.Watermark()
	count, err := s.Movements.CountUpTo(ctx, watermark)
	if err != nil {
		return false, err
	}
	if count != applied {
		uc.log.Warn().
			Int64("watermark", watermark).
			Int64("applied", applied).
			Int64("ledger", count).
			Msg("libro cambió por debajo de la marca de agua; reconstrucción completa")
		return false, nil
	}

	movs, err := s.Movements.ListAfter(ctx, watermark)
	if err != nil {
		return false, err
	}
	keys := uc.projector.Apply(movs)
	rows := uc.projector.Rows(keys)
	if err := s.Snapshots.Upsert(ctx, rows); err != nil {
		return false, err
	}

	res.Mode = RebuildIncremental
	res.Movements = len(movs)
	res.Rows = len(rows)
	return true, nil
}
