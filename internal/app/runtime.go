// Package app arma las dependencias compartidas por los binarios: almacenamiento, candado de
// reconstrucción y zona horaria de los reportes.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/lock"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// Runtime dependencias de infraestructura ya conectadas.
type Runtime struct {
	TxRunner repository.TxRunner
	Locker   appinventory.Locker
	Location *time.Location

	closers []func()
}

// Open conecta el almacenamiento según DB_DRIVER (aplicando el esquema en PostgreSQL) y el
// candado según REDIS_ADDR.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Runtime, error) {
	loc, err := time.LoadLocation(cfg.Report.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE %q: %w", cfg.Report.TimeZone, err)
	}
	rt := &Runtime{Location: loc}

	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		rt.TxRunner = memory.New()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)
		if err := postgres.Migrate(ctx, pool); err != nil {
			rt.Close()
			return nil, fmt.Errorf("aplicar esquema: %w", err)
		}
		rt.TxRunner = postgres.NewTxRunner(pool)
	}

	if cfg.Redis.Addr == "" {
		rt.Locker = lock.NewLocalLocker()
		return rt, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		rt.Close()
		return nil, fmt.Errorf("conexión a Redis %s: %w", cfg.Redis.Addr, err)
	}
	rt.closers = append(rt.closers, func() { _ = rdb.Close() })
	rt.Locker = lock.NewRedisLocker(rdb, cfg.Redis.LockTTL)
	log.Info().Str("redis", cfg.Redis.Addr).Msg("candado de reconstrucción en Redis")
	return rt, nil
}

// Close libera las conexiones en orden inverso.
func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}
