// Comando rebuild: reconstruye el inventario materializado desde el libro de movimientos.
// Pensado para cron o para ejecutar después de una carga masiva. Cada ejecución es un proceso
// nuevo sin proyección previa en memoria, así que siempre reconstruye completo.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/jhoicas/Inventario-pos/internal/app"
	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar infraestructura")
	}
	defer rt.Close()

	uc := appinventory.NewProjectionUseCase(rt.TxRunner, rt.Locker, false, log)
	res, err := uc.Rebuild(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconstrucción fallida")
		rt.Close()
		os.Exit(1)
	}
	log.Info().
		Str("mode", res.Mode).
		Int("movements", res.Movements).
		Int("rows", res.Rows).
		Int64("duration_ms", res.DurationMS).
		Msg("reconstrucción terminada")
}
