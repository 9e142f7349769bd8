// Comando import: carga una hoja de existencias (.xlsx) en una bodega.
//
//	import -file existencias.xlsx -warehouse-id 1 -user-id 1
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/jhoicas/Inventario-pos/internal/app"
	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/sheet"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

func main() {
	file := flag.String("file", "", "ruta del archivo .xlsx")
	warehouseID := flag.Int64("warehouse-id", 0, "bodega destino")
	userID := flag.Int64("user-id", 0, "usuario que registra la importación")
	flag.Parse()

	if *file == "" || *warehouseID <= 0 || *userID <= 0 {
		fmt.Fprintln(os.Stderr, "uso: import -file <hoja.xlsx> -warehouse-id <id> -user-id <id>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := run(context.Background(), cfg, log, *file, *warehouseID, *userID); err != nil {
		log.Error().Err(err).Str("file", *file).Msg("importación fallida")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, path string, warehouseID, userID int64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := sheet.Read(f)
	if err != nil {
		return err
	}

	rt, err := app.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	res, err := appinventory.NewImportUseCase(rt.TxRunner, log).
		ImportStockSheet(ctx, rows, warehouseID, userID)
	if err != nil {
		return err
	}
	log.Info().
		Int64("group_id", res.GroupID).
		Int("rows_read", res.RowsRead).
		Int("rows_skipped", res.RowsSkipped).
		Msg("importación terminada")
	return nil
}
