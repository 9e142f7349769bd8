package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Inventario-pos/internal/app"
	appinventory "github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/reporting"
	infrapdf "github.com/jhoicas/Inventario-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/sheet"
	httpRouter "github.com/jhoicas/Inventario-pos/internal/interfaces/http"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	rt, err := app.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar infraestructura")
	}
	defer rt.Close()

	projectionUC := appinventory.NewProjectionUseCase(rt.TxRunner, rt.Locker, cfg.Projection.Incremental, log)
	movementUC := appinventory.NewMovementUseCase(rt.TxRunner, log)
	disposalUC := appinventory.NewDisposalUseCase(rt.TxRunner, log)
	importUC := appinventory.NewImportUseCase(rt.TxRunner, log)

	// PDF: reporte diario de ventas, ganancia y fiados
	pdfGenerator := infrapdf.NewDailyReportGenerator()
	valuationUC := reporting.NewValuationUseCase(rt.TxRunner, pdfGenerator, rt.Location, cfg.App.Name, log)

	server := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	server.Use(recover.New())
	server.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	server.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario POS API",
	}))

	server.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(server, httpRouter.RouterDeps{
		Projection: projectionUC,
		Movements:  movementUC,
		Disposals:  disposalUC,
		Import:     importUC,
		Valuation:  valuationUC,
		ReadSheet:  sheet.Read,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := server.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
