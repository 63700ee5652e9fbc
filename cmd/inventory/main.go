package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/retail-suite/internal/application/catalog"
	"github.com/jhoicas/retail-suite/internal/application/stock"
	"github.com/jhoicas/retail-suite/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/retail-suite/internal/interfaces/http"
	"github.com/jhoicas/retail-suite/pkg/config"
	"github.com/jhoicas/retail-suite/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: "inventory",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando servicio de inventario")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := stock.NewLedgerUseCase(txRunner, productRepo, movementRepo)
	productUC := catalog.NewProductUseCase(txRunner, productRepo, ledger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name + "-inventory",
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if docs := httpRouter.SwaggerUI("./docs/inventory-swagger.json", "Retail Suite - Inventory API"); docs != nil {
		app.Use(docs)
	} else {
		log.Warn().Msg("documento swagger no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "inventory"})
	})

	httpRouter.InventoryRouter(app, httpRouter.InventoryRouterDeps{
		Ledger:    ledger,
		ProductUC: productUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.InventoryAddr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servicio de inventario detenido")
}
