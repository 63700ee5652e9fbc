package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/retail-suite/internal/application/reconciliation"
	"github.com/jhoicas/retail-suite/internal/application/sales"
	"github.com/jhoicas/retail-suite/internal/application/stock"
	"github.com/jhoicas/retail-suite/internal/application/wishlist"
	"github.com/jhoicas/retail-suite/internal/infrastructure/gateway"
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
		Service: "sales",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("inventory_url", cfg.Integration.BaseURL).
		Msg("iniciando servicio de ventas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	saleRepo := postgres.NewSaleRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	ledgerTxRunner := postgres.NewTxRunner(pool)
	wishlistTxRunner := postgres.NewWishlistTxRunner(pool)

	inventoryGateway := gateway.NewClient(cfg.Integration.BaseURL, cfg.Integration.Timeout(), log.Component("gateway"))

	saleUC := sales.NewCreateSaleUseCase(saleRepo, inventoryGateway, log.Component("sales"))
	ledger := stock.NewLedgerUseCase(ledgerTxRunner, productRepo, movementRepo)
	manageUC := wishlist.NewManageUseCase(wishlistRepo)
	convertUC := wishlist.NewConvertUseCase(
		wishlistTxRunner, ledger, cfg.Wishlist.AdjustStockOnConvert, log.Component("wishlist"),
	)

	// Reconciliador: reintenta fuera de banda los descuentos de stock que
	// quedaron como advertencia al crear ventas.
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	if cfg.Reconciler.Enabled {
		worker := reconciliation.NewWorker(
			saleRepo, inventoryGateway,
			cfg.Reconciler.Interval(), cfg.Reconciler.BatchSize,
			log.Component("reconciler"),
		)
		go worker.Start(workerCtx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name + "-sales",
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if docs := httpRouter.SwaggerUI("./docs/sales-swagger.json", "Retail Suite - Sales API"); docs != nil {
		app.Use(docs)
	} else {
		log.Warn().Msg("documento swagger no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "sales"})
	})

	httpRouter.SalesRouter(app, httpRouter.SalesRouterDeps{
		SaleUC:     saleUC,
		Gateway:    inventoryGateway,
		WishlistUC: manageUC,
		ConvertUC:  convertUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.SalesAddr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servicio de ventas detenido")
}
