package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tea-coop-api/internal/application/lot"
	"github.com/jhoicas/tea-coop-api/internal/application/sale"
	"github.com/jhoicas/tea-coop-api/internal/application/stock"
	"github.com/jhoicas/tea-coop-api/internal/application/usecase"
	"github.com/jhoicas/tea-coop-api/internal/application/valuation"
	infrapdf "github.com/jhoicas/tea-coop-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tea-coop-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tea-coop-api/internal/jobs"
	httpRouter "github.com/jhoicas/tea-coop-api/internal/interfaces/http"
	"github.com/jhoicas/tea-coop-api/pkg/config"
	"github.com/jhoicas/tea-coop-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	teaTypeRepo := postgres.NewTeaTypeRepository(pool)
	stockRepo := postgres.NewStockEntryRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	valuationRepo := postgres.NewValuationRepository(pool)
	soldLotRepo := postgres.NewSoldLotRepository(pool)
	brokerRepo := postgres.NewBrokerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := stock.NewLedgerUseCase(stockRepo, lotRepo, teaTypeRepo)
	lotUC := lot.NewRegistryUseCase(txRunner, lotRepo, teaTypeRepo)
	valuationUC := valuation.NewLedgerUseCase(txRunner, valuationRepo, lotRepo)
	settlementUC := sale.NewSettlementUseCase(txRunner, soldLotRepo)
	teaTypeUC := usecase.NewTeaTypeUseCase(teaTypeRepo)
	brokerUC := usecase.NewBrokerUseCase(brokerRepo)

	// PDF: comprobante de venta que se entrega al corredor
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptUC := sale.NewReceiptUseCase(soldLotRepo, receiptGenerator)

	// Snapshot diario de stock al log
	scheduler := jobs.NewScheduler(stockUC, cfg.Jobs.SnapshotCron, log)
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tea Coop API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:      stockUC,
		LotUC:        lotUC,
		ValuationUC:  valuationUC,
		SettlementUC: settlementUC,
		ReceiptUC:    receiptUC,
		TeaTypeUC:    teaTypeUC,
		BrokerUC:     brokerUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
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

	log.Info().Msg("aplicación detenida")
}
