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

	"github.com/invorya/pos-api/internal/application/auth"
	"github.com/invorya/pos-api/internal/application/inventory"
	"github.com/invorya/pos-api/internal/application/scope"
	"github.com/invorya/pos-api/internal/application/transfer"
	"github.com/invorya/pos-api/internal/application/usecase"
	"github.com/invorya/pos-api/internal/infrastructure/cache"
	"github.com/invorya/pos-api/internal/infrastructure/messaging"
	"github.com/invorya/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/invorya/pos-api/internal/interfaces/http"
	"github.com/invorya/pos-api/pkg/config"
	"github.com/invorya/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App)
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

	// Cache de alcances: opcional, el servicio funciona sin Redis
	var scopeCache scope.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		scopeCache = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de alcances habilitado")
	}

	// Alertas de stock bajo: opcionales, sin broker se descartan
	var notifier inventory.LowStockNotifier = inventory.NopNotifier{}
	if cfg.AMQP.URL != "" {
		amqpNotifier, err := messaging.NewAMQPNotifier(cfg.AMQP)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("alertas de stock bajo habilitadas")
	}

	employeeRepo := postgres.NewEmployeeRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	trRepo := postgres.NewTransferRequestRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeoutMS)

	scopeResolver := scope.NewCatalogResolver(
		employeeRepo, scopeCache,
		time.Duration(cfg.Redis.ScopeTTLMS)*time.Millisecond, log,
	)

	ledgerUC := inventory.NewLedgerUseCase(txRunner, invRepo, productRepo, warehouseRepo, scopeResolver, notifier, log)
	queryUC := inventory.NewQueryUseCase(invRepo, movRepo, scopeResolver)
	lowStockUC := inventory.NewLowStockUseCase(invRepo, scopeResolver)
	transferUC := transfer.NewWorkflowUseCase(txRunner, ledgerUC, trRepo, productRepo, warehouseRepo, scopeResolver, log)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, warehouseRepo, scopeResolver)
	authUC := auth.NewAuthUseCase(employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Invorya POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		LedgerUC:    ledgerUC,
		QueryUC:     queryUC,
		LowStockUC:  lowStockUC,
		TransferUC:  transferUC,
		WarehouseUC: warehouseUC,
		ProductUC:   productUC,
		EmployeeUC:  employeeUC,
		JWTSecret:   cfg.JWT.Secret,
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
