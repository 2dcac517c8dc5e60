package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/jhoicas/jprint-api/docs"
	"github.com/jhoicas/jprint-api/internal/application/analytics"
	"github.com/jhoicas/jprint-api/internal/application/auth"
	"github.com/jhoicas/jprint-api/internal/application/dto"
	"github.com/jhoicas/jprint-api/internal/application/order"
	"github.com/jhoicas/jprint-api/internal/domain/otp"
	"github.com/jhoicas/jprint-api/internal/infrastructure/cache"
	"github.com/jhoicas/jprint-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/jprint-api/internal/infrastructure/pdf"
	"github.com/jhoicas/jprint-api/internal/infrastructure/postgres"
	"github.com/jhoicas/jprint-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/jprint-api/internal/interfaces/http"
	"github.com/jhoicas/jprint-api/pkg/config"
	"github.com/jhoicas/jprint-api/pkg/logger"
)

// @title                       JPrint API
// @version                     1.0
// @description                 Pedidos de impresión con código de retiro de 4 dígitos.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	db := postgres.NewAdapter(pool)
	txRunner := postgres.NewTxRunner(pool)
	if cfg.DB.AutoMigrate {
		if _, err := postgres.NewMigrator(db, txRunner, log.Named("migrate")).Up(ctx); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	userRepo := postgres.NewUserRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	authUC := auth.NewAuthUseCase(userRepo)
	if _, err := authUC.EnsureVendor(ctx, dto.VendorAccount{
		ID:       cfg.Vendor.ID,
		Name:     cfg.Vendor.Name,
		Email:    cfg.Vendor.Email,
		Password: cfg.Vendor.Password,
	}); err != nil {
		log.Fatal().Err(err).Msg("sembrar cuenta del vendedor")
	}

	promMetrics := metrics.New(prometheus.NewRegistry())
	opts := order.Options{
		Metrics: promMetrics,
		Logger:  log.Named("orders"),
	}

	// Caché de listados: opcional. Si Redis no responde se sigue sin caché.
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, listados sin caché")
		} else {
			defer rdb.Close()
			opts.Cache = cache.NewRedisOrderCache(rdb, cfg.Redis.TTL, log.Named("cache"))
		}
	}

	// Contenido de archivos en S3: opcional; sin bucket queda en línea en la fila del pedido.
	if cfg.Storage.Enabled() {
		s3Client, err := storage.NewS3Client(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		opts.Payloads = storage.NewS3PayloadStore(s3Client, cfg.Storage.Bucket, cfg.Storage.Prefix)
	}

	orderUC := order.NewOrderUseCase(orderRepo, otp.NewGenerator(), opts)
	receiptUC := order.NewReceiptUseCase(orderRepo, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	dashboardUC := analytics.NewDashboardUseCase(postgres.NewAnalyticsRepository(db))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(promMetrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "JPrint API",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promMetrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		OrderUC:     orderUC,
		ReceiptUC:   receiptUC,
		DashboardUC: dashboardUC,
		JWT:         cfg.JWT,
		AppName:     cfg.App.Name,
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
