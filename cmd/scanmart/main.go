package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/scanmart/scanmart/internal/app"
	"github.com/scanmart/scanmart/internal/catalog"
	"github.com/scanmart/scanmart/internal/checkout"
	"github.com/scanmart/scanmart/internal/observability"
	"github.com/scanmart/scanmart/internal/order"
	"github.com/scanmart/scanmart/internal/platform/cache"
	"github.com/scanmart/scanmart/internal/platform/db"
	"github.com/scanmart/scanmart/internal/scan"
	"github.com/scanmart/scanmart/internal/seed"
	"github.com/scanmart/scanmart/internal/session"
	"github.com/scanmart/scanmart/internal/store"
	"github.com/scanmart/scanmart/internal/user"
	"github.com/scanmart/scanmart/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var (
		storeRepo   store.Repository
		catalogRepo catalog.Repository
		orderRepo   order.Repository
		userRepo    user.Repository
	)
	if cfg.PGDSN != "" {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		storeRepo = store.NewPostgresRepository(pool)
		catalogRepo = catalog.NewPostgresRepository(pool)
		orderRepo = order.NewPostgresRepository(pool)
		userRepo = user.NewPostgresRepository(pool)
	} else {
		logger.Info("no PG_DSN set, using in-memory repositories")
		storeRepo = store.NewMemoryRepository()
		catalogRepo = catalog.NewMemoryRepository()
		orderRepo = order.NewMemoryRepository()
		userRepo = user.NewMemoryRepository()
	}

	var receipts session.ReceiptEnqueuer
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, catalog cache and receipt jobs disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		catalogRepo = catalog.NewCachedRepository(catalogRepo, redisClient, cfg.CatalogCacheTTL, logger)

		jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		if err != nil {
			logger.Warn("init job client", slog.Any("error", err))
		} else {
			defer func() {
				if err := jobClient.Close(); err != nil {
					logger.Warn("job client close", slog.Any("error", err))
				}
			}()
			receipts = jobClient
		}
	}

	userService := user.NewService(userRepo)
	if err := seed.Load(ctx, logger, storeRepo, catalogRepo, userService); err != nil {
		logger.Error("seed demo data", slog.Any("error", err))
		os.Exit(1)
	}

	storeService := store.NewService(storeRepo)
	catalogService := catalog.NewService(catalogRepo)
	orderService := order.NewService(orderRepo)

	checkoutCfg := checkout.Config{
		InitialDelay: cfg.CheckoutInitialDelay,
		StepWeight:   cfg.CheckoutStepWeight,
		StepInterval: cfg.CheckoutStepInterval,
		HoldDuration: cfg.CheckoutHold,
	}
	sessionService := session.NewService(
		logger,
		session.NewManager(),
		storeService,
		catalogService,
		orderService,
		scan.NewStoreProvider(cfg.StoreScanDelay),
		scan.NewBarcodeProvider(cfg.ProductScanDelay),
		checkoutCfg,
		receipts,
	)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		StoreHandler:   store.NewHandler(logger, storeService),
		CatalogHandler: catalog.NewHandler(logger, catalogService),
		OrderHandler:   order.NewHandler(logger, orderService),
		ScanHandler:    scan.NewHandler(logger, storeService),
		SessionHandler: session.NewHandler(logger, sessionService),
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
