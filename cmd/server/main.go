package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "github.com/Fayyez/UniKhata-sub000/docs"
	catalogapp "github.com/Fayyez/UniKhata-sub000/internal/application/catalog"
	integrationapp "github.com/Fayyez/UniKhata-sub000/internal/application/integration"
	storeapp "github.com/Fayyez/UniKhata-sub000/internal/application/store"
	tradeapp "github.com/Fayyez/UniKhata-sub000/internal/application/trade"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/adapter"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/auth"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/cache"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/logger"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/persistence"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/scheduler"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/secret"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/storage"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/telemetry"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/handler"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			UniKhata API
//	@version		1.0
//	@description	Multi-store order aggregation and courier dispatch

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()
	// records also go to the OTLP log pipeline when it is enabled
	log = tel.Logs.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	log.Info("Starting UniKhata",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormOpts := []logger.GormLoggerOption{}
	if cfg.Telemetry.DBSlowQueryThresh > 0 {
		gormOpts = append(gormOpts, logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	}
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), gormOpts...)
	dbCtx, dbCancel := context.WithTimeout(ctx, 15*time.Second)
	db, err := persistence.OpenDatabase(dbCtx, &cfg.Database, gormLog)
	dbCancel()
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Warn("Failed to enable database tracing", zap.Error(err))
	}
	if err := db.CheckSchema(ctx); err != nil {
		log.Fatal("Database schema check failed, run cmd/migrate first", zap.Error(err))
	}
	log.Info("Database connected successfully")

	var sealer persistence.TokenSealer
	if cfg.Security.TokenEncryptionKey != "" {
		cipher, err := secret.NewTokenCipher(cfg.Security.TokenEncryptionKey)
		if err != nil {
			log.Fatal("Invalid token encryption key", zap.Error(err))
		}
		sealer = cipher
	} else {
		log.Warn("No token encryption key configured, integration tokens are stored in plain text")
	}

	storeRepo := persistence.NewGormStoreRepository(db.DB, sealer)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	policy, err := integration.ParseMatchedProductUpdatePolicy(cfg.Integration.MatchedProductPolicy)
	if err != nil {
		log.Fatal("Invalid matched product policy", zap.Error(err))
	}
	archiver, err := storage.NewSnapshotArchiver(ctx, &cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize snapshot archiver", zap.Error(err))
	}
	adapters, err := adapter.NewDefaultFactory(adapter.Deps{
		Reconciler: integration.NewCatalogReconciler(productRepo, orderRepo, policy),
		Archiver:   archiver,
		Logger:     log,
		Timeout:    cfg.Integration.GatewayTimeout,
	})
	if err != nil {
		log.Fatal("Failed to register integration adapters", zap.Error(err))
	}

	syncLock, lockCloser, err := cache.NewSyncLockFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).CreateLock()
	if err != nil {
		log.Fatal("Failed to create sync lock", zap.Error(err))
	}
	defer func() {
		if err := lockCloser.Close(); err != nil {
			log.Error("Error closing sync lock", zap.Error(err))
		}
	}()

	integrationMetrics, err := telemetry.NewIntegrationMetrics(tel.Meter.Meter("unikhata/integration"))
	if err != nil {
		log.Fatal("Failed to create integration metrics", zap.Error(err))
	}

	storeService := storeapp.NewStoreService(storeRepo, storeapp.DefaultIntegrations{
		EStoreEndpoint:  cfg.Integration.DefaultEStoreEndpoint,
		CourierEndpoint: cfg.Integration.DefaultCourierEndpoint,
	}, log)
	integrationService := storeapp.NewIntegrationService(storeRepo, log)
	orderService := tradeapp.NewOrderService(orderRepo, log)
	productService := catalogapp.NewProductService(productRepo)
	orchestrator := integrationapp.NewOrchestrator(storeRepo, orderRepo, adapters,
		integrationapp.WithSyncLock(syncLock, cfg.Integration.SyncLockTTL),
		integrationapp.WithMetrics(integrationMetrics),
		integrationapp.WithLogger(log),
	)
	callbackService := integrationapp.NewCourierCallbackService(storeRepo, orderRepo, orderService, log)

	if cfg.Scheduler.Enabled {
		syncScheduler, err := scheduler.NewStoreSyncScheduler(scheduler.StoreSyncConfig{
			Interval:          cfg.Scheduler.Interval,
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
			QueueSize:         scheduler.DefaultStoreSyncConfig().QueueSize,
		}, storeRepo, scheduler.SyncFunc(func(ctx context.Context, storeID, ownerID uuid.UUID) (scheduler.SyncSummary, error) {
			res, err := orchestrator.PullNewOrders(ctx, storeID, ownerID)
			if err != nil {
				return scheduler.SyncSummary{}, err
			}
			return scheduler.SyncSummary{
				ProductsCreated: res.ProductsCreated,
				ProductsMatched: res.ProductsMatched,
				OrdersCreated:   res.OrdersCreated,
				OrdersSkipped:   res.OrdersSkipped,
			}, nil
		}), log)
		if err != nil {
			log.Fatal("Invalid scheduler configuration", zap.Error(err))
		}
		if err := syncScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start store sync scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := syncScheduler.Stop(stopCtx); err != nil {
				log.Error("Error stopping store sync scheduler", zap.Error(err))
			}
		}()
		log.Info("Store sync scheduler started", zap.Duration("interval", cfg.Scheduler.Interval))
	}

	checks := map[string]handler.HealthCheck{"database": db.PingContext}
	if redisLock, ok := syncLock.(*cache.RedisSyncLock); ok {
		checks["redis"] = redisLock.Ping
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, checks).
		WithDatabaseStats(func() (any, error) { return db.PoolStats() })

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.NewEngine(router.EngineDeps{
		Config:     cfg,
		Logger:     log,
		JWT:        auth.NewJWTService(cfg.JWT),
		Authorizer: storeService,
		Meter:      tel.Meter.Meter("unikhata/http"),
	}, router.Handlers{
		System:          systemHandler,
		Stores:          handler.NewStoreHandler(storeService),
		Integrations:    handler.NewIntegrationHandler(integrationService),
		Orders:          handler.NewOrderHandler(orderService, orchestrator),
		Products:        handler.NewProductHandler(productService),
		CourierCallback: handler.NewCourierCallbackHandler(callbackService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Server exited gracefully")
}
