package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/idcashier/backend/internal/bootstrap"
	"github.com/idcashier/backend/internal/domain/billing"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/idcashier/backend/internal/infrastructure/cache"
	"github.com/idcashier/backend/internal/infrastructure/config"
	"github.com/idcashier/backend/internal/infrastructure/logger"
	"github.com/idcashier/backend/internal/infrastructure/migration"
	"github.com/idcashier/backend/internal/infrastructure/payment"
	"github.com/idcashier/backend/internal/infrastructure/persistence"
	"github.com/idcashier/backend/internal/infrastructure/printing"
	"github.com/idcashier/backend/internal/infrastructure/storage"
	"github.com/idcashier/backend/internal/infrastructure/telemetry"
	"github.com/idcashier/backend/internal/interfaces/http/middleware"
	"github.com/idcashier/backend/internal/interfaces/http/router"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/idcashier/backend/docs"
)

//	@title			idCashier API
//	@version		1.0
//	@description	Multi-tenant point of sale backend: catalog, sales, returns, HR, reports and subscriptions.

//	@contact.name	idCashier Support
//	@contact.url	https://github.com/idcashier/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry comes up first so log export can tee into the logger
	providers, err := telemetry.Setup(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	if cfg.Telemetry.LogsEnabled {
		log, err = logger.New(logCfg, providers.ZapCore(zapcore.InfoLevel))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting idCashier backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", bootstrap.Version),
	)

	var profiler *telemetry.Profiler
	if cfg.Telemetry.ProfilingEnabled {
		profiler, err = telemetry.StartProfiler(cfg.Telemetry.ServiceName, cfg.Telemetry.PyroscopeAddress, log)
		if err != nil {
			log.Fatal("Failed to start profiler", zap.Error(err))
		}
	}

	metrics, err := telemetry.NewBusinessMetrics(providers.Meter("idcashier"))
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, dbSystem(cfg.Database.Driver), log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}

	if cfg.Migration.AutoRun {
		if err := migrate(cfg, db, log); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Optional infrastructure
	ctx := context.Background()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		log.Warn("Redis disabled, token revocations and callback idempotency are kept in memory")
	}

	var objectStorage shared.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3Storage(ctx, cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3
	}

	var renderer printing.PDFRenderer
	if cfg.Printing.Enabled {
		renderer = printing.NewChromedpRenderer(cfg.Printing, log)
	}

	var gateway billing.PaymentGateway
	if cfg.Payment.Enabled {
		duitku, err := payment.NewDuitkuAdapter(payment.NewDuitkuConfig(cfg.Payment), log)
		if err != nil {
			log.Fatal("Failed to initialize payment gateway", zap.Error(err))
		}
		gateway = duitku
	}

	api, err := bootstrap.NewAPI(bootstrap.Dependencies{
		Config:   cfg,
		DB:       db.DB,
		Pinger:   db,
		Redis:    redisClient,
		Storage:  objectStorage,
		Renderer: renderer,
		Gateway:  gateway,
		Metrics:  metrics,
		Logger:   log,
	})
	if err != nil {
		log.Fatal("Failed to wire API", zap.Error(err))
	}

	var loginLimiter, globalLimiter *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		api.Security.LoginLimiter = loginLimiter
	}
	if cfg.HTTP.RateLimitEnabled {
		globalLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
	}

	var httpMetrics *telemetry.HTTPMetrics
	if cfg.Telemetry.MetricsEnabled {
		httpMetrics = telemetry.NewHTTPMetrics()
	}

	engine, err := router.NewEngine(router.EngineConfig{
		App:            cfg.App,
		HTTP:           cfg.HTTP,
		Swagger:        cfg.Swagger,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: providers.TracingEnabled(),
		Profiling:      profiler != nil,
		Metrics:        httpMetrics,
		RateLimiter:    globalLimiter,
		Logger:         log,
	}, api.Handlers.System)
	if err != nil {
		log.Fatal("Failed to create HTTP engine", zap.Error(err))
	}
	router.NewRouter(engine).Register(api.Registrars()...).Setup()

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
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if loginLimiter != nil {
		loginLimiter.Close()
	}
	if globalLimiter != nil {
		globalLimiter.Close()
	}
	if renderer != nil {
		if err := renderer.Close(); err != nil {
			log.Warn("Error closing PDF renderer", zap.Error(err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Error closing Redis client", zap.Error(err))
		}
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Warn("Error stopping profiler", zap.Error(err))
		}
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down telemetry", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrate brings the schema up to date. PostgreSQL runs the versioned SQL
// files; sqlite, used for single-store installs and development, is created
// from the models.
func migrate(cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if cfg.Database.Driver == "sqlite" {
		log.Info("Auto-migrating sqlite schema")
		return db.AutoMigrate()
	}

	path := cfg.Migration.Path
	if path == "" {
		path = "migrations"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	// the migrator closes its handle, so it gets its own
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, abs, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return m.Up()
}

func dbSystem(driver string) string {
	if driver == "sqlite" {
		return "sqlite"
	}
	return "postgresql"
}
