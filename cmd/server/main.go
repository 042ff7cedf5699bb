package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/config"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/logger"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/migration"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/telemetry"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/middleware"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/router"
	"github.com/tilesgalleria/backoffice/migrations"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/tilesgalleria/backoffice/docs"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Tiles Galleria Back Office API
//	@version		1.0
//	@description	Stock, sales documents, partners and expenses for the Tiles Galleria showroom.

//	@contact.name	Tiles Galleria IT
//	@contact.email	it@tilesgalleria.com.au

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}

	// The boot logger covers telemetry setup; the final logger adds the OTel core.
	boot, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx := context.Background()
	profiler, err := telemetry.StartProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Profiling.ApplicationName,
	}, boot)
	if err != nil {
		return fmt.Errorf("start profiler: %w", err)
	}
	defer func() { _ = profiler.Stop() }()

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
		SpanProfiles:      profiler != nil,
	}, boot)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			boot.Error("telemetry shutdown failed", zap.Error(err))
		}
	}()

	log, err := logger.New(logCfg, providers.ZapCore(zapcore.InfoLevel))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)
	meter := providers.Meter("backoffice")

	plugins, err := telemetry.DBPlugins(telemetry.DBConfig{
		Tracing:       cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, meter, log)
	if err != nil {
		return fmt.Errorf("database instrumentation: %w", err)
	}
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	if cfg.Database.AutoMigrate {
		if err := migrate(cfg.Database, log); err != nil {
			return err
		}
	}

	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog), persistence.WithPlugins(plugins...))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	if sqlDB, err := db.DB.DB(); err == nil {
		if err := telemetry.RegisterPoolMetrics(meter, sqlDB); err != nil {
			log.Warn("failed to register pool metrics", zap.Error(err))
		}
	}
	log.Info("database connected")

	app, err := build(ctx, cfg, db, log, meter)
	if err != nil {
		return err
	}
	defer app.close(log)

	engine, err := newEngine(cfg, app, log, meter)
	if err != nil {
		return err
	}

	app.scheduler.Start(ctx)
	if err := app.bus.Start(ctx); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	if err := app.scheduler.Stop(shutdownCtx); err != nil {
		log.Warn("scheduler stop", zap.Error(err))
	}
	if err := app.bus.Stop(shutdownCtx); err != nil {
		log.Warn("event bus stop", zap.Error(err))
	}
	log.Info("server exited")
	return nil
}

// migrate applies the embedded schema on its own connection, which the
// migrator closes.
func migrate(cfg config.DatabaseConfig, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

func newEngine(cfg *config.Config, app *application, log *zap.Logger, meter metric.Meter) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return nil, fmt.Errorf("trusted proxies: %w", err)
		}
	}

	metrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log, middleware.PanicResponse))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, "/health"))
	}
	engine.Use(metrics)
	engine.Use(logger.AccessLog(log, "/health"))
	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.IsProduction()
	engine.Use(middleware.SecureWithConfig(security))

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(cors))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if app.limiter != nil {
		engine.Use(middleware.RateLimit(app.limiter))
	}
	if cfg.Profiling.Enabled {
		engine.Use(middleware.Profiling())
	}

	engine.GET("/health", app.handlers.System.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
		}, app.auth, log),
		ginSwagger.WrapHandler(swaggerFiles.Handler))
	if app.uploadDir != "" {
		engine.Static("/uploads", app.uploadDir)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(
			middleware.JWTAuth(middleware.JWTConfig{
				Authenticator:    app.auth,
				SkipPaths:        middleware.DefaultSkipPaths,
				SkipPathPrefixes: middleware.DefaultSkipPathPrefixes,
				Logger:           log,
			}),
			middleware.Authorize(app.enforcer, log),
		)
	r.Register(router.Domains(app.handlers)...).Setup()

	return engine, nil
}
