package main

import (
	"context"
	"fmt"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	catalogapp "github.com/tilesgalleria/backoffice/internal/application/catalog"
	financeapp "github.com/tilesgalleria/backoffice/internal/application/finance"
	identityapp "github.com/tilesgalleria/backoffice/internal/application/identity"
	inventoryapp "github.com/tilesgalleria/backoffice/internal/application/inventory"
	mediaapp "github.com/tilesgalleria/backoffice/internal/application/media"
	partnerapp "github.com/tilesgalleria/backoffice/internal/application/partner"
	reportapp "github.com/tilesgalleria/backoffice/internal/application/report"
	tradeapp "github.com/tilesgalleria/backoffice/internal/application/trade"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/auth"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/cache"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/config"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/event"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/printing"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/scheduler"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/storage"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/telemetry"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/handler"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/middleware"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/router"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// application is everything the HTTP engine and shutdown path need
type application struct {
	handlers  router.Handlers
	auth      *identityapp.AuthService
	enforcer  *casbin.SyncedEnforcer
	limiter   *middleware.RateLimiter
	bus       *event.InMemoryEventBus
	scheduler *scheduler.Scheduler
	uploadDir string

	redis    *redis.Client
	renderer *printing.ChromeRenderer
}

func (a *application) close(log *zap.Logger) {
	if a.renderer != nil {
		if err := a.renderer.Close(); err != nil {
			log.Warn("failed to close print browser", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Warn("failed to close redis", zap.Error(err))
		}
	}
}

func build(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger, meter metric.Meter) (*application, error) {
	app := &application{
		bus:       event.NewInMemoryEventBus(log, event.WithHandlerTimeout(5*time.Second)),
		scheduler: scheduler.New(log),
	}

	store, client, err := cache.NewFactory(cfg.Redis, cache.WithLogger(log)).Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	app.redis = client

	var blacklist auth.TokenBlacklist
	if client != nil {
		blacklist = auth.NewRedisTokenBlacklist(client)
	} else {
		memBlacklist := auth.NewMemoryTokenBlacklist()
		blacklist = memBlacklist
		app.addTask(log, scheduler.Task{
			Name:     "token-blacklist-cleanup",
			Interval: 10 * time.Minute,
			Run: func(context.Context) error {
				if n := memBlacklist.Cleanup(); n > 0 {
					log.Debug("pruned revoked tokens", zap.Int("count", n))
				}
				return nil
			},
		})
	}
	if mem, ok := store.(*cache.MemoryStore); ok {
		app.addTask(log, scheduler.Task{
			Name:     "cache-cleanup",
			Interval: 5 * time.Minute,
			Run: func(context.Context) error {
				mem.Cleanup()
				return nil
			},
		})
	}

	enforcer, err := auth.NewEnforcer(db.DB)
	if err != nil {
		return nil, fmt.Errorf("init enforcer: %w", err)
	}
	app.enforcer = enforcer

	if cfg.HTTP.RateLimitEnabled {
		app.limiter = app.newLimiter(log, "rate-limit-cleanup", cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
	}
	var authLimit *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimit = app.newLimiter(log, "auth-rate-limit-cleanup", cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	shippingRepo := persistence.NewGormShippingAddressRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	prePurchaseRepo := persistence.NewGormPrePurchaseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	manualInvoiceRepo := persistence.NewGormManualInvoiceRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	manualQuotationRepo := persistence.NewGormManualQuotationRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseOrderRepository(db.DB)

	coverage, err := catalog.NewCoverageTable(cfg.Inventory.DefaultCoverage, cfg.Inventory.Coverage)
	if err != nil {
		return nil, err
	}
	direction, err := inventory.ParseDirection(cfg.Inventory.PurchaseDirection)
	if err != nil {
		return nil, err
	}

	// Services
	authService := identityapp.NewAuthService(userRepo, auth.NewJWTService(cfg.JWT), blacklist, app.bus, log)
	app.auth = authService
	productService := catalogapp.NewProductService(productRepo, app.bus, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	coverageService := catalogapp.NewCoverageService(coverage)
	customerService := partnerapp.NewCustomerService(customerRepo, app.bus, log)
	vendorService := partnerapp.NewVendorService(vendorRepo, app.bus, log)
	leadService := partnerapp.NewLeadService(leadRepo, app.bus, log)
	shippingService := partnerapp.NewShippingAddressService(shippingRepo, customerRepo, app.bus, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, app.bus, log)
	prePurchaseService := tradeapp.NewPrePurchaseService(prePurchaseRepo, app.bus, log)

	deps := tradeapp.Deps{
		Scope:            persistence.NewGormTransactionScope(db.DB),
		Ledger:           inventoryapp.NewLedgerService(inventory.Policy{PurchaseDirection: direction}, log, meter),
		Invoices:         invoiceRepo,
		ManualInvoices:   manualInvoiceRepo,
		Quotations:       quotationRepo,
		ManualQuotations: manualQuotationRepo,
		PurchaseOrders:   purchaseRepo,
		Products:         productRepo,
		Customers:        customerRepo,
		Vendors:          vendorRepo,
		Events:           app.bus,
		Logger:           log,
		Settings: tradeapp.Settings{
			DefaultTaxRate: cfg.Inventory.DefaultTaxRate,
			Coverage:       coverage,
		},
	}
	if cfg.Printing.Enabled {
		templates, err := printing.NewTemplates(printing.Company{
			Name:    cfg.Printing.CompanyName,
			ABN:     cfg.Printing.CompanyABN,
			Address: cfg.Printing.CompanyAddress,
			Phone:   cfg.Printing.CompanyPhone,
		})
		if err != nil {
			return nil, err
		}
		app.renderer = printing.NewChromeRenderer(printing.ChromeConfig{
			ExecPath:  cfg.Printing.ChromePath,
			Timeout:   cfg.Printing.Timeout,
			NoSandbox: cfg.Printing.NoSandbox,
		}, templates, log)
		deps.Renderer = app.renderer
	}

	dashboard := reportapp.NewDashboardService(reportapp.Sources{
		Customers:        customerRepo,
		Leads:            leadRepo,
		Products:         productRepo,
		Invoices:         invoiceRepo,
		ManualInvoices:   manualInvoiceRepo,
		Quotations:       quotationRepo,
		ManualQuotations: manualQuotationRepo,
		Purchases:        purchaseRepo,
	}, store, reportapp.DashboardConfig{
		RecentLimit: cfg.Dashboard.RecentLimit,
		CacheTTL:    cfg.Dashboard.CacheTTL,
	}, log)

	invalidation := reportapp.NewInvalidationHandler(dashboard, log)
	app.bus.Subscribe(invalidation)
	changes, err := telemetry.NewChangeCounter(meter)
	if err != nil {
		return nil, err
	}
	app.bus.Subscribe(changes)

	objects, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	if local, ok := objects.(*storage.LocalStorage); ok {
		app.uploadDir = local.Root()
	}
	uploadService := mediaapp.NewUploadService(objects, cfg.HTTP.MaxBodySize, log)

	checks := []handler.HealthCheck{{
		Name:  "database",
		Check: func(ctx context.Context) error { return pingDB(ctx, db) },
	}}
	if client != nil {
		checks = append(checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}

	app.handlers = router.Handlers{
		Auth:             handler.NewAuthHandler(authService),
		Products:         handler.NewProductHandler(productService, coverageService),
		Categories:       handler.NewCategoryHandler(categoryService),
		Customers:        handler.NewCustomerHandler(customerService),
		Vendors:          handler.NewVendorHandler(vendorService),
		Leads:            handler.NewLeadHandler(leadService),
		Shipping:         handler.NewShippingAddressHandler(shippingService),
		Invoices:         handler.NewInvoiceHandler(tradeapp.NewInvoiceService(deps)),
		ManualInvoices:   handler.NewManualInvoiceHandler(tradeapp.NewManualInvoiceService(deps)),
		Quotations:       handler.NewQuotationHandler(tradeapp.NewQuotationService(deps)),
		ManualQuotations: handler.NewManualQuotationHandler(tradeapp.NewManualQuotationService(deps)),
		Purchases:        handler.NewPurchaseOrderHandler(tradeapp.NewPurchaseOrderService(deps)),
		PrePurchases:     handler.NewPrePurchaseHandler(prePurchaseService),
		Expenses:         handler.NewExpenseHandler(expenseService),
		Dashboard:        handler.NewDashboardHandler(dashboard),
		Uploads:          handler.NewUploadHandler(uploadService),
		System:           handler.NewSystemHandler(cfg.App.Name, version, checks...),
	}
	if authLimit != nil {
		app.handlers.AuthLimiter = middleware.RateLimit(authLimit)
	}
	return app, nil
}

func (a *application) newLimiter(log *zap.Logger, task string, limit int, window time.Duration) *middleware.RateLimiter {
	limiter := middleware.NewRateLimiter(limit, window)
	a.addTask(log, scheduler.Task{
		Name:     task,
		Interval: window,
		Run: func(context.Context) error {
			limiter.Cleanup(2 * window)
			return nil
		},
	})
	return limiter
}

func (a *application) addTask(log *zap.Logger, t scheduler.Task) {
	if err := a.scheduler.Add(t); err != nil {
		log.Warn("failed to schedule task", zap.String("task", t.Name), zap.Error(err))
	}
}

func pingDB(ctx context.Context, db *persistence.Database) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
