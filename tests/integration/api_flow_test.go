package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/tilesgalleria/backoffice/internal/application/catalog"
	financeapp "github.com/tilesgalleria/backoffice/internal/application/finance"
	identityapp "github.com/tilesgalleria/backoffice/internal/application/identity"
	partnerapp "github.com/tilesgalleria/backoffice/internal/application/partner"
	reportapp "github.com/tilesgalleria/backoffice/internal/application/report"
	tradeapp "github.com/tilesgalleria/backoffice/internal/application/trade"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/report"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/auth"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/cache"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/config"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/event"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/dto"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/handler"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/middleware"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/router"
	"github.com/tilesgalleria/backoffice/tests/testutil"
	"gorm.io/gorm"
)

// newAPI assembles the authenticated API on db the way the server does,
// without printing, uploads or redis
func newAPI(t *testing.T, db *gorm.DB, rec *testutil.Recorder) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	bus := event.NewInMemoryEventBus(nil)
	bus.Subscribe(rec)

	enforcer, err := auth.NewEnforcer(db)
	require.NoError(t, err)

	jwt := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-test-secret-with-enough-length",
		RefreshSecret:          "integration-test-refresh-secret-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		ResetTokenExpiration:   15 * time.Minute,
		Issuer:                 "backoffice-integration",
		MaxRefreshCount:        5,
	})
	authService := identityapp.NewAuthService(persistence.NewGormUserRepository(db), jwt, auth.NewMemoryTokenBlacklist(), bus, nil)

	coverage, err := catalog.NewCoverageTable(decimal.NewFromFloat(1.44), nil)
	require.NoError(t, err)

	deps := tradeDeps(db)
	deps.Events = bus
	deps.Settings = tradeapp.Settings{DefaultTaxRate: decimal.NewFromInt(10), Coverage: coverage}

	customerRepo := persistence.NewGormCustomerRepository(db)
	leadRepo := persistence.NewGormLeadRepository(db)
	dashboard := reportapp.NewDashboardService(reportapp.Sources{
		Customers:        customerRepo,
		Leads:            leadRepo,
		Products:         deps.Products,
		Invoices:         deps.Invoices,
		ManualInvoices:   deps.ManualInvoices,
		Quotations:       deps.Quotations,
		ManualQuotations: deps.ManualQuotations,
		Purchases:        deps.PurchaseOrders,
	}, cache.NewMemoryStore(), reportapp.DashboardConfig{CacheTTL: time.Minute}, nil)
	bus.Subscribe(reportapp.NewInvalidationHandler(dashboard, nil))

	handlers := router.Handlers{
		Auth:             handler.NewAuthHandler(authService),
		Products:         handler.NewProductHandler(catalogapp.NewProductService(deps.Products, bus, nil), catalogapp.NewCoverageService(coverage)),
		Categories:       handler.NewCategoryHandler(catalogapp.NewCategoryService(persistence.NewGormCategoryRepository(db))),
		Customers:        handler.NewCustomerHandler(partnerapp.NewCustomerService(customerRepo, bus, nil)),
		Vendors:          handler.NewVendorHandler(partnerapp.NewVendorService(persistence.NewGormVendorRepository(db), bus, nil)),
		Leads:            handler.NewLeadHandler(partnerapp.NewLeadService(leadRepo, bus, nil)),
		Shipping:         handler.NewShippingAddressHandler(partnerapp.NewShippingAddressService(persistence.NewGormShippingAddressRepository(db), customerRepo, bus, nil)),
		Invoices:         handler.NewInvoiceHandler(tradeapp.NewInvoiceService(deps)),
		ManualInvoices:   handler.NewManualInvoiceHandler(tradeapp.NewManualInvoiceService(deps)),
		Quotations:       handler.NewQuotationHandler(tradeapp.NewQuotationService(deps)),
		ManualQuotations: handler.NewManualQuotationHandler(tradeapp.NewManualQuotationService(deps)),
		Purchases:        handler.NewPurchaseOrderHandler(tradeapp.NewPurchaseOrderService(deps)),
		PrePurchases:     handler.NewPrePurchaseHandler(tradeapp.NewPrePurchaseService(persistence.NewGormPrePurchaseRepository(db), bus, nil)),
		Expenses:         handler.NewExpenseHandler(financeapp.NewExpenseService(persistence.NewGormExpenseRepository(db), bus, nil)),
		Dashboard:        handler.NewDashboardHandler(dashboard),
		System:           handler.NewSystemHandler("backoffice", "test"),
	}

	engine := gin.New()
	router.NewRouter(engine).
		Use(
			middleware.JWTAuth(middleware.JWTConfig{
				Authenticator:    authService,
				SkipPaths:        middleware.DefaultSkipPaths,
				SkipPathPrefixes: middleware.DefaultSkipPathPrefixes,
			}),
			middleware.Authorize(enforcer, nil),
		).
		Register(router.Domains(handlers)...).
		Setup()
	return engine
}

func login(t *testing.T, c *testutil.Client, username, role string) string {
	t.Helper()
	c.Expect(http.StatusCreated, http.MethodPost, "/api/v1/auth/register", identityapp.RegisterRequest{
		Name:     username,
		Email:    username + "@tilesgalleria.example",
		Username: username,
		Password: "correct-horse-battery",
		Role:     role,
	}, nil)
	var tokens identityapp.TokenResponse
	c.Expect(http.StatusOK, http.MethodPost, "/api/v1/auth/login", identityapp.LoginRequest{
		Login:    username,
		Password: "correct-horse-battery",
	}, &tokens)
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestAPI_InvoiceFlow(t *testing.T) {
	tdb := NewTestDB(t)
	tdb.CleanTables()

	rec := testutil.NewRecorder()
	c := testutil.NewClient(t, newAPI(t, tdb.DB, rec))

	c.Expect(http.StatusUnauthorized, http.MethodGet, "/api/v1/products", nil, nil)
	c.Token = login(t, c, "manager", "admin")

	var product catalogapp.ProductResponse
	c.Expect(http.StatusCreated, http.MethodPost, "/api/v1/products", catalogapp.ProductRequest{
		Name:        "Calacatta Matt",
		ProductType: "Floor Tiles",
		Size:        "600x1200",
		Quantity:    decimal.NewFromInt(50),
		Boxes:       decimal.NewFromInt(20),
		Price:       decimal.NewFromInt(60),
	}, &product)

	var customer partnerapp.CustomerResponse
	c.Expect(http.StatusCreated, http.MethodPost, "/api/v1/customers", partnerapp.CustomerRequest{
		Name:  "Coastline Renovations",
		Email: "accounts@coastline.example",
	}, &customer)

	stock := func() decimal.Decimal {
		var p catalogapp.ProductResponse
		c.Expect(http.StatusOK, http.MethodGet, "/api/v1/products/"+product.ID.String(), nil, &p)
		return p.Quantity
	}
	line := func(qty int64) []tradeapp.ItemRequest {
		return []tradeapp.ItemRequest{{ProductID: &product.ID, Quantity: decimal.NewFromInt(qty), Price: decimal.NewFromInt(60)}}
	}

	var inv tradeapp.InvoiceResponse
	c.Expect(http.StatusCreated, http.MethodPost, "/api/v1/invoices", tradeapp.InvoiceRequest{
		CustomerID: customer.ID,
		Items:      line(12),
	}, &inv)
	assert.NotEmpty(t, inv.Number)
	require.NotNil(t, inv.Stock)
	assert.Equal(t, 1, inv.Stock.Adjusted)
	assert.True(t, decimal.NewFromInt(38).Equal(stock()))

	c.Expect(http.StatusOK, http.MethodPatch, "/api/v1/invoices/"+inv.ID.String()+"/status", tradeapp.StatusRequest{Status: "paid"}, nil)
	assert.True(t, decimal.NewFromInt(38).Equal(stock()), "status changes leave stock alone")

	c.Expect(http.StatusOK, http.MethodPut, "/api/v1/invoices/"+inv.ID.String(), tradeapp.InvoiceRequest{
		CustomerID: customer.ID,
		Items:      line(20),
	}, nil)
	assert.True(t, decimal.NewFromInt(30).Equal(stock()))

	env := c.Expect(http.StatusUnprocessableEntity, http.MethodGet, "/api/v1/invoices/"+inv.ID.String()+"/pdf", nil, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeInvalidState, env.Error.Code)

	var summary report.Summary
	c.Expect(http.StatusOK, http.MethodGet, "/api/v1/dashboard/summary", nil, &summary)
	assert.Equal(t, int64(1), summary.Counts.Invoices)
	assert.Equal(t, int64(1), summary.Counts.Products)
	assert.Equal(t, int64(1), summary.Counts.Customers)

	var deleted handler.DeleteResult
	c.Expect(http.StatusOK, http.MethodDelete, "/api/v1/invoices/"+inv.ID.String(), nil, &deleted)
	assert.Equal(t, inv.ID, deleted.ID)
	assert.True(t, decimal.NewFromInt(50).Equal(stock()))

	c.Expect(http.StatusOK, http.MethodGet, "/api/v1/dashboard/summary", nil, &summary)
	assert.Zero(t, summary.Counts.Invoices, "deletes invalidate the cached summary")

	c.Expect(http.StatusNotFound, http.MethodGet, "/api/v1/invoices/"+inv.ID.String(), nil, nil)

	changes := rec.Changes()
	for _, want := range []string{"product:created", "customer:created", "invoice:created", "invoice:updated", "invoice:deleted"} {
		assert.Contains(t, changes, want)
	}
}

func TestAPI_UnknownCustomerLeavesStock(t *testing.T) {
	tdb := NewTestDB(t)
	tdb.CleanTables()

	c := testutil.NewClient(t, newAPI(t, tdb.DB, testutil.NewRecorder()))
	c.Token = login(t, c, "manager", "admin")

	product := seedProduct(t, tdb.DB, 10, 4)
	missing := uuid.New()
	env := c.Expect(http.StatusNotFound, http.MethodPost, "/api/v1/invoices", tradeapp.InvoiceRequest{
		CustomerID: missing,
		Items:      []tradeapp.ItemRequest{{ProductID: &product.ID, Quantity: decimal.NewFromInt(4)}},
	}, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeNotFound, env.Error.Code)

	qty, _ := stockOf(t, tdb.DB, product.ID)
	assert.True(t, decimal.NewFromInt(10).Equal(qty))
}

func TestAPI_UserRoleCannotDeleteProducts(t *testing.T) {
	tdb := NewTestDB(t)
	tdb.CleanTables()

	c := testutil.NewClient(t, newAPI(t, tdb.DB, testutil.NewRecorder()))
	c.Token = login(t, c, "counter", "user")

	product := seedProduct(t, tdb.DB, 10, 4)
	c.Expect(http.StatusOK, http.MethodGet, "/api/v1/products/"+product.ID.String(), nil, nil)

	env := c.Expect(http.StatusForbidden, http.MethodDelete, "/api/v1/products/"+product.ID.String(), nil, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrCodeForbidden, env.Error.Code)

	c.Expect(http.StatusCreated, http.MethodPost, "/api/v1/customers", partnerapp.CustomerRequest{
		Name:  "Walk-in",
		Email: "walkin@tilesgalleria.example",
	}, nil)
}
