package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/handler"
)

// Handlers holds every API handler
type Handlers struct {
	Auth             *handler.AuthHandler
	Products         *handler.ProductHandler
	Categories       *handler.CategoryHandler
	Customers        *handler.CustomerHandler
	Vendors          *handler.VendorHandler
	Leads            *handler.LeadHandler
	Shipping         *handler.ShippingAddressHandler
	Invoices         *handler.InvoiceHandler
	ManualInvoices   *handler.ManualInvoiceHandler
	Quotations       *handler.QuotationHandler
	ManualQuotations *handler.ManualQuotationHandler
	Purchases        *handler.PurchaseOrderHandler
	PrePurchases     *handler.PrePurchaseHandler
	Expenses         *handler.ExpenseHandler
	Dashboard        *handler.DashboardHandler
	Uploads          *handler.UploadHandler
	System           *handler.SystemHandler

	// AuthLimiter runs ahead of the credential endpoints when set
	AuthLimiter gin.HandlerFunc
}

// Domains builds the route groups of the back office API
func Domains(h Handlers) []RouteRegistrar {
	authGroup := NewDomainGroup("auth", "/auth")
	passwordGroup := NewDomainGroup("password", "/password")
	if h.AuthLimiter != nil {
		authGroup.Use(h.AuthLimiter)
		passwordGroup.Use(h.AuthLimiter)
	}
	authGroup.
		POST("/register", h.Auth.Register).
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.Refresh).
		POST("/logout", h.Auth.Logout).
		GET("/profile", h.Auth.Profile).
		PUT("/update", h.Auth.UpdateProfile)
	passwordGroup.
		POST("/forgot", h.Auth.ForgotPassword).
		POST("/reset/:token", h.Auth.ResetPassword)

	users := NewDomainGroup("users", "/users").
		PUT("/:id", h.Auth.UpdateUser)

	products := NewDomainGroup("products", "/products").
		GET("/coverage", h.Products.Coverage).
		GET("/coverage/boxes", h.Products.Boxes).
		POST("/bulk/import", h.Products.Import).
		GET("/bulk/export", h.Products.Export).
		PATCH("/:id/stock", h.Products.SetStock).
		CRUD(h.Products)

	categories := NewDomainGroup("categories", "/categories").
		POST("", h.Categories.Create).
		GET("", h.Categories.List)

	customers := NewDomainGroup("customers", "/customers").CRUD(h.Customers)
	customers.Group("addresses", "/:id/addresses").
		POST("", h.Customers.AddAddress).
		PUT("/:addressId", h.Customers.UpdateAddress).
		DELETE("/:addressId", h.Customers.RemoveAddress)

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.Info)

	return []RouteRegistrar{
		authGroup,
		passwordGroup,
		users,
		products,
		categories,
		customers,
		NewDomainGroup("vendors", "/vendors").CRUD(h.Vendors),
		NewDomainGroup("leads", "/leads").CRUD(h.Leads),
		NewDomainGroup("shipping", "/shipping").CRUD(h.Shipping),
		NewDomainGroup("invoices", "/invoices").Document(h.Invoices),
		NewDomainGroup("manual-invoices", "/manual-invoices").Document(h.ManualInvoices),
		NewDomainGroup("quotations", "/quotations").Document(h.Quotations),
		NewDomainGroup("manual-quotations", "/manual-quotations").Document(h.ManualQuotations),
		NewDomainGroup("purchases", "/purchases").Document(h.Purchases),
		NewDomainGroup("pre-purchases", "/pre-purchases").CRUD(h.PrePurchases),
		NewDomainGroup("expenses", "/expenses").CRUD(h.Expenses),
		NewDomainGroup("dashboard", "/dashboard").GET("/summary", h.Dashboard.Summary),
		NewDomainGroup("upload", "/upload").POST("", h.Uploads.Upload),
		system,
	}
}
