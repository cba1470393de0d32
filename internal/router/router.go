package router

import (
	"github.com/gin-gonic/gin"

	"gstbooks/internal/domain"
	"gstbooks/internal/handler"
	"gstbooks/internal/middleware"
	"gstbooks/internal/service"
)

// Handlers bundles everything Setup wires into the engine.
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Vendor   *handler.VendorHandler
	Product  *handler.ProductHandler
	Invoice  *handler.InvoiceHandler
	Payment  *handler.PaymentHandler
	Expense  *handler.ExpenseHandler
	Bill     *handler.BillHandler
	Journal  *handler.JournalHandler
	Report   *handler.ReportHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	customers := protected.Group("/customers")
	customers.POST("", h.Customer.Create)
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.GetByID)
	customers.PUT("/:id", h.Customer.Update)
	customers.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Customer.Delete)

	vendors := protected.Group("/vendors")
	vendors.POST("", h.Vendor.Create)
	vendors.GET("", h.Vendor.List)
	vendors.GET("/:id", h.Vendor.GetByID)
	vendors.PUT("/:id", h.Vendor.Update)
	vendors.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Vendor.Delete)

	products := protected.Group("/products")
	products.POST("", h.Product.Create)
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.GetByID)
	products.PUT("/:id", h.Product.Update)
	products.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Product.Delete)

	invoices := protected.Group("/invoices")
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.GET("/:id/pdf", h.Invoice.DownloadPDF)
	invoices.POST("/:id/email", h.Invoice.Email)
	invoices.GET("/:id/payments", h.Invoice.ListPayments)

	payments := protected.Group("/payments")
	payments.POST("", h.Payment.Record)
	payments.GET("", h.Payment.List)

	expenses := protected.Group("/expenses")
	expenses.POST("", h.Expense.Create)
	expenses.GET("", h.Expense.List)
	expenses.GET("/:id", h.Expense.GetByID)
	expenses.PUT("/:id", h.Expense.Update)
	expenses.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Expense.Delete)

	bills := protected.Group("/bills")
	bills.POST("/ingest", h.Bill.Ingest)
	bills.GET("", h.Bill.List)
	bills.GET("/:id", h.Bill.GetByID)
	bills.GET("/:id/artifact", h.Bill.ArtifactURL)
	bills.POST("/:id/review", h.Bill.MarkReviewed)

	journal := protected.Group("/journal-entries")
	journal.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleAccountant), h.Journal.SaveDraft)
	journal.GET("", h.Journal.List)

	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleAccountant))
	reports.GET("/gstr1", h.Report.Gstr1)
	reports.GET("/gstr3b", h.Report.Gstr3b)
	reports.GET("/period", h.Report.PeriodSummary)
	reports.GET("/period.xlsx", h.Report.PeriodWorkbook)
	reports.GET("/sales-summary", h.Report.SalesSummary)
	reports.GET("/tax-liability", h.Report.TaxLiability)
	reports.GET("/top-customers", h.Report.TopCustomers)

	return r
}
