package main

import (
	"fmt"
	"log"
	"net/http"

	"gstbooks/internal/config"
	"gstbooks/internal/email/noop"
	"gstbooks/internal/email/ses"
	"gstbooks/internal/extractor/httpocr"
	"gstbooks/internal/handler"
	"gstbooks/internal/port"
	"gstbooks/internal/renderer/httppdf"
	"gstbooks/internal/repository/postgres"
	"gstbooks/internal/router"
	"gstbooks/internal/service"
	s3storage "gstbooks/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	orgRepo := postgres.NewOrganizationRepo(db)
	branchRepo := postgres.NewBranchRepo(db)
	userRepo := postgres.NewUserRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	vendorRepo := postgres.NewVendorRepo(db)
	productRepo := postgres.NewProductRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	expenseRepo := postgres.NewExpenseRepo(db)
	billRepo := postgres.NewPurchaseBillRepo(db)
	journalRepo := postgres.NewJournalRepo(db)
	reportRepo := postgres.NewReportRepo(db)
	txm := postgres.NewTxManager(db)

	// Collaborators
	storage, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	extractor := httpocr.NewClient(&cfg.Extractor)
	renderer := httppdf.NewClient(&cfg.Renderer)

	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Services
	authSvc := service.NewAuthService(userRepo, orgRepo, branchRepo, txm, cfg.JWT)
	resolver := service.NewPartyResolver(customerRepo, vendorRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	vendorSvc := service.NewVendorService(vendorRepo)
	productSvc := service.NewProductService(productRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, customerRepo, productRepo, orgRepo, resolver, txm, renderer, emailSender)
	paymentSvc := service.NewPaymentService(paymentRepo, invoiceRepo, txm)
	expenseSvc := service.NewExpenseService(expenseRepo)
	ingestionSvc := service.NewIngestionService(billRepo, resolver, txm, extractor, storage, cfg.S3)
	billSvc := service.NewBillService(billRepo, storage, cfg.S3)
	journalSvc := service.NewJournalService(journalRepo, billRepo, txm)
	reportSvc := service.NewReportService(reportRepo, orgRepo)

	// Handlers
	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Customer: handler.NewCustomerHandler(customerSvc),
		Vendor:   handler.NewVendorHandler(vendorSvc),
		Product:  handler.NewProductHandler(productSvc),
		Invoice:  handler.NewInvoiceHandler(invoiceSvc, paymentSvc),
		Payment:  handler.NewPaymentHandler(paymentSvc),
		Expense:  handler.NewExpenseHandler(expenseSvc),
		Bill:     handler.NewBillHandler(ingestionSvc, billSvc),
		Journal:  handler.NewJournalHandler(journalSvc),
		Report:   handler.NewReportHandler(reportSvc),
		Health:   handler.NewHealthHandler(db),
	}

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, handlers)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
