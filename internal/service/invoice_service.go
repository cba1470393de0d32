package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbooks/internal/domain"
	"gstbooks/internal/extract"
	"gstbooks/internal/money"
	"gstbooks/internal/port"
	"gstbooks/internal/tax"
)

// InvoiceItemInput is one line of a create-invoice request. Pricing
// fields arrive as strings and are parsed exactly; ProductID, when
// set, fills unit price and GST rate from the catalog for any field
// left empty.
type InvoiceItemInput struct {
	ProductID    *uuid.UUID `json:"product_id"`
	Description  string     `json:"description"`
	Quantity     string     `json:"qty" binding:"required"`
	UnitPrice    string     `json:"price"`
	GSTRate      string     `json:"gst_rate"`
	LineDiscount string     `json:"line_discount"`
}

// CreateInvoiceInput is the DTO for invoice creation.
type CreateInvoiceInput struct {
	CustomerID    *uuid.UUID         `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerGSTIN string             `json:"customer_gstin"`
	InvoiceNumber string             `json:"invoice_number"`
	InvoiceType   string             `json:"invoice_type"`
	IssueDate     *time.Time         `json:"issue_date"`
	DueDate       *time.Time         `json:"due_date"`
	PlaceOfSupply string             `json:"place_of_supply"`
	Items         []InvoiceItemInput `json:"items" binding:"required"`
}

// InvoiceWithItems pairs an invoice with its lines for detail reads.
type InvoiceWithItems struct {
	Invoice *domain.Invoice     `json:"invoice"`
	Items   []domain.InvoiceItem `json:"items"`
}

// InvoiceService drives the outward-supply lifecycle: creation with
// tax computation and number resolution, reads, rendering and email
// delivery.
type InvoiceService interface {
	Create(ctx context.Context, orgID, branchID, userID uuid.UUID, input CreateInvoiceInput) (*InvoiceWithItems, error)
	GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (*InvoiceWithItems, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	RenderPDF(ctx context.Context, orgID, invoiceID uuid.UUID) ([]byte, error)
	EmailInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) error
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	customerRepo port.CustomerRepository
	productRepo  port.ProductRepository
	orgRepo      port.OrganizationRepository
	resolver     PartyResolver
	txm          port.TxManager
	renderer     port.DocumentRenderer
	emailSender  port.EmailSender
}

// NewInvoiceService creates an InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	customerRepo port.CustomerRepository,
	productRepo port.ProductRepository,
	orgRepo port.OrganizationRepository,
	resolver PartyResolver,
	txm port.TxManager,
	renderer port.DocumentRenderer,
	emailSender port.EmailSender,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orgRepo:      orgRepo,
		resolver:     resolver,
		txm:          txm,
		renderer:     renderer,
		emailSender:  emailSender,
	}
}

func (s *invoiceService) Create(ctx context.Context, orgID, branchID, userID uuid.UUID, input CreateInvoiceInput) (*InvoiceWithItems, error) {
	if len(input.Items) == 0 {
		return nil, domain.NewValidationError("items", "invoice requires at least one item")
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("invoice.Create: %w", err)
	}

	taxItems, items, err := s.buildItems(ctx, orgID, input.Items)
	if err != nil {
		return nil, err
	}

	totals, err := tax.ComputeInvoiceTotals(taxItems, tax.SupplyContext{
		OrgStateCode:  org.StateCode,
		PlaceOfSupply: input.PlaceOfSupply,
	})
	if err != nil {
		return nil, err
	}

	issueDate := time.Now().UTC()
	if input.IssueDate != nil {
		issueDate = *input.IssueDate
	}
	invoiceType := input.InvoiceType
	if invoiceType == "" {
		invoiceType = "tax_invoice"
	}

	inv := &domain.Invoice{
		OrganizationID: orgID,
		BranchID:       branchID,
		CreatedBy:      userID,
		InvoiceType:    invoiceType,
		IssueDate:      issueDate,
		DueDate:        input.DueDate,
		PlaceOfSupply:  input.PlaceOfSupply,
		TaxableValue:   totals.TaxableValue,
		CGSTAmount:     totals.CGST,
		SGSTAmount:     totals.SGST,
		IGSTAmount:     totals.IGST,
		CessAmount:     decimal.Zero,
		NetAmount:      totals.Net,
		PaymentStatus:  domain.PaymentStatusPending,
	}

	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		if input.CustomerID != nil {
			customer, err := s.customerRepo.GetByID(ctx, orgID, *input.CustomerID)
			if err != nil {
				return err
			}
			inv.CustomerID = &customer.ID
		} else if input.CustomerName != "" || input.CustomerGSTIN != "" {
			customerID, err := s.resolver.ResolveOrCreate(ctx, domain.PartyCustomer,
				input.CustomerName, input.CustomerGSTIN, orgID, branchID)
			if err != nil {
				return err
			}
			inv.CustomerID = &customerID
		}

		// Re-check the number inside the transaction so two concurrent
		// creations cannot both pass the collision check.
		number, err := tax.ResolveInvoiceNumber(input.InvoiceNumber, func(n string) (bool, error) {
			return s.invoiceRepo.NumberExists(ctx, orgID, n)
		})
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number

		return s.invoiceRepo.Create(ctx, inv, items)
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNumberConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("invoice.Create: %w", err)
	}

	return &InvoiceWithItems{Invoice: inv, Items: items}, nil
}

// buildItems parses item inputs, filling gaps from the product catalog.
func (s *invoiceService) buildItems(ctx context.Context, orgID uuid.UUID, inputs []InvoiceItemInput) ([]tax.LineItem, []domain.InvoiceItem, error) {
	if len(inputs) == 0 {
		return nil, nil, domain.NewValidationError("items", "invoice must have at least one line item")
	}

	taxItems := make([]tax.LineItem, 0, len(inputs))
	items := make([]domain.InvoiceItem, 0, len(inputs))
	for i, in := range inputs {
		qty := money.ParseLoose(in.Quantity)
		if !qty.IsPositive() {
			return nil, nil, domain.NewValidationError(fmt.Sprintf("items[%d].qty", i), "quantity must be positive")
		}
		price := money.ParseLoose(in.UnitPrice)
		rate := money.ParseLoose(in.GSTRate)
		discount := money.ParseLoose(in.LineDiscount)
		description := in.Description

		if in.ProductID != nil {
			product, err := s.productRepo.GetByID(ctx, orgID, *in.ProductID)
			if err != nil {
				return nil, nil, fmt.Errorf("invoice.buildItems: %w", err)
			}
			if in.UnitPrice == "" {
				price = product.UnitPrice
			}
			if in.GSTRate == "" {
				rate = product.GSTRate
			}
			if description == "" {
				description = product.Name
			}
		}
		if price.IsNegative() {
			return nil, nil, domain.NewValidationError(fmt.Sprintf("items[%d].price", i), "unit price must not be negative")
		}
		if discount.IsNegative() {
			return nil, nil, domain.NewValidationError(fmt.Sprintf("items[%d].line_discount", i), "discount must not be negative")
		}

		taxItems = append(taxItems, tax.LineItem{
			Description:  description,
			Quantity:     qty,
			UnitPrice:    price,
			LineDiscount: discount,
			GSTRate:      rate,
		})
		items = append(items, domain.InvoiceItem{
			ProductID:    in.ProductID,
			Description:  description,
			Quantity:     qty,
			UnitPrice:    price,
			GSTRate:      rate,
			LineDiscount: discount,
			LineTotal:    money.Round2(qty.Mul(price).Sub(discount)),
		})
	}
	return taxItems, items, nil
}

func (s *invoiceService) GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (*InvoiceWithItems, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, orgID, invoiceID)
	if err != nil {
		return nil, err
	}
	items, err := s.invoiceRepo.ItemsByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return &InvoiceWithItems{Invoice: inv, Items: items}, nil
}

func (s *invoiceService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.ListByOrganization(ctx, orgID, offset, limit)
}

func (s *invoiceService) RenderPDF(ctx context.Context, orgID, invoiceID uuid.UUID) ([]byte, error) {
	fields, _, err := s.renderFields(ctx, orgID, invoiceID)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.Render(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	return pdf, nil
}

func (s *invoiceService) EmailInvoice(ctx context.Context, orgID, invoiceID uuid.UUID) error {
	fields, detail, err := s.renderFields(ctx, orgID, invoiceID)
	if err != nil {
		return err
	}
	inv := detail.Invoice
	if inv.CustomerID == nil {
		return domain.NewValidationError("customer_id", "invoice has no customer to email")
	}
	customer, err := s.customerRepo.GetByID(ctx, orgID, *inv.CustomerID)
	if err != nil {
		return err
	}
	if customer.Email == "" {
		return domain.NewValidationError("customer.email", "customer has no email address")
	}

	pdf, err := s.renderer.Render(ctx, fields)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return fmt.Errorf("invoice.EmailInvoice: %w", err)
	}

	return s.emailSender.SendInvoiceEmail(ctx, port.InvoiceEmail{
		ToAddress:     customer.Email,
		ToName:        customer.Name,
		InvoiceNumber: inv.InvoiceNumber,
		TotalAmount:   money.Format(inv.NetAmount),
		OrgName:       org.Name,
		Attachment:    pdf,
		AttachmentExt: "pdf",
	})
}

func (s *invoiceService) renderFields(ctx context.Context, orgID, invoiceID uuid.UUID) (map[string]any, *InvoiceWithItems, error) {
	detail, err := s.GetByID(ctx, orgID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, nil, fmt.Errorf("invoice.renderFields: %w", err)
	}
	var customer *domain.Customer
	if detail.Invoice.CustomerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, orgID, *detail.Invoice.CustomerID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("invoice.renderFields: %w", err)
		}
	}
	return extract.InvoiceFieldMap(org, detail.Invoice, detail.Items, customer), detail, nil
}
