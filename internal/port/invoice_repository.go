package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbooks/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence.
// Create writes the invoice and its items as one logical write; called
// under a TxManager transaction it is atomic with party resolution.
// The store enforces UNIQUE (organization_id, invoice_number); Create
// surfaces a violation as domain.ErrNumberConflict.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice, items []domain.InvoiceItem) error
	GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (*domain.Invoice, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	ItemsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceItem, error)
	NumberExists(ctx context.Context, orgID uuid.UUID, number string) (bool, error)
	UpdatePaymentStatus(ctx context.Context, orgID, invoiceID uuid.UUID, status domain.PaymentStatus) error
}

// PaymentRepository defines the contract for payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Payment, error)
	SumSuccessfulByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)
}
