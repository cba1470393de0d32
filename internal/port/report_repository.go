package port

import (
	"context"

	"github.com/google/uuid"

	"gstbooks/internal/domain"
)

// ReportRepository defines the read-only aggregation queries behind
// statutory and management reports. Reads run under normal
// read-committed semantics; they are not isolated from concurrent
// invoice creation.
type ReportRepository interface {
	// InvoicesInPeriod returns an organization's invoices ordered by
	// issue date ascending, joined with the recipient's GSTIN. Nil
	// bounds leave that side of the period open.
	InvoicesInPeriod(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) ([]domain.Invoice, error)
	// PeriodTotals sums taxable/CGST/SGST/IGST/cess over the period.
	PeriodTotals(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) (*domain.PeriodTotals, error)
	SalesSummary(ctx context.Context, orgID uuid.UUID) (*domain.SalesSummary, error)
	TaxLiability(ctx context.Context, orgID uuid.UUID) (*domain.TaxLiability, error)
	TopCustomers(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.TopCustomerRow, error)
}
