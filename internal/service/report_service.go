package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbooks/internal/domain"
	"gstbooks/internal/money"
	"gstbooks/internal/port"
)

// gstrDateLayout is the date format used by every report
// serialization, so the JSON and CSV renderings of one query never
// disagree.
const gstrDateLayout = "02/01/2006"

// PeriodReport is the on-demand summary of a reporting period. It is
// computed per request and never persisted.
type PeriodReport struct {
	Period domain.ReportPeriod       `json:"period"`
	Rows   []domain.GstrRow          `json:"rows"`
	Totals domain.PeriodTotalsExport `json:"totals"`
}

// ReportService builds statutory and management reports over persisted
// invoices.
type ReportService interface {
	Gstr1Rows(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) ([]domain.GstrRow, error)
	Gstr3bTotals(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) (*domain.PeriodTotalsExport, error)
	SummarizePeriod(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) (*PeriodReport, error)
	SalesSummary(ctx context.Context, orgID uuid.UUID) (*domain.SalesSummary, error)
	TaxLiability(ctx context.Context, orgID uuid.UUID) (*domain.TaxLiability, error)
	TopCustomers(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.TopCustomerRow, error)
}

type reportService struct {
	reportRepo port.ReportRepository
	orgRepo    port.OrganizationRepository
}

// NewReportService creates a ReportService implementation.
func NewReportService(reportRepo port.ReportRepository, orgRepo port.OrganizationRepository) ReportService {
	return &reportService{reportRepo: reportRepo, orgRepo: orgRepo}
}

func (s *reportService) Gstr1Rows(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) ([]domain.GstrRow, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("report.Gstr1Rows: %w", err)
	}
	invoices, err := s.reportRepo.InvoicesInPeriod(ctx, orgID, period)
	if err != nil {
		return nil, fmt.Errorf("report.Gstr1Rows: %w", err)
	}

	rows := make([]domain.GstrRow, 0, len(invoices))
	for _, inv := range invoices {
		recipientGSTIN := ""
		if inv.RecipientGSTIN != nil {
			recipientGSTIN = *inv.RecipientGSTIN
		}
		rows = append(rows, domain.GstrRow{
			SupplierGSTIN:  org.GSTIN,
			RecipientGSTIN: recipientGSTIN,
			InvoiceNumber:  inv.InvoiceNumber,
			InvoiceDate:    inv.IssueDate.Format(gstrDateLayout),
			InvoiceValue:   money.Format(inv.NetAmount),
			PlaceOfSupply:  inv.PlaceOfSupply,
			Rate:           effectiveRate(inv),
			TaxableValue:   money.Format(inv.TaxableValue),
			IGST:           money.Format(inv.IGSTAmount),
			CGST:           money.Format(inv.CGSTAmount),
			SGST:           money.Format(inv.SGSTAmount),
			Cess:           money.Format(inv.CessAmount),
			EWayBillNo:     "",
			DocumentType:   "Invoice",
		})
	}
	return rows, nil
}

// effectiveRate is (cgst+sgst+igst)/taxable*100. A zero taxable value
// renders as "0" rather than dividing.
func effectiveRate(inv domain.Invoice) string {
	if inv.TaxableValue.IsZero() {
		return "0"
	}
	taxSum := inv.CGSTAmount.Add(inv.SGSTAmount).Add(inv.IGSTAmount)
	rate := taxSum.Div(inv.TaxableValue).Mul(decimal.NewFromInt(100))
	return rate.Round(money.Places).String()
}

func (s *reportService) Gstr3bTotals(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) (*domain.PeriodTotalsExport, error) {
	totals, err := s.reportRepo.PeriodTotals(ctx, orgID, period)
	if err != nil {
		return nil, fmt.Errorf("report.Gstr3bTotals: %w", err)
	}
	return &domain.PeriodTotalsExport{
		Taxable: money.Format(totals.Taxable),
		CGST:    money.Format(totals.CGST),
		SGST:    money.Format(totals.SGST),
		IGST:    money.Format(totals.IGST),
		Cess:    money.Format(totals.Cess),
	}, nil
}

func (s *reportService) SummarizePeriod(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) (*PeriodReport, error) {
	rows, err := s.Gstr1Rows(ctx, orgID, period)
	if err != nil {
		return nil, err
	}
	totals, err := s.Gstr3bTotals(ctx, orgID, period)
	if err != nil {
		return nil, err
	}
	return &PeriodReport{Period: period, Rows: rows, Totals: *totals}, nil
}

func (s *reportService) SalesSummary(ctx context.Context, orgID uuid.UUID) (*domain.SalesSummary, error) {
	return s.reportRepo.SalesSummary(ctx, orgID)
}

func (s *reportService) TaxLiability(ctx context.Context, orgID uuid.UUID) (*domain.TaxLiability, error) {
	return s.reportRepo.TaxLiability(ctx, orgID)
}

func (s *reportService) TopCustomers(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.TopCustomerRow, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.reportRepo.TopCustomers(ctx, orgID, limit)
}
