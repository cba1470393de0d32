package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbooks/internal/domain"
	"gstbooks/internal/service"
	"gstbooks/mocks"
)

func reportFixture() (*mocks.MockReportRepo, *mocks.MockOrgRepo, service.ReportService, uuid.UUID) {
	reportRepo := new(mocks.MockReportRepo)
	orgRepo := new(mocks.MockOrgRepo)
	svc := service.NewReportService(reportRepo, orgRepo)
	orgID := uuid.New()
	orgRepo.On("GetByID", mock.Anything, orgID).Return(&domain.Organization{
		ID:    orgID,
		Name:  "Mehta Traders",
		GSTIN: "27AAACM1234A1Z5",
	}, nil).Maybe()
	return reportRepo, orgRepo, svc, orgID
}

func str(s string) *string { return &s }

func TestReportService_Gstr1Rows(t *testing.T) {
	reportRepo, _, svc, orgID := reportFixture()

	invoices := []domain.Invoice{
		{
			InvoiceNumber:  "INV-001",
			IssueDate:      time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
			PlaceOfSupply:  "27",
			TaxableValue:   decimal.RequireFromString("200.00"),
			CGSTAmount:     decimal.RequireFromString("18.00"),
			SGSTAmount:     decimal.RequireFromString("18.00"),
			IGSTAmount:     decimal.Zero,
			CessAmount:     decimal.Zero,
			NetAmount:      decimal.RequireFromString("236.00"),
			RecipientGSTIN: str("29AAACB9876B1Z2"),
		},
	}
	reportRepo.On("InvoicesInPeriod", mock.Anything, orgID, mock.Anything).Return(invoices, nil)

	rows, err := svc.Gstr1Rows(context.Background(), orgID, domain.ReportPeriod{})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "27AAACM1234A1Z5", row.SupplierGSTIN)
	assert.Equal(t, "29AAACB9876B1Z2", row.RecipientGSTIN)
	assert.Equal(t, "05/04/2026", row.InvoiceDate)
	assert.Equal(t, "236.00", row.InvoiceValue)
	assert.Equal(t, "200.00", row.TaxableValue)
	assert.Equal(t, "18", row.Rate)
	assert.Equal(t, "18.00", row.CGST)
	assert.Equal(t, "0.00", row.IGST)
	assert.Equal(t, "Invoice", row.DocumentType)
}

func TestReportService_EffectiveRateZeroTaxable(t *testing.T) {
	reportRepo, _, svc, orgID := reportFixture()

	invoices := []domain.Invoice{
		{
			InvoiceNumber: "INV-002",
			IssueDate:     time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC),
			TaxableValue:  decimal.Zero,
			NetAmount:     decimal.Zero,
		},
	}
	reportRepo.On("InvoicesInPeriod", mock.Anything, orgID, mock.Anything).Return(invoices, nil)

	rows, err := svc.Gstr1Rows(context.Background(), orgID, domain.ReportPeriod{})

	require.NoError(t, err)
	assert.Equal(t, "0", rows[0].Rate)
}

func TestReportService_Gstr3bTotals(t *testing.T) {
	reportRepo, _, svc, orgID := reportFixture()

	reportRepo.On("PeriodTotals", mock.Anything, orgID, mock.Anything).Return(&domain.PeriodTotals{
		Taxable: decimal.RequireFromString("1500.5"),
		CGST:    decimal.RequireFromString("135"),
		SGST:    decimal.RequireFromString("135"),
		IGST:    decimal.Zero,
		Cess:    decimal.Zero,
	}, nil)

	totals, err := svc.Gstr3bTotals(context.Background(), orgID, domain.ReportPeriod{})

	require.NoError(t, err)
	assert.Equal(t, "1500.50", totals.Taxable)
	assert.Equal(t, "135.00", totals.CGST)
	assert.Equal(t, "0.00", totals.IGST)
}

func TestReportService_SummarizePeriodBounds(t *testing.T) {
	reportRepo, _, svc, orgID := reportFixture()

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	period := domain.ReportPeriod{Start: &start, End: &end}

	reportRepo.On("InvoicesInPeriod", mock.Anything, orgID, period).Return([]domain.Invoice{}, nil)
	reportRepo.On("PeriodTotals", mock.Anything, orgID, period).Return(&domain.PeriodTotals{}, nil)

	report, err := svc.SummarizePeriod(context.Background(), orgID, period)

	require.NoError(t, err)
	assert.Empty(t, report.Rows)
	assert.Equal(t, "0.00", report.Totals.Taxable)
	reportRepo.AssertExpectations(t)
}

func TestReportService_TopCustomersDefaultLimit(t *testing.T) {
	reportRepo, _, svc, orgID := reportFixture()

	reportRepo.On("TopCustomers", mock.Anything, orgID, 5).Return([]domain.TopCustomerRow{}, nil)

	_, err := svc.TopCustomers(context.Background(), orgID, 0)

	require.NoError(t, err)
	reportRepo.AssertExpectations(t)
}
