package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbooks/internal/domain"
	"gstbooks/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Gstr1Rows(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) ([]domain.GstrRow, error) {
	args := m.Called(ctx, orgID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GstrRow), args.Error(1)
}

func (m *MockReportService) Gstr3bTotals(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) (*domain.PeriodTotalsExport, error) {
	args := m.Called(ctx, orgID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodTotalsExport), args.Error(1)
}

func (m *MockReportService) SummarizePeriod(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) (*service.PeriodReport, error) {
	args := m.Called(ctx, orgID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PeriodReport), args.Error(1)
}

func (m *MockReportService) SalesSummary(ctx context.Context, orgID uuid.UUID) (*domain.SalesSummary, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesSummary), args.Error(1)
}

func (m *MockReportService) TaxLiability(ctx context.Context, orgID uuid.UUID) (*domain.TaxLiability, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxLiability), args.Error(1)
}

func (m *MockReportService) TopCustomers(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.TopCustomerRow, error) {
	args := m.Called(ctx, orgID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopCustomerRow), args.Error(1)
}
