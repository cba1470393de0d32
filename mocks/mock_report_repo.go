package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbooks/internal/domain"
)

// MockReportRepo is a mock implementation of port.ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) InvoicesInPeriod(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) ([]domain.Invoice, error) {
	args := m.Called(ctx, orgID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockReportRepo) PeriodTotals(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) (*domain.PeriodTotals, error) {
	args := m.Called(ctx, orgID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodTotals), args.Error(1)
}

func (m *MockReportRepo) SalesSummary(ctx context.Context, orgID uuid.UUID) (*domain.SalesSummary, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesSummary), args.Error(1)
}

func (m *MockReportRepo) TaxLiability(ctx context.Context, orgID uuid.UUID) (*domain.TaxLiability, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxLiability), args.Error(1)
}

func (m *MockReportRepo) TopCustomers(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.TopCustomerRow, error) {
	args := m.Called(ctx, orgID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopCustomerRow), args.Error(1)
}
