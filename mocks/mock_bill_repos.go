package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbooks/internal/domain"
)

// MockPurchaseBillRepo is a mock implementation of
// port.PurchaseBillRepository.
type MockPurchaseBillRepo struct {
	mock.Mock
}

func (m *MockPurchaseBillRepo) Create(ctx context.Context, bill *domain.PurchaseBill, items []domain.PurchaseBillItem) error {
	args := m.Called(ctx, bill, items)
	return args.Error(0)
}

func (m *MockPurchaseBillRepo) GetByID(ctx context.Context, orgID, billID uuid.UUID) (*domain.PurchaseBill, error) {
	args := m.Called(ctx, orgID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseBill), args.Error(1)
}

func (m *MockPurchaseBillRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.PurchaseBill, error) {
	args := m.Called(ctx, orgID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseBill), args.Error(1)
}

func (m *MockPurchaseBillRepo) ItemsByBill(ctx context.Context, billID uuid.UUID) ([]domain.PurchaseBillItem, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseBillItem), args.Error(1)
}

func (m *MockPurchaseBillRepo) NumberExists(ctx context.Context, orgID uuid.UUID, number string) (bool, error) {
	args := m.Called(ctx, orgID, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseBillRepo) UpdateStatus(ctx context.Context, orgID, billID uuid.UUID, status domain.BillStatus) error {
	args := m.Called(ctx, orgID, billID, status)
	return args.Error(0)
}

// MockJournalRepo is a mock implementation of port.JournalRepository.
type MockJournalRepo struct {
	mock.Mock
}

func (m *MockJournalRepo) Create(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepo) ListByVendor(ctx context.Context, orgID, vendorID uuid.UUID) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
