package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbooks/internal/domain"
)

// MockExpenseRepo is a mock implementation of port.ExpenseRepository.
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpenseRepo) GetByID(ctx context.Context, orgID, expenseID uuid.UUID) (*domain.Expense, error) {
	args := m.Called(ctx, orgID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Expense, int, error) {
	args := m.Called(ctx, orgID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Expense), args.Int(1), args.Error(2)
}

func (m *MockExpenseRepo) Update(ctx context.Context, e *domain.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpenseRepo) Delete(ctx context.Context, orgID, expenseID uuid.UUID) error {
	args := m.Called(ctx, orgID, expenseID)
	return args.Error(0)
}
