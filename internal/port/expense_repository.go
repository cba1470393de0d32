package port

import (
	"context"

	"github.com/google/uuid"

	"gstbooks/internal/domain"
)

// ExpenseRepository defines the contract for expense persistence.
// Listings join the vendor name and order by expense date, newest
// first.
type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, orgID, expenseID uuid.UUID) (*domain.Expense, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Expense, int, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, orgID, expenseID uuid.UUID) error
}
