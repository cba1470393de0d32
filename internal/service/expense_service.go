package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbooks/internal/domain"
	"gstbooks/internal/money"
	"gstbooks/internal/port"
)

// ExpenseInput is the DTO for expense writes. Amount and GSTPercent
// arrive as strings and are parsed loosely; an omitted GSTPercent
// means an unregistered or exempt outgoing and records as 0.
type ExpenseInput struct {
	Category    string     `json:"category" binding:"required"`
	VendorID    *uuid.UUID `json:"vendor_id"`
	Amount      string     `json:"amount" binding:"required"`
	GSTPercent  string     `json:"gst_percent"`
	ExpenseDate *time.Time `json:"expense_date"`
	Notes       string     `json:"notes"`
}

// ExpenseService manages the expense book.
type ExpenseService interface {
	Create(ctx context.Context, orgID uuid.UUID, input ExpenseInput) (*domain.Expense, error)
	GetByID(ctx context.Context, orgID, expenseID uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Expense, int, error)
	Update(ctx context.Context, orgID, expenseID uuid.UUID, input ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, orgID, expenseID uuid.UUID) error
}

type expenseService struct {
	repo port.ExpenseRepository
}

// NewExpenseService creates an ExpenseService implementation.
func NewExpenseService(repo port.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func parseExpenseAmounts(input ExpenseInput) (amount, gstPercent decimal.Decimal, err error) {
	amount = money.ParseLoose(input.Amount)
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, domain.NewValidationError("amount", "amount must be positive")
	}
	if input.GSTPercent != "" {
		gstPercent = money.ParseLoose(input.GSTPercent)
		if gstPercent.IsNegative() {
			return decimal.Zero, decimal.Zero, domain.NewValidationError("gst_percent", "GST percent must not be negative")
		}
	}
	return amount, gstPercent, nil
}

func (s *expenseService) Create(ctx context.Context, orgID uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	amount, gstPercent, err := parseExpenseAmounts(input)
	if err != nil {
		return nil, err
	}
	expenseDate := time.Now().UTC()
	if input.ExpenseDate != nil {
		expenseDate = *input.ExpenseDate
	}

	e := &domain.Expense{
		OrganizationID: orgID,
		Category:       input.Category,
		VendorID:       input.VendorID,
		Amount:         money.Round2(amount),
		GSTPercent:     gstPercent,
		ExpenseDate:    expenseDate,
		Notes:          input.Notes,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *expenseService) GetByID(ctx context.Context, orgID, expenseID uuid.UUID) (*domain.Expense, error) {
	return s.repo.GetByID(ctx, orgID, expenseID)
}

func (s *expenseService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Expense, int, error) {
	return s.repo.ListByOrganization(ctx, orgID, offset, limit)
}

func (s *expenseService) Update(ctx context.Context, orgID, expenseID uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	e, err := s.repo.GetByID(ctx, orgID, expenseID)
	if err != nil {
		return nil, err
	}
	amount, gstPercent, err := parseExpenseAmounts(input)
	if err != nil {
		return nil, err
	}
	e.Category = input.Category
	e.VendorID = input.VendorID
	e.Amount = money.Round2(amount)
	e.GSTPercent = gstPercent
	if input.ExpenseDate != nil {
		e.ExpenseDate = *input.ExpenseDate
	}
	e.Notes = input.Notes
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *expenseService) Delete(ctx context.Context, orgID, expenseID uuid.UUID) error {
	return s.repo.Delete(ctx, orgID, expenseID)
}
