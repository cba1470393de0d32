package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

type expenseRepo struct {
	db *sqlx.DB
}

// NewExpenseRepo creates a PostgreSQL-backed expense repository.
func NewExpenseRepo(db *sqlx.DB) port.ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	now := time.Now().UTC()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `
		INSERT INTO expenses (id, organization_id, category, vendor_id, amount, gst_percent, expense_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		e.ID, e.OrganizationID, e.Category, e.VendorID, e.Amount, e.GSTPercent,
		e.ExpenseDate, e.Notes, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return mapNotFound(err, "expenseRepo.Create")
	}
	return nil
}

func (r *expenseRepo) GetByID(ctx context.Context, orgID, expenseID uuid.UUID) (*domain.Expense, error) {
	var e domain.Expense
	query := `SELECT * FROM expenses WHERE id = $1 AND organization_id = $2`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &e, query, expenseID, orgID); err != nil {
		return nil, mapNotFound(err, "expenseRepo.GetByID")
	}
	return &e, nil
}

func (r *expenseRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE organization_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, orgID); err != nil {
		return nil, 0, mapNotFound(err, "expenseRepo.ListByOrganization count")
	}

	expenses := []domain.Expense{}
	query := `
		SELECT e.*, v.name AS vendor_name
		FROM expenses e
		LEFT JOIN vendors v ON v.id = e.vendor_id
		WHERE e.organization_id = $1
		ORDER BY e.expense_date DESC
		OFFSET $2 LIMIT $3`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &expenses, query, orgID, offset, limit); err != nil {
		return nil, 0, mapNotFound(err, "expenseRepo.ListByOrganization")
	}
	return expenses, total, nil
}

func (r *expenseRepo) Update(ctx context.Context, e *domain.Expense) error {
	e.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE expenses
		SET category = $1, vendor_id = $2, amount = $3, gst_percent = $4, expense_date = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND organization_id = $9`
	res, err := ext(ctx, r.db).ExecContext(ctx, query,
		e.Category, e.VendorID, e.Amount, e.GSTPercent, e.ExpenseDate, e.Notes, e.UpdatedAt,
		e.ID, e.OrganizationID)
	if err != nil {
		return mapNotFound(err, "expenseRepo.Update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *expenseRepo) Delete(ctx context.Context, orgID, expenseID uuid.UUID) error {
	query := `DELETE FROM expenses WHERE id = $1 AND organization_id = $2`
	res, err := ext(ctx, r.db).ExecContext(ctx, query, expenseID, orgID)
	if err != nil {
		return mapNotFound(err, "expenseRepo.Delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
