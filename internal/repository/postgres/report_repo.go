package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a PostgreSQL-backed report repository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

// periodClause appends issue-date bounds for the given period, starting
// at the next positional placeholder.
func periodClause(period domain.ReportPeriod, args []interface{}) (string, []interface{}) {
	clause := ""
	if period.Start != nil {
		args = append(args, *period.Start)
		clause += fmt.Sprintf(" AND i.issue_date >= $%d", len(args))
	}
	if period.End != nil {
		args = append(args, *period.End)
		clause += fmt.Sprintf(" AND i.issue_date <= $%d", len(args))
	}
	return clause, args
}

func (r *reportRepo) InvoicesInPeriod(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) ([]domain.Invoice, error) {
	args := []interface{}{orgID}
	clause, args := periodClause(period, args)

	invoices := []domain.Invoice{}
	query := `
		SELECT ` + invoiceColumns + `,
			c.name AS customer_name, c.gstin AS recipient_gstin
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE i.organization_id = $1` + clause + `
		ORDER BY i.issue_date, i.created_at`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &invoices, query, args...); err != nil {
		return nil, fmt.Errorf("reportRepo.InvoicesInPeriod: %w", err)
	}
	return invoices, nil
}

func (r *reportRepo) PeriodTotals(ctx context.Context, orgID uuid.UUID, period domain.ReportPeriod) (*domain.PeriodTotals, error) {
	args := []interface{}{orgID}
	clause, args := periodClause(period, args)

	var totals domain.PeriodTotals
	query := `
		SELECT
			COALESCE(SUM(i.taxable_value), 0) AS taxable,
			COALESCE(SUM(i.cgst_amount), 0) AS cgst,
			COALESCE(SUM(i.sgst_amount), 0) AS sgst,
			COALESCE(SUM(i.igst_amount), 0) AS igst,
			COALESCE(SUM(i.cess_amount), 0) AS cess
		FROM invoices i
		WHERE i.organization_id = $1` + clause
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &totals, query, args...); err != nil {
		return nil, fmt.Errorf("reportRepo.PeriodTotals: %w", err)
	}
	return &totals, nil
}

func (r *reportRepo) SalesSummary(ctx context.Context, orgID uuid.UUID) (*domain.SalesSummary, error) {
	var summary domain.SalesSummary
	query := `
		SELECT
			COUNT(*) AS total_invoices,
			COALESCE(SUM(net_amount), 0) AS total_sales,
			COALESCE(AVG(net_amount), 0) AS avg_invoice_value
		FROM invoices
		WHERE organization_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &summary, query, orgID); err != nil {
		return nil, fmt.Errorf("reportRepo.SalesSummary: %w", err)
	}
	return &summary, nil
}

func (r *reportRepo) TaxLiability(ctx context.Context, orgID uuid.UUID) (*domain.TaxLiability, error) {
	var liability domain.TaxLiability
	query := `
		SELECT
			COALESCE(SUM(cgst_amount), 0) AS total_cgst,
			COALESCE(SUM(sgst_amount), 0) AS total_sgst,
			COALESCE(SUM(igst_amount), 0) AS total_igst,
			COALESCE(SUM(cgst_amount + sgst_amount + igst_amount), 0) AS total_tax
		FROM invoices
		WHERE organization_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &liability, query, orgID); err != nil {
		return nil, fmt.Errorf("reportRepo.TaxLiability: %w", err)
	}
	return &liability, nil
}

func (r *reportRepo) TopCustomers(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.TopCustomerRow, error) {
	rows := []domain.TopCustomerRow{}
	query := `
		SELECT
			c.id,
			c.name,
			COUNT(i.id) AS invoice_count,
			COALESCE(SUM(i.net_amount), 0) AS total_spent
		FROM customers c
		JOIN invoices i ON i.customer_id = c.id
		WHERE c.organization_id = $1
		GROUP BY c.id, c.name
		ORDER BY total_spent DESC
		LIMIT $2`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, orgID, limit); err != nil {
		return nil, fmt.Errorf("reportRepo.TopCustomers: %w", err)
	}
	return rows, nil
}
