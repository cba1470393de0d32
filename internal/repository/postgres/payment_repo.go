package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates a PostgreSQL-backed payment repository.
func NewPaymentRepo(db *sqlx.DB) port.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	p.ID = uuid.New()
	if p.ReceivedAt.IsZero() {
		p.ReceivedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO payments (id, invoice_id, method, provider, txn_id, status, amount, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		p.ID, p.InvoiceID, p.Method, p.Provider, p.TxnID, p.Status, p.Amount, p.ReceivedAt)
	if err != nil {
		return fmt.Errorf("paymentRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error) {
	payments := []domain.Payment{}
	query := `SELECT * FROM payments WHERE invoice_id = $1 ORDER BY received_at DESC`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &payments, query, invoiceID); err != nil {
		return nil, fmt.Errorf("paymentRepo.ListByInvoice: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Payment, error) {
	payments := []domain.Payment{}
	query := `
		SELECT p.*,
			i.invoice_number AS invoice_number,
			i.due_date AS due_date,
			i.payment_status AS payment_status,
			c.name AS customer_name
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE i.organization_id = $1
		ORDER BY p.received_at DESC`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &payments, query, orgID); err != nil {
		return nil, fmt.Errorf("paymentRepo.ListByOrganization: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) SumSuccessfulByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE invoice_id = $1 AND status = $2`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &sum, query, invoiceID, domain.PaymentStateSuccess); err != nil {
		return decimal.Zero, fmt.Errorf("paymentRepo.SumSuccessfulByInvoice: %w", err)
	}
	return sum, nil
}
