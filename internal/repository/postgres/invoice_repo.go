package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

const invoiceColumns = `
	i.id, i.organization_id, i.branch_id, i.customer_id, i.created_by,
	i.invoice_number, i.invoice_type, i.issue_date, i.due_date, i.place_of_supply,
	i.taxable_value, i.cgst_amount, i.sgst_amount, i.igst_amount, i.cess_amount,
	i.net_amount, i.payment_status, i.created_at, i.updated_at`

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a PostgreSQL-backed invoice repository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice, items []domain.InvoiceItem) error {
	now := time.Now().UTC()
	inv.ID = uuid.New()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `
		INSERT INTO invoices (
			id, organization_id, branch_id, customer_id, created_by,
			invoice_number, invoice_type, issue_date, due_date, place_of_supply,
			taxable_value, cgst_amount, sgst_amount, igst_amount, cess_amount,
			net_amount, payment_status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		)`

	e := ext(ctx, r.db)
	_, err := e.ExecContext(ctx, query,
		inv.ID, inv.OrganizationID, inv.BranchID, inv.CustomerID, inv.CreatedBy,
		inv.InvoiceNumber, inv.InvoiceType, inv.IssueDate, inv.DueDate, inv.PlaceOfSupply,
		inv.TaxableValue, inv.CGSTAmount, inv.SGSTAmount, inv.IGSTAmount, inv.CessAmount,
		inv.NetAmount, inv.PaymentStatus, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "invoice_number") {
			return domain.ErrNumberConflict
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	itemQuery := `
		INSERT INTO invoice_items (id, invoice_id, product_id, description, qty, price, gst_rate, line_discount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for idx := range items {
		item := &items[idx]
		item.ID = uuid.New()
		item.InvoiceID = inv.ID
		if _, err := e.ExecContext(ctx, itemQuery,
			item.ID, item.InvoiceID, item.ProductID, item.Description,
			item.Quantity, item.UnitPrice, item.GSTRate, item.LineDiscount, item.LineTotal); err != nil {
			return fmt.Errorf("invoiceRepo.Create item: %w", err)
		}
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, orgID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	query := `
		SELECT ` + invoiceColumns + `,
			c.name AS customer_name, c.gstin AS recipient_gstin
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE i.id = $1 AND i.organization_id = $2`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &inv, query, invoiceID, orgID); err != nil {
		return nil, mapNotFound(err, "invoiceRepo.GetByID")
	}
	return &inv, nil
}

func (r *invoiceRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM invoices WHERE organization_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, orgID); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByOrganization count: %w", err)
	}

	invoices := []domain.Invoice{}
	query := `
		SELECT ` + invoiceColumns + `,
			c.name AS customer_name, c.gstin AS recipient_gstin
		FROM invoices i
		LEFT JOIN customers c ON c.id = i.customer_id
		WHERE i.organization_id = $1
		ORDER BY i.issue_date DESC, i.created_at DESC
		OFFSET $2 LIMIT $3`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &invoices, query, orgID, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByOrganization: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ItemsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceItem, error) {
	items := []domain.InvoiceItem{}
	query := `SELECT * FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &items, query, invoiceID); err != nil {
		return nil, fmt.Errorf("invoiceRepo.ItemsByInvoice: %w", err)
	}
	return items, nil
}

func (r *invoiceRepo) NumberExists(ctx context.Context, orgID uuid.UUID, number string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM invoices WHERE organization_id = $1 AND invoice_number = $2)`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &exists, query, orgID, number); err != nil {
		return false, fmt.Errorf("invoiceRepo.NumberExists: %w", err)
	}
	return exists, nil
}

func (r *invoiceRepo) UpdatePaymentStatus(ctx context.Context, orgID, invoiceID uuid.UUID, status domain.PaymentStatus) error {
	query := `
		UPDATE invoices
		SET payment_status = $1, updated_at = $2
		WHERE id = $3 AND organization_id = $4`
	res, err := ext(ctx, r.db).ExecContext(ctx, query, status, time.Now().UTC(), invoiceID, orgID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdatePaymentStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
