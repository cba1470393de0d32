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

const journalColumns = `
	j.id, j.organization_id, j.branch_id, j.entry_date, j.reference_no,
	j.vendor_id, j.description, j.debit_account, j.credit_account, j.amount,
	j.cgst_input, j.sgst_input, j.igst_input, j.total_amount, j.entry_type,
	j.purchase_bill_id, j.created_by, j.created_at`

type journalRepo struct {
	db *sqlx.DB
}

// NewJournalRepo creates a PostgreSQL-backed journal entry repository.
func NewJournalRepo(db *sqlx.DB) port.JournalRepository {
	return &journalRepo{db: db}
}

func (r *journalRepo) Create(ctx context.Context, entry *domain.JournalEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO journal_entries (
			id, organization_id, branch_id, entry_date, reference_no,
			vendor_id, description, debit_account, credit_account, amount,
			cgst_input, sgst_input, igst_input, total_amount, entry_type,
			purchase_bill_id, created_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18
		)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		entry.ID, entry.OrganizationID, entry.BranchID, entry.EntryDate, entry.ReferenceNo,
		entry.VendorID, entry.Description, entry.DebitAccount, entry.CreditAccount, entry.Amount,
		entry.CGSTInput, entry.SGSTInput, entry.IGSTInput, entry.TotalAmount, entry.EntryType,
		entry.PurchaseBillID, entry.CreatedBy, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("journalRepo.Create: %w", err)
	}
	return nil
}

func (r *journalRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.JournalEntry, error) {
	entries := []domain.JournalEntry{}
	query := `
		SELECT ` + journalColumns + `,
			v.name AS vendor_name
		FROM journal_entries j
		LEFT JOIN vendors v ON v.id = j.vendor_id
		WHERE j.organization_id = $1
		ORDER BY j.entry_date DESC, j.created_at DESC`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &entries, query, orgID); err != nil {
		return nil, fmt.Errorf("journalRepo.ListByOrganization: %w", err)
	}
	return entries, nil
}

func (r *journalRepo) ListByVendor(ctx context.Context, orgID, vendorID uuid.UUID) ([]domain.JournalEntry, error) {
	entries := []domain.JournalEntry{}
	query := `
		SELECT ` + journalColumns + `,
			v.name AS vendor_name
		FROM journal_entries j
		LEFT JOIN vendors v ON v.id = j.vendor_id
		WHERE j.organization_id = $1 AND j.vendor_id = $2
		ORDER BY j.entry_date DESC, j.created_at DESC`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &entries, query, orgID, vendorID); err != nil {
		return nil, fmt.Errorf("journalRepo.ListByVendor: %w", err)
	}
	return entries, nil
}
