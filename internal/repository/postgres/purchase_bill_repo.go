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

const billColumns = `
	b.id, b.organization_id, b.branch_id, b.vendor_id, b.uploaded_by,
	b.bill_number, b.bill_date, b.subtotal, b.cgst_amount, b.sgst_amount,
	b.igst_amount, b.net_amount, b.status, b.raw_extracted, b.artifact_key,
	b.created_at, b.updated_at`

type purchaseBillRepo struct {
	db *sqlx.DB
}

// NewPurchaseBillRepo creates a PostgreSQL-backed purchase bill repository.
func NewPurchaseBillRepo(db *sqlx.DB) port.PurchaseBillRepository {
	return &purchaseBillRepo{db: db}
}

func (r *purchaseBillRepo) Create(ctx context.Context, bill *domain.PurchaseBill, items []domain.PurchaseBillItem) error {
	now := time.Now().UTC()
	bill.ID = uuid.New()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	query := `
		INSERT INTO purchase_bills (
			id, organization_id, branch_id, vendor_id, uploaded_by,
			bill_number, bill_date, subtotal, cgst_amount, sgst_amount,
			igst_amount, net_amount, status, raw_extracted, artifact_key,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17
		)`

	e := ext(ctx, r.db)
	_, err := e.ExecContext(ctx, query,
		bill.ID, bill.OrganizationID, bill.BranchID, bill.VendorID, bill.UploadedBy,
		bill.BillNumber, bill.BillDate, bill.Subtotal, bill.CGSTAmount, bill.SGSTAmount,
		bill.IGSTAmount, bill.NetAmount, bill.Status, bill.RawExtracted, bill.ArtifactKey,
		bill.CreatedAt, bill.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "bill_number") {
			return domain.ErrNumberConflict
		}
		return fmt.Errorf("purchaseBillRepo.Create: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_bill_items (id, purchase_bill_id, description, qty, price, gst_rate, line_discount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for idx := range items {
		item := &items[idx]
		item.ID = uuid.New()
		item.PurchaseBillID = bill.ID
		if _, err := e.ExecContext(ctx, itemQuery,
			item.ID, item.PurchaseBillID, item.Description, item.Quantity,
			item.UnitPrice, item.GSTRate, item.LineDiscount, item.LineTotal); err != nil {
			return fmt.Errorf("purchaseBillRepo.Create item: %w", err)
		}
	}
	return nil
}

func (r *purchaseBillRepo) GetByID(ctx context.Context, orgID, billID uuid.UUID) (*domain.PurchaseBill, error) {
	var bill domain.PurchaseBill
	query := `
		SELECT ` + billColumns + `,
			v.name AS vendor_name
		FROM purchase_bills b
		LEFT JOIN vendors v ON v.id = b.vendor_id
		WHERE b.id = $1 AND b.organization_id = $2`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &bill, query, billID, orgID); err != nil {
		return nil, mapNotFound(err, "purchaseBillRepo.GetByID")
	}
	return &bill, nil
}

func (r *purchaseBillRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.PurchaseBill, error) {
	bills := []domain.PurchaseBill{}
	query := `
		SELECT ` + billColumns + `,
			v.name AS vendor_name
		FROM purchase_bills b
		LEFT JOIN vendors v ON v.id = b.vendor_id
		WHERE b.organization_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &bills, query, orgID, limit); err != nil {
		return nil, fmt.Errorf("purchaseBillRepo.ListByOrganization: %w", err)
	}
	return bills, nil
}

func (r *purchaseBillRepo) ItemsByBill(ctx context.Context, billID uuid.UUID) ([]domain.PurchaseBillItem, error) {
	items := []domain.PurchaseBillItem{}
	query := `SELECT * FROM purchase_bill_items WHERE purchase_bill_id = $1 ORDER BY id`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &items, query, billID); err != nil {
		return nil, fmt.Errorf("purchaseBillRepo.ItemsByBill: %w", err)
	}
	return items, nil
}

func (r *purchaseBillRepo) NumberExists(ctx context.Context, orgID uuid.UUID, number string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM purchase_bills WHERE organization_id = $1 AND bill_number = $2)`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &exists, query, orgID, number); err != nil {
		return false, fmt.Errorf("purchaseBillRepo.NumberExists: %w", err)
	}
	return exists, nil
}

func (r *purchaseBillRepo) UpdateStatus(ctx context.Context, orgID, billID uuid.UUID, status domain.BillStatus) error {
	query := `
		UPDATE purchase_bills
		SET status = $1, updated_at = $2
		WHERE id = $3 AND organization_id = $4`
	res, err := ext(ctx, r.db).ExecContext(ctx, query, status, time.Now().UTC(), billID, orgID)
	if err != nil {
		return fmt.Errorf("purchaseBillRepo.UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
