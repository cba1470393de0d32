package port

import (
	"context"

	"github.com/google/uuid"

	"gstbooks/internal/domain"
)

// PurchaseBillRepository defines the contract for purchase bill
// persistence. Create writes the bill and its items together; every
// bill carries a number, and the store enforces UNIQUE
// (organization_id, bill_number), surfacing a violation as
// domain.ErrNumberConflict.
type PurchaseBillRepository interface {
	Create(ctx context.Context, bill *domain.PurchaseBill, items []domain.PurchaseBillItem) error
	GetByID(ctx context.Context, orgID, billID uuid.UUID) (*domain.PurchaseBill, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, limit int) ([]domain.PurchaseBill, error)
	ItemsByBill(ctx context.Context, billID uuid.UUID) ([]domain.PurchaseBillItem, error)
	NumberExists(ctx context.Context, orgID uuid.UUID, number string) (bool, error)
	UpdateStatus(ctx context.Context, orgID, billID uuid.UUID, status domain.BillStatus) error
}

// JournalRepository defines the contract for journal entry persistence.
type JournalRepository interface {
	Create(ctx context.Context, entry *domain.JournalEntry) error
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.JournalEntry, error)
	ListByVendor(ctx context.Context, orgID, vendorID uuid.UUID) ([]domain.JournalEntry, error)
}
