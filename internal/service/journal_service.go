package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

// JournalService persists reviewed journal drafts and serves entry
// listings. Saving a draft also moves its source bill to reviewed.
type JournalService interface {
	SaveDraft(ctx context.Context, orgID, userID uuid.UUID, draft domain.JournalEntryDraft) (*domain.JournalEntry, error)
	List(ctx context.Context, orgID uuid.UUID) ([]domain.JournalEntry, error)
	ListByVendor(ctx context.Context, orgID, vendorID uuid.UUID) ([]domain.JournalEntry, error)
}

type journalService struct {
	journalRepo port.JournalRepository
	billRepo    port.PurchaseBillRepository
	txm         port.TxManager
}

// NewJournalService creates a JournalService implementation.
func NewJournalService(
	journalRepo port.JournalRepository,
	billRepo port.PurchaseBillRepository,
	txm port.TxManager,
) JournalService {
	return &journalService{journalRepo: journalRepo, billRepo: billRepo, txm: txm}
}

func (s *journalService) SaveDraft(ctx context.Context, orgID, userID uuid.UUID, draft domain.JournalEntryDraft) (*domain.JournalEntry, error) {
	if draft.OrganizationID != orgID {
		return nil, domain.ErrForbidden
	}
	if draft.DebitAccount == "" || draft.CreditAccount == "" {
		return nil, domain.NewValidationError("accounts", "debit and credit accounts are required")
	}
	if draft.Amount.IsNegative() {
		return nil, domain.NewValidationError("amount", "amount must not be negative")
	}

	bill, err := s.billRepo.GetByID(ctx, orgID, draft.PurchaseBillID)
	if err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		OrganizationID: draft.OrganizationID,
		BranchID:       draft.BranchID,
		EntryDate:      draft.EntryDate,
		ReferenceNo:    draft.ReferenceNo,
		VendorID:       draft.VendorID,
		Description:    draft.Description,
		DebitAccount:   draft.DebitAccount,
		CreditAccount:  draft.CreditAccount,
		Amount:         draft.Amount,
		CGSTInput:      draft.CGSTInput,
		SGSTInput:      draft.SGSTInput,
		IGSTInput:      draft.IGSTInput,
		TotalAmount:    draft.TotalAmount,
		EntryType:      draft.EntryType,
		PurchaseBillID: &draft.PurchaseBillID,
		CreatedBy:      userID,
	}

	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.journalRepo.Create(ctx, entry); err != nil {
			return err
		}
		return s.billRepo.UpdateStatus(ctx, orgID, bill.ID, domain.BillStatusReviewed)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("journal.SaveDraft: %w", err)
	}
	return entry, nil
}

func (s *journalService) List(ctx context.Context, orgID uuid.UUID) ([]domain.JournalEntry, error) {
	return s.journalRepo.ListByOrganization(ctx, orgID)
}

func (s *journalService) ListByVendor(ctx context.Context, orgID, vendorID uuid.UUID) ([]domain.JournalEntry, error) {
	return s.journalRepo.ListByVendor(ctx, orgID, vendorID)
}
