package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstbooks/internal/config"
	"gstbooks/internal/domain"
	"gstbooks/internal/extract"
	"gstbooks/internal/money"
	"gstbooks/internal/port"
	"gstbooks/internal/tax"
)

// IngestInput carries one uploaded bill document.
type IngestInput struct {
	FileName    string
	FileBytes   []byte
	ContentType string
}

// IngestOutput is the result of a successful ingestion: the persisted
// bill and the unposted journal draft awaiting review.
type IngestOutput struct {
	Bill  *domain.PurchaseBill     `json:"bill"`
	Items []domain.PurchaseBillItem `json:"items"`
	Draft *domain.JournalEntryDraft `json:"draft"`
}

// IngestionService runs the bill ingestion pipeline: store the
// artifact, extract fields, normalize, resolve the vendor, persist the
// bill with its items, and synthesize a journal draft. Everything
// after extraction runs in one transaction; a failed extraction also
// removes the stored artifact.
type IngestionService interface {
	Ingest(ctx context.Context, orgID, branchID, uploaderID uuid.UUID, input IngestInput) (*IngestOutput, error)
}

type ingestionService struct {
	billRepo  port.PurchaseBillRepository
	resolver  PartyResolver
	txm       port.TxManager
	extractor port.DocumentExtractor
	storage   port.ObjectStorage
	s3cfg     config.S3Config
}

// NewIngestionService creates an IngestionService implementation.
func NewIngestionService(
	billRepo port.PurchaseBillRepository,
	resolver PartyResolver,
	txm port.TxManager,
	extractor port.DocumentExtractor,
	storage port.ObjectStorage,
	s3cfg config.S3Config,
) IngestionService {
	return &ingestionService{
		billRepo:  billRepo,
		resolver:  resolver,
		txm:       txm,
		extractor: extractor,
		storage:   storage,
		s3cfg:     s3cfg,
	}
}

func (s *ingestionService) Ingest(ctx context.Context, orgID, branchID, uploaderID uuid.UUID, input IngestInput) (*IngestOutput, error) {
	fileType, ok := domain.AllowedContentTypes[input.ContentType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if max := s.s3cfg.MaxFileSizeMB * 1024 * 1024; max > 0 && int64(len(input.FileBytes)) > max {
		return nil, domain.NewValidationError("file", fmt.Sprintf("file exceeds %d MB", s.s3cfg.MaxFileSizeMB))
	}

	key := fmt.Sprintf("bills/%s/%s.%s", orgID, uuid.New(), fileType)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(input.FileBytes),
		ContentType: input.ContentType,
		Size:        int64(len(input.FileBytes)),
	}); err != nil {
		return nil, fmt.Errorf("ingestion.Ingest upload: %w", err)
	}

	raw, err := s.extractor.Extract(ctx, port.ExtractInput{
		FileBytes:   input.FileBytes,
		ContentType: input.ContentType,
	})
	if err != nil {
		s.cleanupArtifact(ctx, key)
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	ex, err := extract.Normalize(raw)
	if err != nil {
		s.cleanupArtifact(ctx, key)
		return nil, err
	}

	out, err := s.persist(ctx, orgID, branchID, uploaderID, key, ex)
	if err != nil {
		s.cleanupArtifact(ctx, key)
		return nil, err
	}
	return out, nil
}

// persist runs the transactional tail of the pipeline. Vendor creation
// commits or rolls back together with the bill and its items.
func (s *ingestionService) persist(ctx context.Context, orgID, branchID, uploaderID uuid.UUID, artifactKey string, ex *extract.RawExtraction) (*IngestOutput, error) {
	var out IngestOutput
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		var vendorID *uuid.UUID
		if ex.VendorName != "" || ex.VendorGSTIN != "" {
			id, err := s.resolver.ResolveOrCreate(ctx, domain.PartyVendor,
				ex.VendorName, ex.VendorGSTIN, orgID, branchID)
			if err != nil {
				return err
			}
			vendorID = &id
		}

		billNumber, err := tax.ResolveInvoiceNumber(ex.InvoiceNumber, func(n string) (bool, error) {
			return s.billRepo.NumberExists(ctx, orgID, n)
		})
		if err != nil {
			return err
		}

		subtotal := money.Round2(ex.ReconciledSubtotal())
		cgst := money.Round2(ex.CGST)
		sgst := money.Round2(ex.SGST)
		igst := money.Round2(ex.IGST)
		net := money.Round2(ex.Total)
		if net.IsZero() {
			net = subtotal.Add(cgst).Add(sgst).Add(igst)
		}

		bill := &domain.PurchaseBill{
			OrganizationID: orgID,
			BranchID:       branchID,
			VendorID:       vendorID,
			UploadedBy:     uploaderID,
			BillNumber:     billNumber,
			BillDate:       ex.InvoiceDate,
			Subtotal:       subtotal,
			CGSTAmount:     cgst,
			SGSTAmount:     sgst,
			IGSTAmount:     igst,
			NetAmount:      net,
			Status:         domain.BillStatusParsed,
			RawExtracted:   ex.Raw,
			ArtifactKey:    artifactKey,
		}

		items := make([]domain.PurchaseBillItem, 0, len(ex.Items))
		for _, it := range ex.Items {
			items = append(items, domain.PurchaseBillItem{
				Description:  it.Description,
				Quantity:     it.Quantity,
				UnitPrice:    it.UnitPrice,
				GSTRate:      it.GSTRate,
				LineDiscount: decimal.Zero,
				LineTotal:    money.Round2(it.Quantity.Mul(it.UnitPrice)),
			})
		}

		if err := s.billRepo.Create(ctx, bill, items); err != nil {
			return err
		}

		out = IngestOutput{
			Bill:  bill,
			Items: items,
			Draft: s.buildDraft(bill, len(items) > 0, ex),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNumberConflict) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("ingestion.persist: %w", err)
	}
	return &out, nil
}

// buildDraft synthesizes the unposted journal entry for review. It is
// returned to the caller, never written here.
func (s *ingestionService) buildDraft(bill *domain.PurchaseBill, hasItems bool, ex *extract.RawExtraction) *domain.JournalEntryDraft {
	debit := "Office Expense"
	entryType := domain.EntryTypeExpense
	if hasItems {
		debit = "Purchases"
		entryType = domain.EntryTypePurchase
	}
	credit := "Cash"
	if bill.VendorID != nil {
		credit = "Creditors"
	}

	entryDate := time.Now().UTC()
	if bill.BillDate != nil {
		entryDate = *bill.BillDate
	}

	total := money.Round2(ex.Total)
	if total.IsZero() {
		total = bill.Subtotal.Add(bill.CGSTAmount).Add(bill.SGSTAmount).Add(bill.IGSTAmount)
	}

	return &domain.JournalEntryDraft{
		OrganizationID: bill.OrganizationID,
		BranchID:       bill.BranchID,
		EntryDate:      entryDate,
		ReferenceNo:    &bill.BillNumber,
		VendorID:       bill.VendorID,
		Description:    fmt.Sprintf("Auto entry for Purchase Bill #%s", bill.BillNumber),
		DebitAccount:   debit,
		CreditAccount:  credit,
		Amount:         bill.Subtotal,
		CGSTInput:      bill.CGSTAmount,
		SGSTInput:      bill.SGSTAmount,
		IGSTInput:      bill.IGSTAmount,
		TotalAmount:    total,
		EntryType:      entryType,
		PurchaseBillID: bill.ID,
	}
}

// cleanupArtifact removes the stored source document after a failed
// ingestion. Best effort; the pipeline error wins.
func (s *ingestionService) cleanupArtifact(ctx context.Context, key string) {
	_ = s.storage.Delete(ctx, s.s3cfg.Bucket, key)
}
