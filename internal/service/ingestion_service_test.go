package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbooks/internal/config"
	"gstbooks/internal/domain"
	"gstbooks/internal/port"
	"gstbooks/internal/service"
	"gstbooks/mocks"
)

type ingestFixture struct {
	billRepo  *mocks.MockPurchaseBillRepo
	resolver  *mocks.MockPartyResolver
	extractor *mocks.MockDocumentExtractor
	storage   *mocks.MockObjectStorage
	svc       service.IngestionService
	orgID     uuid.UUID
	branchID  uuid.UUID
	userID    uuid.UUID
}

func newIngestFixture() *ingestFixture {
	f := &ingestFixture{
		billRepo:  new(mocks.MockPurchaseBillRepo),
		resolver:  new(mocks.MockPartyResolver),
		extractor: new(mocks.MockDocumentExtractor),
		storage:   new(mocks.MockObjectStorage),
		orgID:     uuid.New(),
		branchID:  uuid.New(),
		userID:    uuid.New(),
	}
	f.svc = service.NewIngestionService(
		f.billRepo, f.resolver, new(mocks.MockTxManager),
		f.extractor, f.storage,
		config.S3Config{Bucket: "test-bucket", MaxFileSizeMB: 25},
	)
	return f
}

func (f *ingestFixture) expectUpload() {
	f.storage.On("Upload", mock.Anything, mock.Anything).
		Return(&port.UploadOutput{Location: "s3://test-bucket/key"}, nil)
}

func pdfInput() service.IngestInput {
	return service.IngestInput{
		FileName:    "bill.pdf",
		FileBytes:   []byte("%PDF-1.4 test"),
		ContentType: "application/pdf",
	}
}

func TestIngestionService_FullPipeline(t *testing.T) {
	f := newIngestFixture()
	vendorID := uuid.New()

	extracted, _ := json.Marshal(map[string]any{
		"Invoice Number": "BILL-7781",
		"Invoice Date":   "2026-04-12",
		"Vendor Name":    "Acme Traders",
		"Vendor GSTIN":   "27AAACA1234A1Z5",
		"Items": []map[string]any{
			{"Item Name": "Paper Ream", "Quantity": 10, "Unit Price": 120, "GST Rate": 12},
		},
		"Taxable Amount": 1200,
		"CGST Amount":    72,
		"SGST Amount":    72,
		"Total Amount":   1344,
	})

	f.expectUpload()
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(json.RawMessage(extracted), nil)
	f.resolver.On("ResolveOrCreate", mock.Anything, domain.PartyVendor, "Acme Traders", "27AAACA1234A1Z5", f.orgID, f.branchID).
		Return(vendorID, nil)
	f.billRepo.On("NumberExists", mock.Anything, f.orgID, "BILL-7781").Return(false, nil)
	f.billRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	out, err := f.svc.Ingest(context.Background(), f.orgID, f.branchID, f.userID, pdfInput())

	require.NoError(t, err)
	assert.Equal(t, "BILL-7781", out.Bill.BillNumber)
	assert.Equal(t, vendorID, *out.Bill.VendorID)
	assert.Equal(t, domain.BillStatusParsed, out.Bill.Status)
	assert.True(t, out.Bill.Subtotal.Equal(decimal.RequireFromString("1200.00")))
	assert.Len(t, out.Items, 1)

	draft := out.Draft
	assert.Equal(t, "Purchases", draft.DebitAccount)
	assert.Equal(t, "Creditors", draft.CreditAccount)
	assert.Equal(t, domain.EntryTypePurchase, draft.EntryType)
	assert.True(t, draft.Amount.Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, draft.TotalAmount.Equal(decimal.RequireFromString("1344.00")))
	assert.Equal(t, "Auto entry for Purchase Bill #BILL-7781", draft.Description)
	f.billRepo.AssertExpectations(t)
}

func TestIngestionService_NoVendorNoItems(t *testing.T) {
	f := newIngestFixture()

	extracted, _ := json.Marshal(map[string]any{
		"Invoice Number": "ORIGINAL",
		"Taxable Amount": 500,
		"CGST Amount":    45,
		"SGST Amount":    45,
	})

	f.expectUpload()
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(json.RawMessage(extracted), nil)
	f.billRepo.On("NumberExists", mock.Anything, f.orgID, mock.MatchedBy(func(n string) bool {
		return strings.HasPrefix(n, "INV-")
	})).Return(false, nil)
	f.billRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	out, err := f.svc.Ingest(context.Background(), f.orgID, f.branchID, f.userID, pdfInput())

	require.NoError(t, err)
	assert.Nil(t, out.Bill.VendorID)
	// Placeholder token is discarded and a number is synthesized instead.
	assert.True(t, strings.HasPrefix(out.Bill.BillNumber, "INV-"), out.Bill.BillNumber)

	draft := out.Draft
	assert.Equal(t, "Office Expense", draft.DebitAccount)
	assert.Equal(t, "Cash", draft.CreditAccount)
	assert.Equal(t, domain.EntryTypeExpense, draft.EntryType)
	// No extracted total: amount plus taxes.
	assert.True(t, draft.TotalAmount.Equal(decimal.RequireFromString("590.00")), draft.TotalAmount.String())
	f.resolver.AssertNotCalled(t, "ResolveOrCreate",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestionService_SubtotalRecomputedFromItems(t *testing.T) {
	f := newIngestFixture()

	extracted, _ := json.Marshal(map[string]any{
		"Invoice Number": "BILL-9",
		"Items": []map[string]any{
			{"Item Name": "A", "Quantity": 2, "Unit Price": 150},
			{"Item Name": "B", "Quantity": 1, "Unit Price": 200},
		},
		"Taxable Amount": 0,
	})

	f.expectUpload()
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(json.RawMessage(extracted), nil)
	f.billRepo.On("NumberExists", mock.Anything, f.orgID, "BILL-9").Return(false, nil)
	f.billRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	out, err := f.svc.Ingest(context.Background(), f.orgID, f.branchID, f.userID, pdfInput())

	require.NoError(t, err)
	assert.True(t, out.Bill.Subtotal.Equal(decimal.RequireFromString("500.00")), out.Bill.Subtotal.String())
}

func TestIngestionService_ExtractorErrorCleansUpArtifact(t *testing.T) {
	f := newIngestFixture()

	extracted, _ := json.Marshal(map[string]any{"error": "unreadable scan"})

	f.expectUpload()
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(json.RawMessage(extracted), nil)
	f.storage.On("Delete", mock.Anything, "test-bucket", mock.Anything).Return(nil)

	_, err := f.svc.Ingest(context.Background(), f.orgID, f.branchID, f.userID, pdfInput())

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	f.storage.AssertCalled(t, "Delete", mock.Anything, "test-bucket", mock.Anything)
	f.billRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestionService_UnsupportedContentType(t *testing.T) {
	f := newIngestFixture()

	_, err := f.svc.Ingest(context.Background(), f.orgID, f.branchID, f.userID, service.IngestInput{
		FileName:    "bill.docx",
		FileBytes:   []byte("data"),
		ContentType: "application/msword",
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestIngestionService_PersistFailureCleansUpArtifact(t *testing.T) {
	f := newIngestFixture()

	extracted, _ := json.Marshal(map[string]any{
		"Invoice Number": "BILL-10",
		"Taxable Amount": 100,
	})

	f.expectUpload()
	f.extractor.On("Extract", mock.Anything, mock.Anything).Return(json.RawMessage(extracted), nil)
	f.billRepo.On("NumberExists", mock.Anything, f.orgID, "BILL-10").Return(false, nil)
	f.billRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	f.storage.On("Delete", mock.Anything, "test-bucket", mock.Anything).Return(nil)

	_, err := f.svc.Ingest(context.Background(), f.orgID, f.branchID, f.userID, pdfInput())

	assert.Error(t, err)
	f.storage.AssertCalled(t, "Delete", mock.Anything, "test-bucket", mock.Anything)
}
