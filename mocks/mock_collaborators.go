package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

// MockDocumentExtractor is a mock implementation of
// port.DocumentExtractor.
type MockDocumentExtractor struct {
	mock.Mock
}

func (m *MockDocumentExtractor) Extract(ctx context.Context, input port.ExtractInput) (json.RawMessage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockDocumentRenderer is a mock implementation of
// port.DocumentRenderer.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) Render(ctx context.Context, fields map[string]any) ([]byte, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadOutput), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockObjectStorage) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	args := m.Called(ctx, bucket, key, expirySeconds)
	return args.String(0), args.Error(1)
}

// MockPartyResolver is a mock implementation of service.PartyResolver.
type MockPartyResolver struct {
	mock.Mock
}

func (m *MockPartyResolver) ResolveOrCreate(ctx context.Context, kind domain.PartyKind, nameHint, gstinHint string, orgID, branchID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, kind, nameHint, gstinHint, orgID, branchID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
