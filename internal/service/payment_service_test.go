package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbooks/internal/domain"
	"gstbooks/internal/service"
	"gstbooks/mocks"
)

func paymentFixture(inv *domain.Invoice) (*mocks.MockPaymentRepo, *mocks.MockInvoiceRepo, service.PaymentService) {
	paymentRepo := new(mocks.MockPaymentRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewPaymentService(paymentRepo, invoiceRepo, new(mocks.MockTxManager))
	if inv != nil {
		invoiceRepo.On("GetByID", mock.Anything, inv.OrganizationID, inv.ID).Return(inv, nil)
	}
	return paymentRepo, invoiceRepo, svc
}

func pendingInvoice(orgID uuid.UUID, net string) *domain.Invoice {
	return &domain.Invoice{
		ID:             uuid.New(),
		OrganizationID: orgID,
		NetAmount:      decimal.RequireFromString(net),
		PaymentStatus:  domain.PaymentStatusPending,
	}
}

func TestPaymentService_PartialPayment(t *testing.T) {
	orgID := uuid.New()
	inv := pendingInvoice(orgID, "1000.00")
	paymentRepo, invoiceRepo, svc := paymentFixture(inv)

	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	paymentRepo.On("SumSuccessfulByInvoice", mock.Anything, inv.ID).
		Return(decimal.RequireFromString("400.00"), nil)
	invoiceRepo.On("UpdatePaymentStatus", mock.Anything, orgID, inv.ID, domain.PaymentStatusPartial).Return(nil)

	p, err := svc.Record(context.Background(), orgID, service.RecordPaymentInput{
		InvoiceID: inv.ID,
		Method:    "upi",
		Amount:    "400.00",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStateSuccess, p.Status)
	invoiceRepo.AssertExpectations(t)
}

func TestPaymentService_FullPaymentMarksPaid(t *testing.T) {
	orgID := uuid.New()
	inv := pendingInvoice(orgID, "1000.00")
	inv.PaymentStatus = domain.PaymentStatusPartial
	paymentRepo, invoiceRepo, svc := paymentFixture(inv)

	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	paymentRepo.On("SumSuccessfulByInvoice", mock.Anything, inv.ID).
		Return(decimal.RequireFromString("1000.00"), nil)
	invoiceRepo.On("UpdatePaymentStatus", mock.Anything, orgID, inv.ID, domain.PaymentStatusPaid).Return(nil)

	_, err := svc.Record(context.Background(), orgID, service.RecordPaymentInput{
		InvoiceID: inv.ID,
		Method:    "bank_transfer",
		Amount:    "600.00",
	})

	require.NoError(t, err)
	invoiceRepo.AssertExpectations(t)
}

func TestPaymentService_StatusNeverRegresses(t *testing.T) {
	orgID := uuid.New()
	inv := pendingInvoice(orgID, "1000.00")
	inv.PaymentStatus = domain.PaymentStatusPaid
	paymentRepo, invoiceRepo, svc := paymentFixture(inv)

	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	paymentRepo.On("SumSuccessfulByInvoice", mock.Anything, inv.ID).
		Return(decimal.RequireFromString("200.00"), nil)

	_, err := svc.Record(context.Background(), orgID, service.RecordPaymentInput{
		InvoiceID: inv.ID,
		Method:    "cash",
		Amount:    "200.00",
	})

	require.NoError(t, err)
	invoiceRepo.AssertNotCalled(t, "UpdatePaymentStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_FailedPaymentSkipsStatusUpdate(t *testing.T) {
	orgID := uuid.New()
	inv := pendingInvoice(orgID, "500.00")
	paymentRepo, invoiceRepo, svc := paymentFixture(inv)

	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := svc.Record(context.Background(), orgID, service.RecordPaymentInput{
		InvoiceID: inv.ID,
		Method:    "card",
		Status:    "failed",
		Amount:    "500.00",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStateFailed, p.Status)
	paymentRepo.AssertNotCalled(t, "SumSuccessfulByInvoice", mock.Anything, mock.Anything)
	invoiceRepo.AssertNotCalled(t, "UpdatePaymentStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_RejectsNonPositiveAmount(t *testing.T) {
	_, _, svc := paymentFixture(nil)

	_, err := svc.Record(context.Background(), uuid.New(), service.RecordPaymentInput{
		InvoiceID: uuid.New(),
		Method:    "cash",
		Amount:    "0",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPaymentService_UnknownInvoice(t *testing.T) {
	orgID := uuid.New()
	invoiceID := uuid.New()
	paymentRepo := new(mocks.MockPaymentRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewPaymentService(paymentRepo, invoiceRepo, new(mocks.MockTxManager))

	invoiceRepo.On("GetByID", mock.Anything, orgID, invoiceID).Return(nil, domain.ErrNotFound)

	_, err := svc.Record(context.Background(), orgID, service.RecordPaymentInput{
		InvoiceID: invoiceID,
		Method:    "cash",
		Amount:    "100",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
