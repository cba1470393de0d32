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

type invoiceFixture struct {
	invoiceRepo  *mocks.MockInvoiceRepo
	customerRepo *mocks.MockCustomerRepo
	productRepo  *mocks.MockProductRepo
	orgRepo      *mocks.MockOrgRepo
	resolver     *mocks.MockPartyResolver
	renderer     *mocks.MockDocumentRenderer
	emailSender  *mocks.MockEmailSender
	svc          service.InvoiceService
	orgID        uuid.UUID
	branchID     uuid.UUID
	userID       uuid.UUID
}

func newInvoiceFixture() *invoiceFixture {
	f := &invoiceFixture{
		invoiceRepo:  new(mocks.MockInvoiceRepo),
		customerRepo: new(mocks.MockCustomerRepo),
		productRepo:  new(mocks.MockProductRepo),
		orgRepo:      new(mocks.MockOrgRepo),
		resolver:     new(mocks.MockPartyResolver),
		renderer:     new(mocks.MockDocumentRenderer),
		emailSender:  new(mocks.MockEmailSender),
		orgID:        uuid.New(),
		branchID:     uuid.New(),
		userID:       uuid.New(),
	}
	f.svc = service.NewInvoiceService(
		f.invoiceRepo, f.customerRepo, f.productRepo, f.orgRepo,
		f.resolver, new(mocks.MockTxManager), f.renderer, f.emailSender,
	)
	return f
}

func (f *invoiceFixture) org(stateCode string) *domain.Organization {
	return &domain.Organization{
		ID:        f.orgID,
		Name:      "Mehta Traders",
		GSTIN:     "27AAACM1234A1Z5",
		StateCode: stateCode,
		IsActive:  true,
	}
}

func TestInvoiceService_Create_IntraStateSplit(t *testing.T) {
	f := newInvoiceFixture()

	f.orgRepo.On("GetByID", mock.Anything, f.orgID).Return(f.org("27"), nil)
	f.invoiceRepo.On("NumberExists", mock.Anything, f.orgID, "INV-001").Return(false, nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.Create(context.Background(), f.orgID, f.branchID, f.userID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-001",
		PlaceOfSupply: "27",
		Items: []service.InvoiceItemInput{
			{Description: "Widget", Quantity: "2", UnitPrice: "100", GSTRate: "18"},
		},
	})

	require.NoError(t, err)
	inv := result.Invoice
	assert.Equal(t, "INV-001", inv.InvoiceNumber)
	assert.True(t, inv.TaxableValue.Equal(decimal.RequireFromString("200.00")), inv.TaxableValue.String())
	assert.True(t, inv.CGSTAmount.Equal(decimal.RequireFromString("18.00")))
	assert.True(t, inv.SGSTAmount.Equal(decimal.RequireFromString("18.00")))
	assert.True(t, inv.IGSTAmount.IsZero())
	assert.True(t, inv.NetAmount.Equal(decimal.RequireFromString("236.00")))
	assert.Equal(t, domain.PaymentStatusPending, inv.PaymentStatus)
	f.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_Create_InterStateIGST(t *testing.T) {
	f := newInvoiceFixture()

	f.orgRepo.On("GetByID", mock.Anything, f.orgID).Return(f.org("27"), nil)
	f.invoiceRepo.On("NumberExists", mock.Anything, f.orgID, "INV-002").Return(false, nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.Create(context.Background(), f.orgID, f.branchID, f.userID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-002",
		PlaceOfSupply: "29",
		Items: []service.InvoiceItemInput{
			{Description: "Widget", Quantity: "2", UnitPrice: "100", GSTRate: "18"},
		},
	})

	require.NoError(t, err)
	inv := result.Invoice
	assert.True(t, inv.IGSTAmount.Equal(decimal.RequireFromString("36.00")))
	assert.True(t, inv.CGSTAmount.IsZero())
	assert.True(t, inv.SGSTAmount.IsZero())
	assert.True(t, inv.NetAmount.Equal(decimal.RequireFromString("236.00")))
}

func TestInvoiceService_Create_ResolvesCustomerByHint(t *testing.T) {
	f := newInvoiceFixture()
	customerID := uuid.New()

	f.orgRepo.On("GetByID", mock.Anything, f.orgID).Return(f.org("27"), nil)
	f.resolver.On("ResolveOrCreate", mock.Anything, domain.PartyCustomer, "Sharma Stores", "", f.orgID, f.branchID).
		Return(customerID, nil)
	f.invoiceRepo.On("NumberExists", mock.Anything, f.orgID, "INV-003").Return(false, nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.Create(context.Background(), f.orgID, f.branchID, f.userID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-003",
		CustomerName:  "Sharma Stores",
		PlaceOfSupply: "27",
		Items: []service.InvoiceItemInput{
			{Description: "Widget", Quantity: "1", UnitPrice: "50", GSTRate: "5"},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, result.Invoice.CustomerID)
	assert.Equal(t, customerID, *result.Invoice.CustomerID)
	f.resolver.AssertExpectations(t)
}

func TestInvoiceService_Create_ProductFillsPriceAndRate(t *testing.T) {
	f := newInvoiceFixture()
	productID := uuid.New()
	product := &domain.Product{
		ID:             productID,
		OrganizationID: f.orgID,
		Name:           "Steel Rod",
		UnitPrice:      decimal.RequireFromString("250"),
		GSTRate:        decimal.RequireFromString("18"),
	}

	f.orgRepo.On("GetByID", mock.Anything, f.orgID).Return(f.org("27"), nil)
	f.productRepo.On("GetByID", mock.Anything, f.orgID, productID).Return(product, nil)
	f.invoiceRepo.On("NumberExists", mock.Anything, f.orgID, "INV-004").Return(false, nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.Create(context.Background(), f.orgID, f.branchID, f.userID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-004",
		PlaceOfSupply: "27",
		Items: []service.InvoiceItemInput{
			{ProductID: &productID, Quantity: "4"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Steel Rod", result.Items[0].Description)
	assert.True(t, result.Invoice.TaxableValue.Equal(decimal.RequireFromString("1000.00")))
}

func TestInvoiceService_Create_CollisionGetsSuffix(t *testing.T) {
	f := newInvoiceFixture()

	f.orgRepo.On("GetByID", mock.Anything, f.orgID).Return(f.org("27"), nil)
	f.invoiceRepo.On("NumberExists", mock.Anything, f.orgID, "INV-005").Return(true, nil)
	f.invoiceRepo.On("NumberExists", mock.Anything, f.orgID, mock.MatchedBy(func(n string) bool {
		return len(n) > len("INV-005")
	})).Return(false, nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.Create(context.Background(), f.orgID, f.branchID, f.userID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-005",
		PlaceOfSupply: "27",
		Items: []service.InvoiceItemInput{
			{Description: "Widget", Quantity: "1", UnitPrice: "10", GSTRate: "0"},
		},
	})

	require.NoError(t, err)
	assert.Contains(t, result.Invoice.InvoiceNumber, "INV-005-")
}

func TestInvoiceService_Create_EmptyItemsRejected(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.Create(context.Background(), f.orgID, f.branchID, f.userID, service.CreateInvoiceInput{
		InvoiceNumber: "INV-006",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_EmailInvoice_NoCustomerEmail(t *testing.T) {
	f := newInvoiceFixture()
	invoiceID := uuid.New()
	customerID := uuid.New()
	inv := &domain.Invoice{
		ID:             invoiceID,
		OrganizationID: f.orgID,
		CustomerID:     &customerID,
		InvoiceNumber:  "INV-010",
		NetAmount:      decimal.RequireFromString("236.00"),
	}

	f.invoiceRepo.On("GetByID", mock.Anything, f.orgID, invoiceID).Return(inv, nil)
	f.invoiceRepo.On("ItemsByInvoice", mock.Anything, invoiceID).Return([]domain.InvoiceItem{}, nil)
	f.orgRepo.On("GetByID", mock.Anything, f.orgID).Return(f.org("27"), nil)
	f.customerRepo.On("GetByID", mock.Anything, f.orgID, customerID).
		Return(&domain.Customer{ID: customerID, Name: "Sharma Stores"}, nil)

	err := f.svc.EmailInvoice(context.Background(), f.orgID, invoiceID)

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.emailSender.AssertNotCalled(t, "SendInvoiceEmail", mock.Anything, mock.Anything)
}

func TestInvoiceService_EmailInvoice_Delivers(t *testing.T) {
	f := newInvoiceFixture()
	invoiceID := uuid.New()
	customerID := uuid.New()
	inv := &domain.Invoice{
		ID:             invoiceID,
		OrganizationID: f.orgID,
		CustomerID:     &customerID,
		InvoiceNumber:  "INV-011",
		NetAmount:      decimal.RequireFromString("118.00"),
	}
	customer := &domain.Customer{ID: customerID, Name: "Sharma Stores", Email: "billing@sharma.example"}

	f.invoiceRepo.On("GetByID", mock.Anything, f.orgID, invoiceID).Return(inv, nil)
	f.invoiceRepo.On("ItemsByInvoice", mock.Anything, invoiceID).Return([]domain.InvoiceItem{}, nil)
	f.orgRepo.On("GetByID", mock.Anything, f.orgID).Return(f.org("27"), nil)
	f.customerRepo.On("GetByID", mock.Anything, f.orgID, customerID).Return(customer, nil)
	f.renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF-1.4"), nil)
	f.emailSender.On("SendInvoiceEmail", mock.Anything, mock.MatchedBy(func(msg interface{}) bool {
		return true
	})).Return(nil)

	err := f.svc.EmailInvoice(context.Background(), f.orgID, invoiceID)

	assert.NoError(t, err)
	f.emailSender.AssertExpectations(t)
}
