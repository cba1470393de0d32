package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstbooks/internal/domain"
	"gstbooks/internal/service"
	"gstbooks/mocks"
)

func TestPartyResolver_VendorNameMatch(t *testing.T) {
	customerRepo := new(mocks.MockCustomerRepo)
	vendorRepo := new(mocks.MockVendorRepo)
	resolver := service.NewPartyResolver(customerRepo, vendorRepo)

	orgID := uuid.New()
	branchID := uuid.New()
	existing := &domain.Vendor{ID: uuid.New(), OrganizationID: orgID, Name: "Acme Traders"}

	vendorRepo.On("FindByName", mock.Anything, orgID, "Acme Traders").Return(existing, nil)

	id, err := resolver.ResolveOrCreate(context.Background(), domain.PartyVendor, "Acme Traders", "", orgID, branchID)

	assert.NoError(t, err)
	assert.Equal(t, existing.ID, id)
	vendorRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	vendorRepo.AssertExpectations(t)
}

func TestPartyResolver_VendorGSTINFallback(t *testing.T) {
	customerRepo := new(mocks.MockCustomerRepo)
	vendorRepo := new(mocks.MockVendorRepo)
	resolver := service.NewPartyResolver(customerRepo, vendorRepo)

	orgID := uuid.New()
	branchID := uuid.New()
	existing := &domain.Vendor{ID: uuid.New(), OrganizationID: orgID, Name: "Acme Traders Pvt Ltd", GSTIN: "27AAACA1234A1Z5"}

	vendorRepo.On("FindByName", mock.Anything, orgID, "Acme").Return(nil, domain.ErrNotFound)
	vendorRepo.On("FindByGSTIN", mock.Anything, orgID, "27AAACA1234A1Z5").Return(existing, nil)

	id, err := resolver.ResolveOrCreate(context.Background(), domain.PartyVendor, "Acme", "27AAACA1234A1Z5", orgID, branchID)

	assert.NoError(t, err)
	assert.Equal(t, existing.ID, id)
	vendorRepo.AssertExpectations(t)
}

func TestPartyResolver_CreatesVendorWhenNoMatch(t *testing.T) {
	customerRepo := new(mocks.MockCustomerRepo)
	vendorRepo := new(mocks.MockVendorRepo)
	resolver := service.NewPartyResolver(customerRepo, vendorRepo)

	orgID := uuid.New()
	branchID := uuid.New()

	vendorRepo.On("FindByName", mock.Anything, orgID, "New Supplier").Return(nil, domain.ErrNotFound)
	vendorRepo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Vendor) bool {
		return v.OrganizationID == orgID && v.BranchID == branchID && v.Name == "New Supplier"
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Vendor).ID = uuid.New()
	})

	id, err := resolver.ResolveOrCreate(context.Background(), domain.PartyVendor, "New Supplier", "", orgID, branchID)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	vendorRepo.AssertExpectations(t)
}

func TestPartyResolver_TrimsHints(t *testing.T) {
	customerRepo := new(mocks.MockCustomerRepo)
	vendorRepo := new(mocks.MockVendorRepo)
	resolver := service.NewPartyResolver(customerRepo, vendorRepo)

	orgID := uuid.New()
	existing := &domain.Customer{ID: uuid.New(), OrganizationID: orgID, Name: "Sharma Stores"}

	customerRepo.On("FindByName", mock.Anything, orgID, "Sharma Stores").Return(existing, nil)

	id, err := resolver.ResolveOrCreate(context.Background(), domain.PartyCustomer, "  Sharma Stores  ", "", orgID, uuid.New())

	assert.NoError(t, err)
	assert.Equal(t, existing.ID, id)
	customerRepo.AssertExpectations(t)
}

func TestPartyResolver_EmptyHintsRejected(t *testing.T) {
	resolver := service.NewPartyResolver(new(mocks.MockCustomerRepo), new(mocks.MockVendorRepo))

	_, err := resolver.ResolveOrCreate(context.Background(), domain.PartyVendor, "   ", "", uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPartyResolver_LookupErrorPropagates(t *testing.T) {
	customerRepo := new(mocks.MockCustomerRepo)
	vendorRepo := new(mocks.MockVendorRepo)
	resolver := service.NewPartyResolver(customerRepo, vendorRepo)

	orgID := uuid.New()
	dbErr := errors.New("connection reset")
	vendorRepo.On("FindByName", mock.Anything, orgID, "Acme").Return(nil, dbErr)

	_, err := resolver.ResolveOrCreate(context.Background(), domain.PartyVendor, "Acme", "", orgID, uuid.New())

	assert.ErrorIs(t, err, dbErr)
	vendorRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
