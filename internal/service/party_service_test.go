package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbooks/internal/domain"
	"gstbooks/mocks"
)

func TestCustomerServiceCreate(t *testing.T) {
	orgID := uuid.New()
	branchID := uuid.New()
	repo := new(mocks.MockCustomerRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.OrganizationID == orgID && c.BranchID == branchID && c.Name == "Acme Traders"
	})).Return(nil)

	svc := NewCustomerService(repo)
	customer, err := svc.Create(context.Background(), orgID, branchID, PartyInput{
		Name:      "Acme Traders",
		GSTIN:     "27AAPFU0939F1ZV",
		StateCode: "27",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", customer.Name)
	assert.Equal(t, "27AAPFU0939F1ZV", customer.GSTIN)
	repo.AssertExpectations(t)
}

func TestCustomerServiceUpdateMissing(t *testing.T) {
	orgID := uuid.New()
	customerID := uuid.New()
	repo := new(mocks.MockCustomerRepo)
	repo.On("GetByID", mock.Anything, orgID, customerID).Return(nil, domain.ErrNotFound)

	svc := NewCustomerService(repo)
	_, err := svc.Update(context.Background(), orgID, customerID, PartyInput{Name: "Renamed"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVendorServiceUpdateAppliesInput(t *testing.T) {
	orgID := uuid.New()
	vendorID := uuid.New()
	repo := new(mocks.MockVendorRepo)
	repo.On("GetByID", mock.Anything, orgID, vendorID).Return(&domain.Vendor{
		ID:             vendorID,
		OrganizationID: orgID,
		Name:           "Old Supplies",
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(v *domain.Vendor) bool {
		return v.ID == vendorID && v.Name == "New Supplies" && v.Phone == "9876543210"
	})).Return(nil)

	svc := NewVendorService(repo)
	vendor, err := svc.Update(context.Background(), orgID, vendorID, PartyInput{
		Name:  "New Supplies",
		Phone: "9876543210",
	})

	require.NoError(t, err)
	assert.Equal(t, "New Supplies", vendor.Name)
	repo.AssertExpectations(t)
}

func TestProductServiceCreateParsesMoney(t *testing.T) {
	orgID := uuid.New()
	repo := new(mocks.MockProductRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewProductService(repo)
	product, err := svc.Create(context.Background(), orgID, ProductInput{
		Name:      "Steel Rod",
		HSNCode:   "7214",
		UnitPrice: "1,250.50",
		GSTRate:   "18",
	})

	require.NoError(t, err)
	assert.Equal(t, "1250.5", product.UnitPrice.String())
	assert.Equal(t, "18", product.GSTRate.String())
}

func TestProductServiceCreateRejectsNegativePrice(t *testing.T) {
	repo := new(mocks.MockProductRepo)
	svc := NewProductService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), ProductInput{
		Name:      "Steel Rod",
		UnitPrice: "-10",
		GSTRate:   "18",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductServiceUpdateRejectsNegativeRate(t *testing.T) {
	orgID := uuid.New()
	productID := uuid.New()
	repo := new(mocks.MockProductRepo)
	repo.On("GetByID", mock.Anything, orgID, productID).Return(&domain.Product{
		ID:             productID,
		OrganizationID: orgID,
		Name:           "Steel Rod",
	}, nil)

	svc := NewProductService(repo)
	_, err := svc.Update(context.Background(), orgID, productID, ProductInput{
		Name:      "Steel Rod",
		UnitPrice: "100",
		GSTRate:   "-5",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
