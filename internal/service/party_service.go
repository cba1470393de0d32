package service

import (
	"context"

	"github.com/google/uuid"

	"gstbooks/internal/domain"
	"gstbooks/internal/money"
	"gstbooks/internal/port"
)

// PartyInput is the DTO for customer and vendor writes.
type PartyInput struct {
	Name      string `json:"name" binding:"required"`
	GSTIN     string `json:"gstin"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StateCode string `json:"state_code"`
}

// ProductInput is the DTO for product catalog writes.
type ProductInput struct {
	Name      string `json:"name" binding:"required"`
	HSNCode   string `json:"hsn_code"`
	UnitPrice string `json:"unit_price" binding:"required"`
	GSTRate   string `json:"gst_rate" binding:"required"`
}

// CustomerService manages the customer book.
type CustomerService interface {
	Create(ctx context.Context, orgID, branchID uuid.UUID, input PartyInput) (*domain.Customer, error)
	GetByID(ctx context.Context, orgID, customerID uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, orgID, customerID uuid.UUID, input PartyInput) (*domain.Customer, error)
	Delete(ctx context.Context, orgID, customerID uuid.UUID) error
}

type customerService struct {
	repo port.CustomerRepository
}

// NewCustomerService creates a CustomerService implementation.
func NewCustomerService(repo port.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, orgID, branchID uuid.UUID, input PartyInput) (*domain.Customer, error) {
	c := &domain.Customer{
		OrganizationID: orgID,
		BranchID:       branchID,
		Name:           input.Name,
		GSTIN:          input.GSTIN,
		Email:          input.Email,
		Phone:          input.Phone,
		StateCode:      input.StateCode,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) GetByID(ctx context.Context, orgID, customerID uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, orgID, customerID)
}

func (s *customerService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Customer, int, error) {
	return s.repo.ListByOrganization(ctx, orgID, offset, limit)
}

func (s *customerService) Update(ctx context.Context, orgID, customerID uuid.UUID, input PartyInput) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, orgID, customerID)
	if err != nil {
		return nil, err
	}
	c.Name = input.Name
	c.GSTIN = input.GSTIN
	c.Email = input.Email
	c.Phone = input.Phone
	c.StateCode = input.StateCode
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, orgID, customerID uuid.UUID) error {
	return s.repo.Delete(ctx, orgID, customerID)
}

// VendorService manages the vendor book.
type VendorService interface {
	Create(ctx context.Context, orgID, branchID uuid.UUID, input PartyInput) (*domain.Vendor, error)
	GetByID(ctx context.Context, orgID, vendorID uuid.UUID) (*domain.Vendor, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error)
	Update(ctx context.Context, orgID, vendorID uuid.UUID, input PartyInput) (*domain.Vendor, error)
	Delete(ctx context.Context, orgID, vendorID uuid.UUID) error
}

type vendorService struct {
	repo port.VendorRepository
}

// NewVendorService creates a VendorService implementation.
func NewVendorService(repo port.VendorRepository) VendorService {
	return &vendorService{repo: repo}
}

func (s *vendorService) Create(ctx context.Context, orgID, branchID uuid.UUID, input PartyInput) (*domain.Vendor, error) {
	v := &domain.Vendor{
		OrganizationID: orgID,
		BranchID:       branchID,
		Name:           input.Name,
		GSTIN:          input.GSTIN,
		Email:          input.Email,
		Phone:          input.Phone,
		StateCode:      input.StateCode,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *vendorService) GetByID(ctx context.Context, orgID, vendorID uuid.UUID) (*domain.Vendor, error) {
	return s.repo.GetByID(ctx, orgID, vendorID)
}

func (s *vendorService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error) {
	return s.repo.ListByOrganization(ctx, orgID, offset, limit)
}

func (s *vendorService) Update(ctx context.Context, orgID, vendorID uuid.UUID, input PartyInput) (*domain.Vendor, error) {
	v, err := s.repo.GetByID(ctx, orgID, vendorID)
	if err != nil {
		return nil, err
	}
	v.Name = input.Name
	v.GSTIN = input.GSTIN
	v.Email = input.Email
	v.Phone = input.Phone
	v.StateCode = input.StateCode
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *vendorService) Delete(ctx context.Context, orgID, vendorID uuid.UUID) error {
	return s.repo.Delete(ctx, orgID, vendorID)
}

// ProductService manages the product catalog.
type ProductService interface {
	Create(ctx context.Context, orgID uuid.UUID, input ProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, orgID, productID uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, orgID, productID uuid.UUID, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, orgID, productID uuid.UUID) error
}

type productService struct {
	repo port.ProductRepository
}

// NewProductService creates a ProductService implementation.
func NewProductService(repo port.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, orgID uuid.UUID, input ProductInput) (*domain.Product, error) {
	price := money.ParseLoose(input.UnitPrice)
	if price.IsNegative() {
		return nil, domain.NewValidationError("unit_price", "unit price must not be negative")
	}
	rate := money.ParseLoose(input.GSTRate)
	if rate.IsNegative() {
		return nil, domain.NewValidationError("gst_rate", "GST rate must not be negative")
	}

	p := &domain.Product{
		OrganizationID: orgID,
		Name:           input.Name,
		HSNCode:        input.HSNCode,
		UnitPrice:      price,
		GSTRate:        rate,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) GetByID(ctx context.Context, orgID, productID uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, orgID, productID)
}

func (s *productService) List(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Product, int, error) {
	return s.repo.ListByOrganization(ctx, orgID, offset, limit)
}

func (s *productService) Update(ctx context.Context, orgID, productID uuid.UUID, input ProductInput) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	price := money.ParseLoose(input.UnitPrice)
	if price.IsNegative() {
		return nil, domain.NewValidationError("unit_price", "unit price must not be negative")
	}
	rate := money.ParseLoose(input.GSTRate)
	if rate.IsNegative() {
		return nil, domain.NewValidationError("gst_rate", "GST rate must not be negative")
	}
	p.Name = input.Name
	p.HSNCode = input.HSNCode
	p.UnitPrice = price
	p.GSTRate = rate
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, orgID, productID uuid.UUID) error {
	return s.repo.Delete(ctx, orgID, productID)
}
