package port

import (
	"context"

	"github.com/google/uuid"

	"gstbooks/internal/domain"
)

// CustomerRepository defines the contract for customer persistence.
// All query methods are organization-scoped; the resolver's
// case-insensitive name lookup and exact GSTIN lookup never cross
// organizations.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, orgID, customerID uuid.UUID) (*domain.Customer, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Customer, int, error)
	FindByName(ctx context.Context, orgID uuid.UUID, name string) (*domain.Customer, error)
	FindByGSTIN(ctx context.Context, orgID uuid.UUID, gstin string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, orgID, customerID uuid.UUID) error
}

// VendorRepository defines the contract for vendor persistence.
type VendorRepository interface {
	Create(ctx context.Context, v *domain.Vendor) error
	GetByID(ctx context.Context, orgID, vendorID uuid.UUID) (*domain.Vendor, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error)
	FindByName(ctx context.Context, orgID uuid.UUID, name string) (*domain.Vendor, error)
	FindByGSTIN(ctx context.Context, orgID uuid.UUID, gstin string) (*domain.Vendor, error)
	Update(ctx context.Context, v *domain.Vendor) error
	Delete(ctx context.Context, orgID, vendorID uuid.UUID) error
}

// ProductRepository defines the contract for product catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, orgID, productID uuid.UUID) (*domain.Product, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, orgID, productID uuid.UUID) error
}
