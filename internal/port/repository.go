package port

import (
	"context"

	"github.com/google/uuid"

	"gstbooks/internal/domain"
)

// TxManager runs a unit of work inside one database transaction. The
// transaction travels in the context, so every repository call made
// within fn joins it; fn returning an error rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// OrganizationRepository defines the contract for organization persistence.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	GetByGSTIN(ctx context.Context, gstin string) (*domain.Organization, error)
}

// BranchRepository defines the contract for branch persistence.
type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) error
	GetByID(ctx context.Context, orgID, branchID uuid.UUID) (*domain.Branch, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Branch, error)
	HeadOffice(ctx context.Context, orgID uuid.UUID) (*domain.Branch, error)
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, orgID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
