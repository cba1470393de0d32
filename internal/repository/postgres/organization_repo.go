package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

type organizationRepo struct {
	db *sqlx.DB
}

// NewOrganizationRepo creates a PostgreSQL-backed organization repository.
func NewOrganizationRepo(db *sqlx.DB) port.OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	now := time.Now().UTC()
	org.ID = uuid.New()
	org.CreatedAt = now
	org.UpdatedAt = now

	query := `
		INSERT INTO organizations (id, name, gstin, state_code, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		org.ID, org.Name, org.GSTIN, org.StateCode, org.IsActive, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "gstin") {
			return domain.ErrDuplicateGSTIN
		}
		return mapNotFound(err, "organizationRepo.Create")
	}
	return nil
}

func (r *organizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	query := `SELECT * FROM organizations WHERE id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &org, query, id); err != nil {
		return nil, mapNotFound(err, "organizationRepo.GetByID")
	}
	return &org, nil
}

func (r *organizationRepo) GetByGSTIN(ctx context.Context, gstin string) (*domain.Organization, error) {
	var org domain.Organization
	query := `SELECT * FROM organizations WHERE gstin = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &org, query, gstin); err != nil {
		return nil, mapNotFound(err, "organizationRepo.GetByGSTIN")
	}
	return &org, nil
}

type branchRepo struct {
	db *sqlx.DB
}

// NewBranchRepo creates a PostgreSQL-backed branch repository.
func NewBranchRepo(db *sqlx.DB) port.BranchRepository {
	return &branchRepo{db: db}
}

func (r *branchRepo) Create(ctx context.Context, branch *domain.Branch) error {
	branch.ID = uuid.New()
	branch.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO branches (id, organization_id, name, is_head_office, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		branch.ID, branch.OrganizationID, branch.Name, branch.IsHeadOffice, branch.CreatedAt)
	if err != nil {
		return mapNotFound(err, "branchRepo.Create")
	}
	return nil
}

func (r *branchRepo) GetByID(ctx context.Context, orgID, branchID uuid.UUID) (*domain.Branch, error) {
	var branch domain.Branch
	query := `SELECT * FROM branches WHERE id = $1 AND organization_id = $2`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &branch, query, branchID, orgID); err != nil {
		return nil, mapNotFound(err, "branchRepo.GetByID")
	}
	return &branch, nil
}

func (r *branchRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Branch, error) {
	branches := []domain.Branch{}
	query := `SELECT * FROM branches WHERE organization_id = $1 ORDER BY created_at`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &branches, query, orgID); err != nil {
		return nil, mapNotFound(err, "branchRepo.ListByOrganization")
	}
	return branches, nil
}

func (r *branchRepo) HeadOffice(ctx context.Context, orgID uuid.UUID) (*domain.Branch, error) {
	var branch domain.Branch
	query := `SELECT * FROM branches WHERE organization_id = $1 AND is_head_office = true LIMIT 1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &branch, query, orgID); err != nil {
		return nil, mapNotFound(err, "branchRepo.HeadOffice")
	}
	return &branch, nil
}
