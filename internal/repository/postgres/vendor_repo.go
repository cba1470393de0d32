package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

type vendorRepo struct {
	db *sqlx.DB
}

// NewVendorRepo creates a PostgreSQL-backed vendor repository.
func NewVendorRepo(db *sqlx.DB) port.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, v *domain.Vendor) error {
	now := time.Now().UTC()
	v.ID = uuid.New()
	v.CreatedAt = now
	v.UpdatedAt = now

	query := `
		INSERT INTO vendors (id, organization_id, branch_id, name, gstin, email, phone, state_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		v.ID, v.OrganizationID, v.BranchID, v.Name, v.GSTIN, v.Email, v.Phone,
		v.StateCode, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return mapNotFound(err, "vendorRepo.Create")
	}
	return nil
}

func (r *vendorRepo) GetByID(ctx context.Context, orgID, vendorID uuid.UUID) (*domain.Vendor, error) {
	var v domain.Vendor
	query := `SELECT * FROM vendors WHERE id = $1 AND organization_id = $2`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &v, query, vendorID, orgID); err != nil {
		return nil, mapNotFound(err, "vendorRepo.GetByID")
	}
	return &v, nil
}

func (r *vendorRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Vendor, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM vendors WHERE organization_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, orgID); err != nil {
		return nil, 0, mapNotFound(err, "vendorRepo.ListByOrganization count")
	}

	vendors := []domain.Vendor{}
	query := `
		SELECT * FROM vendors
		WHERE organization_id = $1
		ORDER BY name
		OFFSET $2 LIMIT $3`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &vendors, query, orgID, offset, limit); err != nil {
		return nil, 0, mapNotFound(err, "vendorRepo.ListByOrganization")
	}
	return vendors, total, nil
}

func (r *vendorRepo) FindByName(ctx context.Context, orgID uuid.UUID, name string) (*domain.Vendor, error) {
	var v domain.Vendor
	query := `
		SELECT * FROM vendors
		WHERE organization_id = $1 AND LOWER(name) = LOWER($2)
		ORDER BY created_at
		LIMIT 1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &v, query, orgID, name); err != nil {
		return nil, mapNotFound(err, "vendorRepo.FindByName")
	}
	return &v, nil
}

func (r *vendorRepo) FindByGSTIN(ctx context.Context, orgID uuid.UUID, gstin string) (*domain.Vendor, error) {
	var v domain.Vendor
	query := `
		SELECT * FROM vendors
		WHERE organization_id = $1 AND gstin = $2
		ORDER BY created_at
		LIMIT 1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &v, query, orgID, gstin); err != nil {
		return nil, mapNotFound(err, "vendorRepo.FindByGSTIN")
	}
	return &v, nil
}

func (r *vendorRepo) Update(ctx context.Context, v *domain.Vendor) error {
	v.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE vendors
		SET name = $1, gstin = $2, email = $3, phone = $4, state_code = $5, updated_at = $6
		WHERE id = $7 AND organization_id = $8`
	res, err := ext(ctx, r.db).ExecContext(ctx, query,
		v.Name, v.GSTIN, v.Email, v.Phone, v.StateCode, v.UpdatedAt, v.ID, v.OrganizationID)
	if err != nil {
		return mapNotFound(err, "vendorRepo.Update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vendorRepo) Delete(ctx context.Context, orgID, vendorID uuid.UUID) error {
	query := `DELETE FROM vendors WHERE id = $1 AND organization_id = $2`
	res, err := ext(ctx, r.db).ExecContext(ctx, query, vendorID, orgID)
	if err != nil {
		return mapNotFound(err, "vendorRepo.Delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
