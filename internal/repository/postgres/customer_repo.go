package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a PostgreSQL-backed customer repository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, c *domain.Customer) error {
	now := time.Now().UTC()
	c.ID = uuid.New()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO customers (id, organization_id, branch_id, name, gstin, email, phone, state_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		c.ID, c.OrganizationID, c.BranchID, c.Name, c.GSTIN, c.Email, c.Phone,
		c.StateCode, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapNotFound(err, "customerRepo.Create")
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, orgID, customerID uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	query := `SELECT * FROM customers WHERE id = $1 AND organization_id = $2`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &c, query, customerID, orgID); err != nil {
		return nil, mapNotFound(err, "customerRepo.GetByID")
	}
	return &c, nil
}

func (r *customerRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Customer, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM customers WHERE organization_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, orgID); err != nil {
		return nil, 0, mapNotFound(err, "customerRepo.ListByOrganization count")
	}

	customers := []domain.Customer{}
	query := `
		SELECT * FROM customers
		WHERE organization_id = $1
		ORDER BY name
		OFFSET $2 LIMIT $3`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &customers, query, orgID, offset, limit); err != nil {
		return nil, 0, mapNotFound(err, "customerRepo.ListByOrganization")
	}
	return customers, total, nil
}

func (r *customerRepo) FindByName(ctx context.Context, orgID uuid.UUID, name string) (*domain.Customer, error) {
	var c domain.Customer
	query := `
		SELECT * FROM customers
		WHERE organization_id = $1 AND LOWER(name) = LOWER($2)
		ORDER BY created_at
		LIMIT 1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &c, query, orgID, name); err != nil {
		return nil, mapNotFound(err, "customerRepo.FindByName")
	}
	return &c, nil
}

func (r *customerRepo) FindByGSTIN(ctx context.Context, orgID uuid.UUID, gstin string) (*domain.Customer, error) {
	var c domain.Customer
	query := `
		SELECT * FROM customers
		WHERE organization_id = $1 AND gstin = $2
		ORDER BY created_at
		LIMIT 1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &c, query, orgID, gstin); err != nil {
		return nil, mapNotFound(err, "customerRepo.FindByGSTIN")
	}
	return &c, nil
}

func (r *customerRepo) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE customers
		SET name = $1, gstin = $2, email = $3, phone = $4, state_code = $5, updated_at = $6
		WHERE id = $7 AND organization_id = $8`
	res, err := ext(ctx, r.db).ExecContext(ctx, query,
		c.Name, c.GSTIN, c.Email, c.Phone, c.StateCode, c.UpdatedAt, c.ID, c.OrganizationID)
	if err != nil {
		return mapNotFound(err, "customerRepo.Update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, orgID, customerID uuid.UUID) error {
	query := `DELETE FROM customers WHERE id = $1 AND organization_id = $2`
	res, err := ext(ctx, r.db).ExecContext(ctx, query, customerID, orgID)
	if err != nil {
		return mapNotFound(err, "customerRepo.Delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
