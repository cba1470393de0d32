package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a PostgreSQL-backed product repository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO products (id, organization_id, name, hsn_code, unit_price, gst_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		p.ID, p.OrganizationID, p.Name, p.HSNCode, p.UnitPrice, p.GSTRate, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapNotFound(err, "productRepo.Create")
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, orgID, productID uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	query := `SELECT * FROM products WHERE id = $1 AND organization_id = $2`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &p, query, productID, orgID); err != nil {
		return nil, mapNotFound(err, "productRepo.GetByID")
	}
	return &p, nil
}

func (r *productRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID, offset, limit int) ([]domain.Product, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM products WHERE organization_id = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &total, countQuery, orgID); err != nil {
		return nil, 0, mapNotFound(err, "productRepo.ListByOrganization count")
	}

	products := []domain.Product{}
	query := `
		SELECT * FROM products
		WHERE organization_id = $1
		ORDER BY name
		OFFSET $2 LIMIT $3`
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &products, query, orgID, offset, limit); err != nil {
		return nil, 0, mapNotFound(err, "productRepo.ListByOrganization")
	}
	return products, total, nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE products
		SET name = $1, hsn_code = $2, unit_price = $3, gst_rate = $4, updated_at = $5
		WHERE id = $6 AND organization_id = $7`
	res, err := ext(ctx, r.db).ExecContext(ctx, query,
		p.Name, p.HSNCode, p.UnitPrice, p.GSTRate, p.UpdatedAt, p.ID, p.OrganizationID)
	if err != nil {
		return mapNotFound(err, "productRepo.Update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, orgID, productID uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1 AND organization_id = $2`
	res, err := ext(ctx, r.db).ExecContext(ctx, query, productID, orgID)
	if err != nil {
		return mapNotFound(err, "productRepo.Delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
