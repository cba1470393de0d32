package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a PostgreSQL-backed user repository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, organization_id, branch_id, email, password_hash, full_name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		user.ID, user.OrganizationID, user.BranchID, user.Email, user.PasswordHash,
		user.FullName, user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "email") {
			return domain.ErrDuplicateEmail
		}
		return mapNotFound(err, "userRepo.Create")
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, orgID, userID uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1 AND organization_id = $2`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, userID, orgID); err != nil {
		return nil, mapNotFound(err, "userRepo.GetByID")
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, email); err != nil {
		return nil, mapNotFound(err, "userRepo.GetByEmail")
	}
	return &user, nil
}
