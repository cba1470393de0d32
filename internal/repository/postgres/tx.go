package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"gstbooks/internal/domain"
	"gstbooks/internal/port"
)

// txKey carries the ambient transaction through the context so every
// repository call made inside TxManager.WithinTx joins the same
// transaction without changing repository signatures.
type txKey struct{}

type txManager struct {
	db *sqlx.DB
}

// NewTxManager creates a sqlx-backed port.TxManager.
func NewTxManager(db *sqlx.DB) port.TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		// Already inside a transaction; nest by joining it.
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("txManager.WithinTx begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txManager.WithinTx commit: %w", err)
	}
	return nil
}

// ext returns the ambient transaction when one is in the context,
// otherwise the shared pool.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// isUniqueViolation reports whether err is a unique-constraint
// violation touching the named column or constraint.
func isUniqueViolation(err error, hint string) bool {
	return err != nil &&
		strings.Contains(err.Error(), "duplicate key") &&
		strings.Contains(err.Error(), hint)
}

// mapNotFound converts sql.ErrNoRows into the domain sentinel.
func mapNotFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
