package sqlite

import (
	"database/sql"
	"errors"

	"scandoc/internal/domain"

	"github.com/mattn/go-sqlite3"
)

// IsConstraintError checks if error is a uniqueness or foreign-key
// constraint violation
func IsConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

// IsNoRowsError checks if error is a "no rows" error
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// storageErr wraps a driver failure as a domain StorageError so callers
// can match errors.Is(err, domain.ErrIO).
func storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err}
}
