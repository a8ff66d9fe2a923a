// Package pgerrs translates PostgreSQL driver errors into the error taxonomy
// of the core.
package pgerrs

import (
	"errors"

	"waterdelivery/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes that mean another transaction won the race.
const (
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
	UniqueViolation      = "23505"
)

// Translate wraps contention errors in an errs.ConflictError for resource and
// returns every other error unchanged.
func Translate(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictError(resource, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case SerializationFailure, DeadlockDetected, LockNotAvailable, UniqueViolation:
		return errs.NewConflictError(resource, err)
	default:
		return err
	}
}
