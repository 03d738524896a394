package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/emprecords/modules/hrm/domain/aggregates/employee"
)

const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
)

// mapPgError classifies a driver error into the employee error taxonomy.
func mapPgError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return &employee.StorageError{Op: op, Err: err}
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return employee.ErrDuplicateKey
	case pgNotNullViolation:
		return &employee.ValidationError{Fields: []string{pgErr.ColumnName}}
	default:
		return &employee.StorageError{Op: op, Err: err}
	}
}
