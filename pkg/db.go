package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsForeignKeyViolationError checks if the error is a foreign key violation error
func IsForeignKeyViolationError(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == pgForeignKeyViolation
}

// IsUniqueViolationError checks if the error is a unique violation error
func IsUniqueViolationError(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == pgUniqueViolation
}

// ViolatedConstraint returns the name of the constraint or index the error
// reports, or "" for anything else.
func ViolatedConstraint(err error) string {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}
