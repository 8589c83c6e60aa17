package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Outcome errors returned by the data-access functions. Callers branch with
// errors.Is; anything else is infrastructure failure and propagates as-is.
var (
	// ErrNotFound means a point lookup, mutation, or delete targeted a row
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists means a create violated a unique constraint.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidCredentials is returned by password verification. It does not
	// distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation,
// optionally on a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// notFoundIfNoRows translates pgx.ErrNoRows into ErrNotFound for point
// lookups and mutations that target a specific row.
func notFoundIfNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
