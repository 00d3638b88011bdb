package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique
// violation of the named constraint. An empty name matches any constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	return isViolation(err, CodeUniqueViolation, constraintName)
}

// IsForeignKeyError checks if the error is a PostgreSQL foreign key violation
// of the named constraint. An empty name matches any constraint.
func IsForeignKeyError(err error, constraintName string) bool {
	return isViolation(err, CodeForeignKeyViolation, constraintName)
}

func isViolation(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraintName == "" || pgErr.ConstraintName == constraintName
}
