package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE 23505 = unique_violation
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation on
// a constraint whose name contains constraintName. An empty constraintName
// matches any unique constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != uniqueViolationCode {
			return false
		}
		return constraintName == "" ||
			strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	// gorm.Config.TranslateError drops the constraint name
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
