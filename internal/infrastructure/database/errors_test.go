package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	emailViolation := &pgconn.PgError{Code: "23505", ConstraintName: "idx_doctors_email"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "matching constraint", err: emailViolation, constraint: "email", want: true},
		{name: "wrapped matching constraint", err: fmt.Errorf("insert doctor: %w", emailViolation), constraint: "email", want: true},
		{name: "case insensitive constraint", err: emailViolation, constraint: "EMAIL", want: true},
		{name: "any constraint", err: emailViolation, constraint: "", want: true},
		{name: "other constraint", err: emailViolation, constraint: "str_number", want: false},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503", ConstraintName: "idx_doctors_email"}, constraint: "email", want: false},
		{name: "translated gorm error", err: gorm.ErrDuplicatedKey, constraint: "email", want: true},
		{name: "record not found", err: gorm.ErrRecordNotFound, constraint: "email", want: false},
		{name: "plain error mentioning duplicate", err: errors.New("duplicate key value violates unique constraint \"idx_doctors_email\""), constraint: "email", want: false},
		{name: "nil", err: nil, constraint: "email", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
