package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/jprint-api/internal/domain"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"sin placeholders", "SELECT 1", "SELECT 1"},
		{"varios", "SELECT * FROM orders WHERE id = ? AND status = ?", "SELECT * FROM orders WHERE id = $1 AND status = $2"},
		{"literal", "SELECT '?' AS q, id FROM users WHERE email = ?", "SELECT '?' AS q, id FROM users WHERE email = $1"},
		{"literal con comilla escapada", "SELECT 'it''s ?', ?", "SELECT 'it''s ?', $1"},
		{"identificador", `SELECT "col?" FROM t WHERE a = ?`, `SELECT "col?" FROM t WHERE a = $1`},
		{"comentario", "-- ¿id?\nSELECT ?", "-- ¿id?\nSELECT $1"},
		{"más de nueve", "VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", "VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebind(tt.in))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))
	assert.ErrorIs(t, classify(pgx.ErrNoRows), pgx.ErrNoRows)
	assert.NotErrorIs(t, classify(pgx.ErrNoRows), domain.ErrStoreUnavailable)

	unavailable := []error{
		&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
		fmt.Errorf("query: %w", context.DeadlineExceeded),
		&pgconn.PgError{Code: "08006", Message: "connection failure"},
		&pgconn.PgError{Code: "57P01", Message: "terminating connection due to administrator command"},
		errors.New("closed pool"),
	}
	for _, err := range unavailable {
		assert.ErrorIs(t, classify(err), domain.ErrStoreUnavailable, err.Error())
	}

	unique := &pgconn.PgError{Code: "23505", ConstraintName: constraintActiveOTP}
	got := classify(unique)
	assert.NotErrorIs(t, got, domain.ErrStoreUnavailable)
	assert.True(t, isUniqueViolation(got))
	assert.Equal(t, constraintActiveOTP, violatedConstraint(got))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "user_1", nullIfEmpty("user_1"))
}

func TestMigrationNames(t *testing.T) {
	names, err := migrationNames()
	assert.NoError(t, err)
	assert.Contains(t, names, "001_init.sql")
}
