package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/jprint-api/internal/domain"
	"github.com/jhoicas/jprint-api/internal/domain/entity"
)

// execErrQuerier falla todo Exec con el error configurado.
type execErrQuerier struct {
	err error
}

func (q execErrQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q execErrQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q execErrQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func newTestOrder() *entity.Order {
	now := time.Now().UTC()
	return &entity.Order{
		ID: "o1", UserEmail: "a@x.com", Status: entity.OrderStatusPaid, OTP: "1234",
		TotalAmount: decimal.RequireFromString("99999999999"), CreatedAt: now, UpdatedAt: now,
	}
}

func TestOrderRepo_Create_MapeaErrores(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"total fuera de rango", &pgconn.PgError{Code: "22003", Message: "numeric field overflow"}, domain.ErrInvalidInput},
		{"otp activo repetido", &pgconn.PgError{Code: "23505", ConstraintName: constraintActiveOTP}, domain.ErrOTPInUse},
		{"conexión caída", &pgconn.PgError{Code: "08006"}, domain.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewOrderRepository(NewAdapter(execErrQuerier{err: tt.err}))
			err := repo.Create(context.Background(), newTestOrder())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsNumericOutOfRange(t *testing.T) {
	assert.True(t, isNumericOutOfRange(&pgconn.PgError{Code: "22003"}))
	assert.False(t, isNumericOutOfRange(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isNumericOutOfRange(context.Canceled))
}
