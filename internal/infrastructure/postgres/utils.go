package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// constraintActiveOTP índice único parcial de OTP entre pedidos activos.
const constraintActiveOTP = "orders_active_otp_key"

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isNumericOutOfRange verifica si un valor no cabe en la columna numérica (22003).
func isNumericOutOfRange(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22003" // numeric_value_out_of_range
}

// violatedConstraint nombre del constraint que provocó el error, si el servidor lo informa.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// nullIfEmpty guarda NULL en lugar de cadena vacía (pedidos de invitado sin user_id).
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
