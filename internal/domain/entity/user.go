package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleStudent = "user"
	RoleVendor  = "vendor"
)

// User representa una cuenta registrada (estudiante) o la cuenta sembrada del vendedor.
// No se modifica después del registro salvo la rotación del hash del vendedor.
type User struct {
	ID           string
	Name         string
	Email        string // normalizado: minúsculas y sin espacios
	PasswordHash string // bcrypt, nunca la credencial en claro
	Role         string // user, vendor
	CreatedAt    time.Time
}

// IsVendor indica si la cuenta tiene rol de vendedor.
func (u *User) IsVendor() bool {
	return u != nil && u.Role == RoleVendor
}

// NormalizeEmail forma canónica del email: sin espacios y en minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
