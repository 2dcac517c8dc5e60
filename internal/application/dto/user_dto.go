package dto

import "time"

// RegisterRequest entrada para registro. El rol pedido se ignora: el registro siempre crea estudiantes.
type RegisterRequest struct {
	Name     string `json:"name" validate:"omitempty,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest entrada para login. Role = "vendor" fuerza la verificación contra la cuenta del vendedor.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty"`
}

// UserResponse identidad pública (sin credencial).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse identidad más el token JWT de sesión.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Requester identidad de quien invoca una operación (extraída del token).
type Requester struct {
	UserID string
	Email  string
	Role   string
}

// VendorAccount cuenta administrativa sembrada en la tabla users.
type VendorAccount struct {
	ID       string
	Name     string
	Email    string
	Password string
}
