package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest archivo o ítem de papelería enviado por el cliente.
type LineItemRequest struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Size      int64           `json:"size"`
	PageCount int             `json:"pageCount"`
	Price     decimal.Decimal `json:"price"`
	DataVal   string          `json:"dataVal,omitempty"`
}

// PrintSettingsDTO opciones de impresión.
type PrintSettingsDTO struct {
	Color       bool `json:"color"`
	DoubleSided bool `json:"doubleSided"`
	Copies      int  `json:"copies"`
}

// CreateOrderRequest entrada para crear un pedido.
// UserID/UserEmail los completa el handler desde el token; los invitados envían user_email.
// TotalAmount es informativo: el servidor siempre recalcula el total.
type CreateOrderRequest struct {
	UserID      string            `json:"-"`
	UserEmail   string            `json:"user_email"`
	Files       []LineItemRequest `json:"files"`
	Settings    PrintSettingsDTO  `json:"settings"`
	TotalAmount *decimal.Decimal  `json:"totalAmount,omitempty"`
}

// UpdateStatusRequest entrada para cambiar el estado de un pedido.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// VerifyOTPRequest entrada para verificar un código de retiro.
type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

// LineItemResponse ítem del pedido en respuestas.
type LineItemResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Size       int64           `json:"size"`
	PageCount  int             `json:"pageCount"`
	Price      decimal.Decimal `json:"price"`
	DataVal    string          `json:"dataVal,omitempty"`
	ContentRef string          `json:"contentRef,omitempty"`
}

// OrderResponse salida de un pedido (incluye el OTP).
type OrderResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	UserEmail   string             `json:"userEmail"`
	Files       []LineItemResponse `json:"files"`
	Settings    PrintSettingsDTO   `json:"settings"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Status      string             `json:"status"`
	OTP         string             `json:"otp"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
