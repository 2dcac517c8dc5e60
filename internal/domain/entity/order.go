package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de un pedido de impresión.
type OrderStatus string

// Estados válidos. El orden es estricto: paid → printed → collected.
const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusPrinted   OrderStatus = "printed"
	OrderStatusCollected OrderStatus = "collected"
)

// KindStationery identifica los ítems de papelería (precio fijo, no se imprimen).
const KindStationery = "stationery"

// ParseOrderStatus valida un estado recibido desde fuera del dominio.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPaid, OrderStatusPrinted, OrderStatusCollected:
		return OrderStatus(s), true
	}
	return "", false
}

// next es la única arista de salida de cada estado.
var next = map[OrderStatus]OrderStatus{
	OrderStatusPaid:    OrderStatusPrinted,
	OrderStatusPrinted: OrderStatusCollected,
}

// CanTransition indica si from → to es una arista legal de la máquina de estados.
// Repetir el mismo estado o saltar uno no lo es.
func CanTransition(from, to OrderStatus) bool {
	n, ok := next[from]
	return ok && n == to
}

// IsActive: un pedido activo todavía reserva su OTP.
func (s OrderStatus) IsActive() bool {
	return s != OrderStatusCollected
}

// LineItem es un archivo a imprimir o un ítem de papelería dentro del pedido.
type LineItem struct {
	ID         string
	Name       string
	Kind       string // MIME del archivo o "stationery"
	Size       int64  // bytes
	PageCount  int
	Price      decimal.Decimal // solo papelería
	Content    string          // payload en línea (data URL / base64)
	ContentRef string          // referencia externa cuando el payload se almacenó fuera de la BD
}

// IsStationery indica si el ítem se cobra por precio fijo en lugar de por página.
func (li LineItem) IsStationery() bool {
	return li.Kind == KindStationery
}

// maxItemIDLen largo máximo de un id de ítem enviado por el cliente (UUID o timestamp).
const maxItemIDLen = 64

// ValidItemID indica si id sirve como segmento de una clave de almacenamiento:
// solo [A-Za-z0-9._-], sin "..", hasta 64 caracteres.
func ValidItemID(id string) bool {
	if id == "" || len(id) > maxItemIDLen || strings.Contains(id, "..") {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

// PrintSettings opciones de impresión aplicadas a todos los archivos del pedido.
type PrintSettings struct {
	Color       bool
	DoubleSided bool
	Copies      int
}

// Order pedido de impresión. El total y el OTP se fijan al crear y no cambian.
type Order struct {
	ID          string
	UserID      string // vacío para pedidos de invitado
	UserEmail   string
	Items       []LineItem
	Settings    PrintSettings
	TotalAmount decimal.Decimal
	Status      OrderStatus
	OTP         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy indica si el pedido pertenece al usuario (por id, o por email para invitados).
func (o *Order) OwnedBy(userID, email string) bool {
	if o.UserID != "" {
		return o.UserID == userID
	}
	return email != "" && o.UserEmail == email
}
