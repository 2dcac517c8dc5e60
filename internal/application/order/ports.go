package order

import (
	"context"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
)

// CodeGenerator produce candidatos de OTP. Lo implementa *otp.Generator.
type CodeGenerator interface {
	Next() string
}

// ListCache caché de lectura para los listados que el panel del vendedor consulta por polling.
// Un fallo de caché nunca debe romper la operación: Get devuelve false y Set/Invalidate se ignoran.
type ListCache interface {
	Get(ctx context.Context, key string) ([]*entity.Order, bool)
	Set(ctx context.Context, key string, orders []*entity.Order)
	Invalidate(ctx context.Context, keys ...string)
}

// PayloadStore almacena fuera de la BD el contenido de los archivos del pedido.
// Put devuelve la referencia que reemplaza al contenido en línea.
type PayloadStore interface {
	Put(ctx context.Context, orderID string, item entity.LineItem) (ref string, err error)
}

// Metrics contadores de negocio del ciclo de vida de pedidos.
type Metrics interface {
	OrderCreated()
	StatusChanged(from, to entity.OrderStatus)
	OTPCollision()
	OTPExhausted()
}

// ReceiptGenerator genera el comprobante de retiro en PDF.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order) ([]byte, error)
}

// Claves de caché de listados.
const cacheKeyAll = "all"

func cacheKeyUser(userID string) string { return "user:" + userID }

type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]*entity.Order, bool) { return nil, false }
func (nopCache) Set(context.Context, string, []*entity.Order)        {}
func (nopCache) Invalidate(context.Context, ...string)               {}

type nopMetrics struct{}

func (nopMetrics) OrderCreated()                                        {}
func (nopMetrics) StatusChanged(entity.OrderStatus, entity.OrderStatus) {}
func (nopMetrics) OTPCollision()                                        {}
func (nopMetrics) OTPExhausted()                                        {}
