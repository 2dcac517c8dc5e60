package repository

import (
	"context"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
// Es dueño de la unicidad del OTP entre pedidos activos: Create falla con
// domain.ErrOTPInUse si otro pedido no recogido ya tiene el mismo código.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// ListAll y ListByUser ordenan por fecha de creación descendente; empates por inserción (más reciente primero).
	ListAll(ctx context.Context) ([]*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	FindActiveByOTP(ctx context.Context, code string) (*entity.Order, error)
	// UpdateStatus es un compare-and-set: solo actualiza si el estado actual es from.
	// Devuelve (false, nil) si el pedido no existe o su estado ya no es from.
	UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error)
}
