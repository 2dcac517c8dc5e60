// Package memory implementa los puertos de persistencia en memoria.
// La unicidad del OTP se garantiza con una sección crítica serializada (un solo escritor).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/jprint-api/internal/domain"
	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository     = (*OrderRepository)(nil)
	_ repository.AnalyticsRepository = (*OrderRepository)(nil)
)

// OrderRepository store de pedidos en memoria.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []*entity.Order // orden de inserción
	byID   map[string]*entity.Order
	active map[string]string // otp -> id de pedido no recogido
}

// NewOrderRepository construye el store vacío.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		byID:   make(map[string]*entity.Order),
		active: make(map[string]string),
	}
}

// Create inserta el pedido si su OTP no está reservado por otro pedido activo.
func (r *OrderRepository) Create(_ context.Context, order *entity.Order) error {
	if order == nil || order.ID == "" {
		return fmt.Errorf("order repository: id requerido")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[order.ID]; exists {
		return fmt.Errorf("order repository: id duplicado %s", order.ID)
	}
	if order.Status.IsActive() {
		if _, taken := r.active[order.OTP]; taken {
			return domain.ErrOTPInUse
		}
		r.active[order.OTP] = order.ID
	}
	c := cloneOrder(order)
	r.orders = append(r.orders, c)
	r.byID[c.ID] = c
	return nil
}

// GetByID devuelve una copia del pedido o nil si no existe.
func (r *OrderRepository) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneOrder(r.byID[id]), nil
}

// ListAll lista todos los pedidos, más recientes primero.
func (r *OrderRepository) ListAll(_ context.Context) ([]*entity.Order, error) {
	return r.list(func(*entity.Order) bool { return true }), nil
}

// ListByUser lista los pedidos de un usuario, más recientes primero.
func (r *OrderRepository) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	return r.list(func(o *entity.Order) bool { return o.UserID == userID }), nil
}

// FindActiveByOTP busca el pedido no recogido con ese código.
func (r *OrderRepository) FindActiveByOTP(_ context.Context, code string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.active[code]
	if !ok {
		return nil, nil
	}
	return cloneOrder(r.byID[id]), nil
}

// UpdateStatus compare-and-set del estado; al pasar a collected libera el OTP.
func (r *OrderRepository) UpdateStatus(_ context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok || o.Status != from {
		return false, nil
	}
	if from.IsActive() && !to.IsActive() && r.active[o.OTP] == o.ID {
		delete(r.active, o.OTP)
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return true, nil
}

// GetTotalsByStatus agrega pedidos e ingresos por estado.
func (r *OrderRepository) GetTotalsByStatus(_ context.Context) ([]repository.StatusTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc := make(map[entity.OrderStatus]*repository.StatusTotal)
	for _, o := range r.orders {
		t, ok := acc[o.Status]
		if !ok {
			t = &repository.StatusTotal{Status: o.Status, Revenue: decimal.Zero}
			acc[o.Status] = t
		}
		t.Orders++
		t.Revenue = t.Revenue.Add(o.TotalAmount)
	}
	out := make([]repository.StatusTotal, 0, len(acc))
	for _, t := range acc {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

// GetSalesMetrics suma los pedidos creados en [start, end].
func (r *OrderRepository) GetSalesMetrics(_ context.Context, start, end time.Time) (decimal.Decimal, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	revenue := decimal.Zero
	var n int64
	for _, o := range r.orders {
		if o.CreatedAt.Before(start) || o.CreatedAt.After(end) {
			continue
		}
		revenue = revenue.Add(o.TotalAmount)
		n++
	}
	return revenue, n, nil
}

func (r *OrderRepository) list(keep func(*entity.Order) bool) []*entity.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		if keep(r.orders[i]) {
			out = append(out, cloneOrder(r.orders[i]))
		}
	}
	// Recorrido inverso + orden estable: empates de fecha quedan por inserción descendente.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func cloneOrder(o *entity.Order) *entity.Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]entity.LineItem(nil), o.Items...)
	return &c
}
