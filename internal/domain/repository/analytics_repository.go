package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
)

// StatusTotal cantidad de pedidos e ingresos acumulados en un estado.
type StatusTotal struct {
	Status  entity.OrderStatus
	Orders  int64
	Revenue decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el panel del vendedor.
type AnalyticsRepository interface {
	// GetTotalsByStatus agrupa todos los pedidos por estado. Estados sin pedidos pueden omitirse.
	GetTotalsByStatus(ctx context.Context) ([]StatusTotal, error)
	// GetSalesMetrics suma total_amount y cuenta pedidos creados en [start, end].
	GetSalesMetrics(ctx context.Context, start, end time.Time) (revenue decimal.Decimal, orders int64, err error)
}
