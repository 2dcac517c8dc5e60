package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas sobre orders para el panel del vendedor.
type AnalyticsRepo struct {
	db *Adapter
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(db *Adapter) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// GetTotalsByStatus cuenta pedidos y suma ingresos por estado.
func (r *AnalyticsRepo) GetTotalsByStatus(ctx context.Context) ([]repository.StatusTotal, error) {
	const query = `
	SELECT
	    status,
	    COUNT(*)                        AS orders,
	    COALESCE(SUM(total_amount), 0)  AS revenue
	FROM orders
	GROUP BY status
	ORDER BY status`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTotalsByStatus: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusTotal
	for rows.Next() {
		var (
			row    repository.StatusTotal
			status string
		)
		if err := rows.Scan(&status, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTotalsByStatus scan: %w", err)
		}
		row.Status = entity.OrderStatus(status)
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetTotalsByStatus: %w", classify(err))
	}
	return results, nil
}

// GetSalesMetrics ingresos y cantidad de pedidos creados en el período (ambos extremos incluidos).
// COALESCE devuelve cero si el período no tiene pedidos.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, start, end time.Time) (revenue decimal.Decimal, orders int64, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(total_amount), 0) AS revenue,
	    COUNT(*)                       AS orders
	FROM orders
	WHERE created_at BETWEEN ? AND ?`

	if err = r.db.QueryRow(ctx, query, start, end).Scan(&revenue, &orders); err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return revenue, orders, nil
}
