package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Earnings suma todos los pedidos; Pending son los pagados o impresos aún sin recoger.
type DashboardSummaryDTO struct {
	Earnings        decimal.Decimal `json:"earnings"`
	PendingOrders   int64           `json:"pending_orders"`
	CompletedOrders int64           `json:"completed_orders"`

	// Métricas del día actual (00:00 – 23:59)
	TodaySales  decimal.Decimal `json:"today_sales"`
	TodayOrders int64           `json:"today_orders"`

	// Métricas del mes en curso (día 1 – hoy)
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyOrders int64           `json:"monthly_orders"`

	ByStatus []StatusCountDTO `json:"by_status"`

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}

// StatusCountDTO pedidos e ingresos de un estado.
type StatusCountDTO struct {
	Status  string          `json:"status"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}
