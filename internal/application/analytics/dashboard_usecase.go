// Package analytics contiene el resumen de ventas y de la cola de impresión
// que consume el panel del vendedor.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/jprint-api/internal/application/dto"
	"github.com/jhoicas/jprint-api/internal/domain"
	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del panel del vendedor.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO. Solo el vendedor puede verlo.
//
// Tres llamadas en paralelo:
//  1. GetSalesMetrics(hoy)  → TodaySales + TodayOrders
//  2. GetSalesMetrics(mes)  → MonthlySales + MonthlyOrders
//  3. GetTotalsByStatus     → Earnings, Pending, Completed, ByStatus
func (uc *DashboardUseCase) GetSummary(ctx context.Context, req dto.Requester) (*dto.DashboardSummaryDTO, error) {
	if req.Role != entity.RoleVendor {
		return nil, domain.ErrForbidden
	}
	now := uc.now()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type salesResult struct {
		revenue decimal.Decimal
		orders  int64
		err     error
	}
	type totalsResult struct {
		totals []repository.StatusTotal
		err    error
	}

	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	totalsCh := make(chan totalsResult, 1)

	go func() {
		rev, n, err := uc.analyticsRepo.GetSalesMetrics(ctx, todayStart, todayEnd)
		todayCh <- salesResult{rev, n, err}
	}()
	go func() {
		rev, n, err := uc.analyticsRepo.GetSalesMetrics(ctx, monthStart, todayEnd)
		monthCh <- salesResult{rev, n, err}
	}()
	go func() {
		totals, err := uc.analyticsRepo.GetTotalsByStatus(ctx)
		totalsCh <- totalsResult{totals, err}
	}()

	today := <-todayCh
	month := <-monthCh
	totals := <-totalsCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales por estado: %w", totals.err)
	}

	out := &dto.DashboardSummaryDTO{
		Earnings:      decimal.Zero,
		TodaySales:    today.revenue.Round(2),
		TodayOrders:   today.orders,
		MonthlySales:  month.revenue.Round(2),
		MonthlyOrders: month.orders,
		ByStatus:      make([]dto.StatusCountDTO, 0, len(totals.totals)),
		DateLabel:     monthLabel(now),
	}
	for _, t := range totals.totals {
		out.Earnings = out.Earnings.Add(t.Revenue)
		if t.Status.IsActive() {
			out.PendingOrders += t.Orders
		} else {
			out.CompletedOrders += t.Orders
		}
		out.ByStatus = append(out.ByStatus, dto.StatusCountDTO{
			Status: string(t.Status), Orders: t.Orders, Revenue: t.Revenue.Round(2),
		})
	}
	out.Earnings = out.Earnings.Round(2)
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
