package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jprint-api/internal/application/dto"
	"github.com/jhoicas/jprint-api/internal/domain"
	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/domain/repository"
	"github.com/jhoicas/jprint-api/internal/infrastructure/memory"
)

var vendor = dto.Requester{UserID: "vendor_admin", Role: entity.RoleVendor}

func seed(t *testing.T, repo *memory.OrderRepository, id, code string, status entity.OrderStatus, total string, at time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.Order{
		ID:          id,
		UserEmail:   "a@x.com",
		Status:      status,
		OTP:         code,
		TotalAmount: decimal.RequireFromString(total),
		CreatedAt:   at,
		UpdatedAt:   at,
	}))
}

func TestGetSummary(t *testing.T) {
	now := time.Date(2026, time.February, 15, 10, 0, 0, 0, time.UTC)
	repo := memory.NewOrderRepository()
	seed(t, repo, "o1", "1111", entity.OrderStatusPaid, "6", now.Add(-time.Hour))
	seed(t, repo, "o2", "2222", entity.OrderStatusPrinted, "40", now.Add(-2*time.Hour))
	seed(t, repo, "o3", "3333", entity.OrderStatusCollected, "17", time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC))
	seed(t, repo, "o4", "4444", entity.OrderStatusCollected, "10", time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC))

	uc := NewDashboardUseCase(repo)
	uc.now = func() time.Time { return now }

	got, err := uc.GetSummary(context.Background(), vendor)
	require.NoError(t, err)

	assert.True(t, got.Earnings.Equal(decimal.NewFromInt(73)), got.Earnings.String())
	assert.Equal(t, int64(2), got.PendingOrders)
	assert.Equal(t, int64(2), got.CompletedOrders)
	assert.True(t, got.TodaySales.Equal(decimal.NewFromInt(46)))
	assert.Equal(t, int64(2), got.TodayOrders)
	assert.True(t, got.MonthlySales.Equal(decimal.NewFromInt(63)))
	assert.Equal(t, int64(3), got.MonthlyOrders)
	assert.Equal(t, "Febrero 2026", got.DateLabel)

	require.Len(t, got.ByStatus, 3)
	assert.Equal(t, "collected", got.ByStatus[0].Status)
	assert.Equal(t, int64(2), got.ByStatus[0].Orders)
	assert.True(t, got.ByStatus[0].Revenue.Equal(decimal.NewFromInt(27)))
}

func TestGetSummary_SinPedidos(t *testing.T) {
	uc := NewDashboardUseCase(memory.NewOrderRepository())
	got, err := uc.GetSummary(context.Background(), vendor)
	require.NoError(t, err)
	assert.True(t, got.Earnings.IsZero())
	assert.Empty(t, got.ByStatus)
	assert.Zero(t, got.PendingOrders)
}

func TestGetSummary_SoloVendedor(t *testing.T) {
	uc := NewDashboardUseCase(memory.NewOrderRepository())
	for _, role := range []string{entity.RoleStudent, "", "admin"} {
		_, err := uc.GetSummary(context.Background(), dto.Requester{UserID: "u", Role: role})
		assert.ErrorIs(t, err, domain.ErrForbidden, role)
	}
}

type failingRepo struct{}

func (failingRepo) GetTotalsByStatus(context.Context) ([]repository.StatusTotal, error) {
	return nil, domain.ErrStoreUnavailable
}

func (failingRepo) GetSalesMetrics(context.Context, time.Time, time.Time) (decimal.Decimal, int64, error) {
	return decimal.Zero, 0, nil
}

func TestGetSummary_PropagaErrorDelStore(t *testing.T) {
	_, err := NewDashboardUseCase(failingRepo{}).GetSummary(context.Background(), vendor)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Diciembre 2025", monthLabel(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Enero 2026", monthLabel(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
