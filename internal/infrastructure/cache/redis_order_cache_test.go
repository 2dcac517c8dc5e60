package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/infrastructure/cache"
	"github.com/jhoicas/jprint-api/pkg/config"
)

// unreachable apunta a un puerto sin servidor: todas las operaciones fallan rápido.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
}

func TestRedisOrderCache_FalloDeRedisEsMiss(t *testing.T) {
	rdb := unreachable()
	defer rdb.Close()
	c := cache.NewRedisOrderCache(rdb, time.Second, nil)
	ctx := context.Background()

	c.Set(ctx, "all", []*entity.Order{{ID: "o1"}})
	orders, ok := c.Get(ctx, "all")
	assert.False(t, ok)
	assert.Nil(t, orders)
	assert.NotPanics(t, func() { c.Invalidate(ctx, "all", "user:u1") })
	assert.NotPanics(t, func() { c.Invalidate(ctx) })
}

func TestNewRedisClient_PingFallido(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := cache.NewRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func newMiniredisCache(t *testing.T, ttl time.Duration) (*cache.RedisOrderCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb, err := cache.NewRedisClient(context.Background(), config.RedisConfig{Addr: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewRedisOrderCache(rdb, ttl, nil), srv
}

func TestRedisOrderCache_SetGetConservaElPedido(t *testing.T) {
	c, srv := newMiniredisCache(t, 3*time.Second)
	ctx := context.Background()

	created := time.Date(2026, time.March, 4, 10, 30, 15, 123456000, time.UTC)
	in := []*entity.Order{{
		ID:        "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
		UserID:    "user_abc",
		UserEmail: "a@x.com",
		Items: []entity.LineItem{
			{ID: "i1", Name: "Tésis.pdf", Kind: "application/pdf", Size: 2048, PageCount: 3, ContentRef: "s3://b/orders/o/i1"},
			{ID: "i2", Name: "Lapicero", Kind: entity.KindStationery, Price: decimal.RequireFromString("12.50")},
		},
		Settings:    entity.PrintSettings{Color: true, DoubleSided: true, Copies: 2},
		TotalAmount: decimal.RequireFromString("72.50"),
		Status:      entity.OrderStatusPrinted,
		OTP:         "4821",
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Minute),
	}}

	c.Set(ctx, "all", in)
	assert.True(t, srv.Exists("jprint:orders:all"))
	assert.Equal(t, 3*time.Second, srv.TTL("jprint:orders:all"))

	out, ok := c.Get(ctx, "all")
	require.True(t, ok)
	require.Len(t, out, 1)
	got := out[0]
	assert.Equal(t, in[0].ID, got.ID)
	assert.Equal(t, in[0].UserEmail, got.UserEmail)
	assert.Equal(t, entity.OrderStatusPrinted, got.Status)
	assert.Equal(t, "4821", got.OTP)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("72.5")), got.TotalAmount.String())
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.Equal(created.Add(time.Minute)))
	assert.Equal(t, in[0].Settings, got.Settings)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Tésis.pdf", got.Items[0].Name)
	assert.Equal(t, "s3://b/orders/o/i1", got.Items[0].ContentRef)
	assert.True(t, got.Items[1].Price.Equal(decimal.RequireFromString("12.5")))
}

func TestRedisOrderCache_InvalidateYExpiracion(t *testing.T) {
	c, srv := newMiniredisCache(t, 3*time.Second)
	ctx := context.Background()

	c.Set(ctx, "all", []*entity.Order{{ID: "o1"}})
	c.Set(ctx, "user:u1", []*entity.Order{{ID: "o1"}})
	c.Set(ctx, "user:u2", []*entity.Order{{ID: "o2"}})

	c.Invalidate(ctx, "all", "user:u1")
	_, ok := c.Get(ctx, "all")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "user:u1")
	assert.False(t, ok)
	out, ok := c.Get(ctx, "user:u2")
	require.True(t, ok)
	assert.Equal(t, "o2", out[0].ID)

	srv.FastForward(4 * time.Second)
	_, ok = c.Get(ctx, "user:u2")
	assert.False(t, ok, "el listado expira con el TTL")
}

func TestRedisOrderCache_ValorCorruptoEsMiss(t *testing.T) {
	c, srv := newMiniredisCache(t, time.Second)
	require.NoError(t, srv.Set("jprint:orders:all", "{no es json"))
	_, ok := c.Get(context.Background(), "all")
	assert.False(t, ok)
}
