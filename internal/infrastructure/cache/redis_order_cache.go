// Package cache implementa la caché de listados de pedidos sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/pkg/config"
	"github.com/jhoicas/jprint-api/pkg/logger"
)

const keyPrefix = "jprint:orders:"

// NewRedisClient abre el cliente y verifica la conexión con un ping.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return rdb, nil
}

// RedisOrderCache implementa order.ListCache. Los errores de Redis se registran y se tratan como miss:
// la caché nunca hace fallar un listado.
type RedisOrderCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewRedisOrderCache construye la caché con el TTL de los listados.
func NewRedisOrderCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *RedisOrderCache {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisOrderCache{rdb: rdb, ttl: ttl, log: log}
}

// Get devuelve el listado cacheado; false en miss o error.
func (c *RedisOrderCache) Get(ctx context.Context, key string) ([]*entity.Order, bool) {
	val, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache: get")
		}
		return nil, false
	}
	var orders []*entity.Order
	if err := json.Unmarshal(val, &orders); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: valor corrupto")
		return nil, false
	}
	return orders, true
}

// Set guarda el listado con el TTL configurado.
func (c *RedisOrderCache) Set(ctx context.Context, key string, orders []*entity.Order) {
	data, err := json.Marshal(orders)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: marshal")
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: set")
	}
}

// Invalidate elimina las claves indicadas.
func (c *RedisOrderCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, keyPrefix+k)
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("cache: invalidate")
	}
}
