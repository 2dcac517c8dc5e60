package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jprint-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "vendor_admin", cfg.Vendor.ID)
	assert.Equal(t, "Kartik Guleria", cfg.Vendor.Name)
	assert.Equal(t, "kartikguleria12@gmail.com", cfg.Vendor.Email)
	assert.Equal(t, "kk@123", cfg.Vendor.Password)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Storage.Enabled())
	assert.Equal(t, 3*time.Second, cfg.Redis.TTL)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ORDERS_CACHE_TTL_SECONDS", "10")
	t.Setenv("S3_BUCKET", "jprint-files")
	t.Setenv("VENDOR_PASSWORD", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.False(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 10*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.Storage.Enabled())
	assert.Equal(t, "secreto", cfg.Vendor.Password)
}

func TestLoad_ProduccionExigeSecretoJWT(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProduccionExigeCredencialDelVendedor(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("VENDOR_PASSWORD", "rotada")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "rotada", cfg.Vendor.Password)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "jprint", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/jprint?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://u:p@h:1/d"
	assert.Equal(t, "postgres://u:p@h:1/d", c.DSN())
}
