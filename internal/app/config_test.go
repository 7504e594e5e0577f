package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("ORDERS_HTTP_ADDR", "")
	t.Setenv("ORDERS_METRICS_ADDR", "")
	t.Setenv("ORDERS_POSTGRES_DSN", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("ORDERS_MODE", "")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Empty(t, cfg.KafkaBroker)
	assert.Equal(t, ModeBlocking, cfg.Mode)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("ORDERS_HTTP_ADDR", ":8181")
	t.Setenv("ORDERS_METRICS_ADDR", ":9191")
	t.Setenv("ORDERS_POSTGRES_DSN", "postgres://localhost/orders")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("ORDERS_MODE", "reactive")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8181", cfg.HTTPAddr)
	assert.Equal(t, ":9191", cfg.MetricsAddr)
	assert.Equal(t, "postgres://localhost/orders", cfg.PostgresDSN)
	assert.Equal(t, "broker-1:9092,broker-2:9092", cfg.KafkaBroker)
	assert.Equal(t, ModeReactive, cfg.Mode)
}

func TestConfigFromEnv_UnknownMode(t *testing.T) {
	t.Setenv("ORDERS_MODE", "parallel")

	_, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORDERS_MODE")
}
