package app

import (
	"fmt"
	"os"
)

// Mode выбирает модель исполнения операций сервисного слоя.
type Mode string

const (
	// ModeBlocking — шаги операции исполняются на горутине вызова.
	ModeBlocking Mode = "blocking"
	// ModeReactive — шаги передаются по цепочке горутин-продолжений.
	ModeReactive Mode = "reactive"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	PostgresDSN string
	KafkaBroker string
	Mode        Mode
}

// DefaultConfig возвращает базовые настройки: HTTP API на :8080,
// метрики на :9090, хранилище в памяти, блокирующая модель.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		Mode:        ModeBlocking,
	}
}

// ConfigFromEnv читает настройки из окружения поверх значений по умолчанию.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("ORDERS_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ORDERS_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	cfg.PostgresDSN = os.Getenv("ORDERS_POSTGRES_DSN")
	cfg.KafkaBroker = os.Getenv("KAFKA_BROKERS")

	if v := os.Getenv("ORDERS_MODE"); v != "" {
		mode := Mode(v)
		if mode != ModeBlocking && mode != ModeReactive {
			return Config{}, fmt.Errorf("unknown ORDERS_MODE %q, expected %q or %q", v, ModeBlocking, ModeReactive)
		}
		cfg.Mode = mode
	}

	return cfg, nil
}
