package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders/internal/messaging/local"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
	"github.com/vladislavdragonenkov/orders/internal/service/flow"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
)

// eventSource — значение metadata.source в публикуемых событиях.
const eventSource = "order-api"

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Repos   domain.RepositoryProvider
	UoW     domain.UnitOfWork
	Events  domain.EventPublisher
	Runner  flow.Runner
	Metrics *metrics.APIMetrics
	Logger  *log.Entry

	store    *postgres.Store
	producer *kafka.Producer
}

// NewDependencies создаёт и инициализирует все зависимости приложения.
// Хранилище выбирается по наличию DSN: postgres при заданном
// ORDERS_POSTGRES_DSN, иначе in-memory. Publisher выбирается по наличию
// брокеров Kafka; без брокеров события только логируются.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{
		Metrics: metrics.NewAPIMetrics(),
		Logger:  logger,
	}

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		deps.store = store
		deps.Repos = postgres.NewProvider(store)
		deps.UoW = postgres.NewUnitOfWork(store)
		logger.Info("using postgres storage")
	} else {
		provider := memory.NewProvider()
		deps.Repos = provider
		deps.UoW = memory.NewUnitOfWork(provider)
		logger.Info("using in-memory storage")
	}

	producer, err := initKafkaProducer(cfg.KafkaBroker, logger)
	if producer != nil && err == nil {
		deps.producer = producer
		deps.Events = kafka.NewPublisher(producer, deps.Metrics, eventSource)
	} else {
		deps.Events = local.NewPublisher()
		logger.Info("kafka not configured, events will only be logged")
	}

	switch cfg.Mode {
	case ModeReactive:
		deps.Runner = flow.NewChain(logger)
	default:
		deps.Runner = flow.NewSerial(logger)
	}
	logger.WithField("mode", cfg.Mode).Info("flow driver selected")

	return deps, nil
}

// Close освобождает внешние ресурсы: соединение с базой и Kafka producer.
func (d *Dependencies) Close() {
	closeKafka(d.producer, d.Logger)
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}

// StorageCheck возвращает проверку доступности хранилища для health probe.
func (d *Dependencies) StorageCheck(ctx context.Context) func() error {
	if d.store == nil {
		return func() error { return nil }
	}
	return func() error { return d.store.Ping(ctx) }
}
