package kafka

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

// eventSender абстрагирует доставку события, в тестах подменяется заглушкой.
type eventSender interface {
	PublishEvent(topic string, key string, event interface{}) error
}

// Publisher реализует domain.EventPublisher поверх Kafka producer.
//
// Доставка строго fire-and-forget: одна попытка отправки, сбой логируется
// и учитывается в метриках, но никогда не возвращается вызывающему.
type Publisher struct {
	sender  eventSender
	metrics *metrics.APIMetrics
	source  string
	logger  *log.Entry
}

var _ domain.EventPublisher = (*Publisher)(nil)

// NewPublisher создает publisher событий поверх producer.
// source попадает в метаданные каждого события.
func NewPublisher(sender eventSender, m *metrics.APIMetrics, source string) *Publisher {
	return &Publisher{
		sender:  sender,
		metrics: m,
		source:  source,
		logger:  log.WithField("component", "event-publisher"),
	}
}

func (p *Publisher) send(topic, entity, key string, eventType EventType, event interface{}) {
	if err := p.sender.PublishEvent(topic, key, event); err != nil {
		p.metrics.RecordEventPublishFailure(entity)
		p.logger.WithError(err).WithFields(log.Fields{
			"topic":      topic,
			"event_type": eventType,
			"key":        key,
		}).Error("failed to publish event, continuing without it")
		return
	}

	p.metrics.RecordEventPublished(entity)
}

func (p *Publisher) CustomerCreated(_ context.Context, customer domain.Customer) {
	event := NewCustomerEvent(EventTypeCustomerCreated, customer, p.source)
	p.send(TopicCustomerEvents, "customer", customer.ID, event.EventType, event)
}

func (p *Publisher) CustomerUpdated(_ context.Context, customer domain.Customer) {
	event := NewCustomerEvent(EventTypeCustomerUpdated, customer, p.source)
	p.send(TopicCustomerEvents, "customer", customer.ID, event.EventType, event)
}

func (p *Publisher) CustomerDeleted(_ context.Context, customerID string) {
	event := NewCustomerDeletedEvent(customerID, p.source)
	p.send(TopicCustomerEvents, "customer", customerID, event.EventType, event)
}

func (p *Publisher) OrderCreated(_ context.Context, order domain.Order) {
	event := NewOrderEvent(EventTypeOrderCreated, order, p.source)
	p.send(TopicOrderEvents, "order", order.ID, event.EventType, event)
}

func (p *Publisher) OrderUpdated(_ context.Context, order domain.Order) {
	event := NewOrderEvent(EventTypeOrderUpdated, order, p.source)
	p.send(TopicOrderEvents, "order", order.ID, event.EventType, event)
}

func (p *Publisher) OrderDeleted(_ context.Context, orderID string) {
	event := NewOrderDeletedEvent(orderID, p.source)
	p.send(TopicOrderEvents, "order", orderID, event.EventType, event)
}

func (p *Publisher) OrderItemCreated(_ context.Context, item domain.OrderItem) {
	event := NewOrderItemEvent(EventTypeOrderItemCreated, item, p.source)
	p.send(TopicOrderItemEvents, "order_item", item.ID, event.EventType, event)
}

func (p *Publisher) OrderItemUpdated(_ context.Context, item domain.OrderItem) {
	event := NewOrderItemEvent(EventTypeOrderItemUpdated, item, p.source)
	p.send(TopicOrderItemEvents, "order_item", item.ID, event.EventType, event)
}

func (p *Publisher) OrderItemDeleted(_ context.Context, itemID string) {
	event := NewOrderItemDeletedEvent(itemID, p.source)
	p.send(TopicOrderItemEvents, "order_item", itemID, event.EventType, event)
}
