// Package local содержит публикацию событий без внешнего брокера:
// события только логируются. Используется при запуске без Kafka.
package local

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Publisher пишет события в журнал вместо отправки в брокер.
type Publisher struct {
	logger *log.Entry
}

var _ domain.EventPublisher = (*Publisher)(nil)

// NewPublisher создает лог-публикатор событий.
func NewPublisher() *Publisher {
	return &Publisher{
		logger: log.WithField("component", "local-publisher"),
	}
}

func (p *Publisher) log(eventType, entityID string) {
	p.logger.WithFields(log.Fields{
		"event_type": eventType,
		"entity_id":  entityID,
	}).Info("event recorded locally")
}

func (p *Publisher) CustomerCreated(_ context.Context, customer domain.Customer) {
	p.log("CUSTOMER_CREATED", customer.ID)
}

func (p *Publisher) CustomerUpdated(_ context.Context, customer domain.Customer) {
	p.log("CUSTOMER_UPDATED", customer.ID)
}

func (p *Publisher) CustomerDeleted(_ context.Context, customerID string) {
	p.log("CUSTOMER_DELETED", customerID)
}

func (p *Publisher) OrderCreated(_ context.Context, order domain.Order) {
	p.log("ORDER_CREATED", order.ID)
}

func (p *Publisher) OrderUpdated(_ context.Context, order domain.Order) {
	p.log("ORDER_UPDATED", order.ID)
}

func (p *Publisher) OrderDeleted(_ context.Context, orderID string) {
	p.log("ORDER_DELETED", orderID)
}

func (p *Publisher) OrderItemCreated(_ context.Context, item domain.OrderItem) {
	p.log("ORDER_ITEM_CREATED", item.ID)
}

func (p *Publisher) OrderItemUpdated(_ context.Context, item domain.OrderItem) {
	p.log("ORDER_ITEM_UPDATED", item.ID)
}

func (p *Publisher) OrderItemDeleted(_ context.Context, itemID string) {
	p.log("ORDER_ITEM_DELETED", itemID)
}
