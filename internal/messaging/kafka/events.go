package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// Customer события
	EventTypeCustomerCreated EventType = "CUSTOMER_CREATED"
	EventTypeCustomerUpdated EventType = "CUSTOMER_UPDATED"
	EventTypeCustomerDeleted EventType = "CUSTOMER_DELETED"

	// Order события
	EventTypeOrderCreated EventType = "ORDER_CREATED"
	EventTypeOrderUpdated EventType = "ORDER_UPDATED"
	EventTypeOrderDeleted EventType = "ORDER_DELETED"

	// OrderItem события
	EventTypeOrderItemCreated EventType = "ORDER_ITEM_CREATED"
	EventTypeOrderItemUpdated EventType = "ORDER_ITEM_UPDATED"
	EventTypeOrderItemDeleted EventType = "ORDER_ITEM_DELETED"
)

// Topics для Kafka: канал выбирается по типу сущности, ключ — id сущности.
const (
	TopicCustomerEvents  = "orders.customer.events"
	TopicOrderEvents     = "orders.order.events"
	TopicOrderItemEvents = "orders.order-item.events"
)

// SchemaVersion — версия схемы событий в метаданных.
const SchemaVersion = "1.0"

// EventMetadata — общий блок метаданных каждого события.
type EventMetadata struct {
	Source  string `json:"source"`
	Version string `json:"version"`
}

// CustomerEvent — событие изменения клиента. Для created/updated несёт
// полный снимок сущности, для deleted — только идентификатор.
type CustomerEvent struct {
	EventID    string        `json:"event_id"`
	EventType  EventType     `json:"event_type"`
	Timestamp  time.Time     `json:"timestamp"`
	CustomerID string        `json:"customer_id"`
	Name       string        `json:"name,omitempty"`
	Email      string        `json:"email,omitempty"`
	Address    string        `json:"address,omitempty"`
	CreatedAt  *time.Time    `json:"created_at,omitempty"`
	Metadata   EventMetadata `json:"metadata"`
}

// OrderEvent — событие изменения заказа.
type OrderEvent struct {
	EventID     string        `json:"event_id"`
	EventType   EventType     `json:"event_type"`
	Timestamp   time.Time     `json:"timestamp"`
	OrderID     string        `json:"order_id"`
	CustomerID  string        `json:"customer_id,omitempty"`
	TotalAmount string        `json:"total_amount,omitempty"`
	Status      string        `json:"status,omitempty"`
	OrderDate   *time.Time    `json:"order_date,omitempty"`
	Metadata    EventMetadata `json:"metadata"`
}

// OrderItemEvent — событие изменения позиции заказа.
type OrderItemEvent struct {
	EventID     string        `json:"event_id"`
	EventType   EventType     `json:"event_type"`
	Timestamp   time.Time     `json:"timestamp"`
	OrderItemID string        `json:"order_item_id"`
	OrderID     string        `json:"order_id,omitempty"`
	ProductName string        `json:"product_name,omitempty"`
	Quantity    int32         `json:"quantity,omitempty"`
	Price       string        `json:"price,omitempty"`
	Metadata    EventMetadata `json:"metadata"`
}

func newMetadata(source string) EventMetadata {
	return EventMetadata{Source: source, Version: SchemaVersion}
}

// NewCustomerEvent строит событие со снимком клиента.
func NewCustomerEvent(eventType EventType, customer domain.Customer, source string) CustomerEvent {
	createdAt := customer.CreatedAt
	return CustomerEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Timestamp:  time.Now().UTC(),
		CustomerID: customer.ID,
		Name:       customer.Name,
		Email:      customer.Email,
		Address:    customer.Address,
		CreatedAt:  &createdAt,
		Metadata:   newMetadata(source),
	}
}

// NewCustomerDeletedEvent строит событие удаления: сущности больше нет,
// событие несёт только идентификатор.
func NewCustomerDeletedEvent(customerID, source string) CustomerEvent {
	return CustomerEvent{
		EventID:    uuid.NewString(),
		EventType:  EventTypeCustomerDeleted,
		Timestamp:  time.Now().UTC(),
		CustomerID: customerID,
		Metadata:   newMetadata(source),
	}
}

// NewOrderEvent строит событие со снимком заказа.
func NewOrderEvent(eventType EventType, order domain.Order, source string) OrderEvent {
	orderDate := order.OrderDate
	return OrderEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		Timestamp:   time.Now().UTC(),
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount.String(),
		Status:      string(order.Status),
		OrderDate:   &orderDate,
		Metadata:    newMetadata(source),
	}
}

// NewOrderDeletedEvent строит событие удаления заказа.
func NewOrderDeletedEvent(orderID, source string) OrderEvent {
	return OrderEvent{
		EventID:   uuid.NewString(),
		EventType: EventTypeOrderDeleted,
		Timestamp: time.Now().UTC(),
		OrderID:   orderID,
		Metadata:  newMetadata(source),
	}
}

// NewOrderItemEvent строит событие со снимком позиции.
func NewOrderItemEvent(eventType EventType, item domain.OrderItem, source string) OrderItemEvent {
	return OrderItemEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		Timestamp:   time.Now().UTC(),
		OrderItemID: item.ID,
		OrderID:     item.OrderID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		Price:       item.Price.String(),
		Metadata:    newMetadata(source),
	}
}

// NewOrderItemDeletedEvent строит событие удаления позиции.
func NewOrderItemDeletedEvent(itemID, source string) OrderItemEvent {
	return OrderItemEvent{
		EventID:     uuid.NewString(),
		EventType:   EventTypeOrderItemDeleted,
		Timestamp:   time.Now().UTC(),
		OrderItemID: itemID,
		Metadata:    newMetadata(source),
	}
}
