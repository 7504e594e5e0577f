package domain

import "context"

// EventPublisher публикует события об изменениях сущностей.
//
// Контракт fire-and-forget: одна попытка доставки на мутацию, сбой
// фиксируется внутри реализации и никогда не влияет на результат
// вызывающей операции. Методы поэтому ничего не возвращают.
type EventPublisher interface {
	CustomerCreated(ctx context.Context, customer Customer)
	CustomerUpdated(ctx context.Context, customer Customer)
	CustomerDeleted(ctx context.Context, customerID string)

	OrderCreated(ctx context.Context, order Order)
	OrderUpdated(ctx context.Context, order Order)
	OrderDeleted(ctx context.Context, orderID string)

	OrderItemCreated(ctx context.Context, item OrderItem)
	OrderItemUpdated(ctx context.Context, item OrderItem)
	OrderItemDeleted(ctx context.Context, itemID string)
}
