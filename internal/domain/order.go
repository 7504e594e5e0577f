package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает состояние заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан и ожидает подтверждения.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusConfirmed — заказ подтверждён.
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "SHIPPED"
	// OrderStatusDelivered — заказ доставлен клиенту.
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ValidStatus сообщает, известно ли значение статуса.
// Граф переходов между статусами не определён: update принимает любое
// известное значение.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order агрегирует состояние заказа. Позиции хранятся отдельно и
// связываются по OrderID.
type Order struct {
	ID         string
	CustomerID string
	OrderDate  time.Time
	// TotalAmount — производная сумма заказа. Вычисляется из позиций при
	// создании и поддерживается инкрементально операциями добавления и
	// удаления позиций. Прямой update заказа перезаписывает её без сверки
	// с позициями.
	TotalAmount decimal.Decimal
	Status      OrderStatus
}

// ItemsTotal возвращает сумму qty*price по набору позиций.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
