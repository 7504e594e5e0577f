package domain

import "github.com/shopspring/decimal"

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID позиции, генерируется сервером.
	ID string
	// OrderID — заказ-владелец, неизменяемый после создания.
	OrderID string
	// ProductName — название товара, не может быть пустым.
	ProductName string
	// Quantity — количество единиц, целое >= 1.
	Quantity int32
	// Price — цена за единицу, точный decimal > 0.
	Price decimal.Decimal
}

// Subtotal возвращает вклад позиции в сумму заказа: price * quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt32(i.Quantity))
}
