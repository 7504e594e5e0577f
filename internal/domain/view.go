package domain

import "github.com/shopspring/decimal"

// CustomerSummary — срез клиента для составного представления заказа.
type CustomerSummary struct {
	ID    string
	Name  string
	Email string
}

// OrderItemSummary — срез позиции для составного представления заказа.
type OrderItemSummary struct {
	ID          string
	ProductName string
	Quantity    int32
	Price       decimal.Decimal
}

// OrderDetails — read-only представление заказа вместе с клиентом и
// позициями. Собирается из трёх отдельных чтений без общей транзакции,
// поэтому под конкурентной записью возможен torn read.
type OrderDetails struct {
	Order    Order
	Customer CustomerSummary
	Items    []OrderItemSummary
}

// NewOrderDetails собирает представление из загруженных сущностей.
func NewOrderDetails(order Order, customer Customer, items []OrderItem) OrderDetails {
	summaries := make([]OrderItemSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, OrderItemSummary{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return OrderDetails{
		Order: order,
		Customer: CustomerSummary{
			ID:    customer.ID,
			Name:  customer.Name,
			Email: customer.Email,
		},
		Items: summaries,
	}
}
