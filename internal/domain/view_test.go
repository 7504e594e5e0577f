package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

func TestNewOrderDetails(t *testing.T) {
	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        "customer-1",
		Name:      "A",
		Email:     "a@x.com",
		Address:   "somewhere",
		CreatedAt: now,
	}
	order := domain.Order{
		ID:          "order-1",
		CustomerID:  customer.ID,
		OrderDate:   now,
		TotalAmount: decimal.RequireFromString("25.00"),
		Status:      domain.OrderStatusPending,
	}
	items := []domain.OrderItem{
		makeItem("item-1", "10.00", 2),
		makeItem("item-2", "5.00", 1),
	}

	details := domain.NewOrderDetails(order, customer, items)

	if details.Customer.ID != customer.ID || details.Customer.Name != "A" || details.Customer.Email != "a@x.com" {
		t.Fatalf("unexpected customer summary: %+v", details.Customer)
	}
	if len(details.Items) != 2 {
		t.Fatalf("expected 2 item summaries, got %d", len(details.Items))
	}
	if details.Items[0].ProductName != "product-item-1" || details.Items[0].Quantity != 2 {
		t.Fatalf("unexpected item summary: %+v", details.Items[0])
	}
	if !details.Order.TotalAmount.Equal(domain.ItemsTotal(items)) {
		t.Fatalf("view total %s does not match items sum", details.Order.TotalAmount)
	}
}

func TestNewOrderDetails_NoItems(t *testing.T) {
	details := domain.NewOrderDetails(domain.Order{ID: "order-1"}, domain.Customer{ID: "customer-1"}, nil)
	if details.Items == nil || len(details.Items) != 0 {
		t.Fatalf("expected empty non-nil item list, got %#v", details.Items)
	}
}
