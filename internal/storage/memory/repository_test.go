package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
)

func newCustomer(id string) domain.Customer {
	return domain.Customer{
		ID:        id,
		Name:      "A",
		Email:     "a@x.com",
		CreatedAt: time.Now().UTC(),
	}
}

func newOrder(id, customerID string) domain.Order {
	return domain.Order{
		ID:          id,
		CustomerID:  customerID,
		OrderDate:   time.Now().UTC(),
		TotalAmount: decimal.RequireFromString("25.00"),
		Status:      domain.OrderStatusPending,
	}
}

func TestCustomerRepository_SaveFindDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCustomerRepository()

	customer := newCustomer("customer-1")
	if _, err := repo.Save(ctx, customer); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stored, err := repo.FindByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.Email != customer.Email {
		t.Fatalf("expected email %s, got %s", customer.Email, stored.Email)
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(all))
	}

	if err := repo.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, customer.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, customer.ID); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound on second delete, got %v", err)
	}
}

func TestCustomerRepository_SaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCustomerRepository()

	customer := newCustomer("customer-1")
	if _, err := repo.Save(ctx, customer); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	customer.Name = "B"
	if _, err := repo.Save(ctx, customer); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	stored, err := repo.FindByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stored.Name != "B" {
		t.Fatalf("expected replaced name B, got %s", stored.Name)
	}
}

func TestOrderRepository_FindByCustomer(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()

	if _, err := repo.Save(ctx, newOrder("order-1", "customer-1")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := repo.Save(ctx, newOrder("order-2", "customer-2")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	orders, err := repo.FindByCustomer(ctx, "customer-1")
	if err != nil {
		t.Fatalf("find by customer failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "order-1" {
		t.Fatalf("expected only order-1, got %+v", orders)
	}
}

func TestOrderRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderItemRepository_FindByOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderItemRepository()

	items := []domain.OrderItem{
		{ID: "item-2", OrderID: "order-1", ProductName: "Gadget", Quantity: 1, Price: decimal.RequireFromString("5.00")},
		{ID: "item-1", OrderID: "order-1", ProductName: "Widget", Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{ID: "item-3", OrderID: "order-2", ProductName: "Gizmo", Quantity: 3, Price: decimal.RequireFromString("2.00")},
	}
	for _, item := range items {
		if _, err := repo.Save(ctx, item); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	linked, err := repo.FindByOrder(ctx, "order-1")
	if err != nil {
		t.Fatalf("find by order failed: %v", err)
	}
	if len(linked) != 2 {
		t.Fatalf("expected 2 items, got %d", len(linked))
	}
	if linked[0].ID != "item-1" || linked[1].ID != "item-2" {
		t.Fatalf("expected deterministic id order, got %+v", linked)
	}
}

func TestUnitOfWork_SerializesConcurrentTotalUpdates(t *testing.T) {
	ctx := context.Background()
	provider := memory.NewProvider()
	uow := memory.NewUnitOfWork(provider)

	order := newOrder("order-1", "customer-1")
	order.TotalAmount = decimal.Zero
	if _, err := provider.Orders().Save(ctx, order); err != nil {
		t.Fatalf("seed order failed: %v", err)
	}

	const workers = 16
	delta := decimal.RequireFromString("1.50")

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = uow.Within(ctx, func(ctx context.Context, tx domain.RepositoryProvider) error {
				current, err := tx.Orders().FindByID(ctx, "order-1")
				if err != nil {
					return err
				}
				current.TotalAmount = current.TotalAmount.Add(delta)
				_, err = tx.Orders().Save(ctx, current)
				return err
			})
		}()
	}
	wg.Wait()

	final, err := provider.Orders().FindByID(ctx, "order-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	want := delta.Mul(decimal.NewFromInt(workers))
	if !final.TotalAmount.Equal(want) {
		t.Fatalf("expected serialized total %s, got %s", want, final.TotalAmount)
	}
}

func TestUnitOfWork_CancelledContext(t *testing.T) {
	provider := memory.NewProvider()
	uow := memory.NewUnitOfWork(provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := uow.Within(ctx, func(context.Context, domain.RepositoryProvider) error {
		t.Fatal("fn must not run on cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
