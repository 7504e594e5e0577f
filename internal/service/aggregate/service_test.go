package aggregate_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/aggregate"
	"github.com/vladislavdragonenkov/orders/internal/service/flow"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
)

// recordingPublisher запоминает публикации в порядке эмиссии.
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) record(eventType, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, fmt.Sprintf("%s:%s", eventType, id))
}

func (p *recordingPublisher) recorded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func (p *recordingPublisher) CustomerCreated(_ context.Context, c domain.Customer) {
	p.record("CUSTOMER_CREATED", c.ID)
}
func (p *recordingPublisher) CustomerUpdated(_ context.Context, c domain.Customer) {
	p.record("CUSTOMER_UPDATED", c.ID)
}
func (p *recordingPublisher) CustomerDeleted(_ context.Context, id string) {
	p.record("CUSTOMER_DELETED", id)
}
func (p *recordingPublisher) OrderCreated(_ context.Context, o domain.Order) {
	p.record("ORDER_CREATED", o.ID)
}
func (p *recordingPublisher) OrderUpdated(_ context.Context, o domain.Order) {
	p.record("ORDER_UPDATED", o.ID)
}
func (p *recordingPublisher) OrderDeleted(_ context.Context, id string) {
	p.record("ORDER_DELETED", id)
}
func (p *recordingPublisher) OrderItemCreated(_ context.Context, i domain.OrderItem) {
	p.record("ORDER_ITEM_CREATED", i.ID)
}
func (p *recordingPublisher) OrderItemUpdated(_ context.Context, i domain.OrderItem) {
	p.record("ORDER_ITEM_UPDATED", i.ID)
}
func (p *recordingPublisher) OrderItemDeleted(_ context.Context, id string) {
	p.record("ORDER_ITEM_DELETED", id)
}

type fixture struct {
	provider  *memory.Provider
	publisher *recordingPublisher
	customers *aggregate.CustomerService
	orders    *aggregate.OrderService
	items     *aggregate.OrderItemService
}

func newFixture(runner flow.Runner) *fixture {
	provider := memory.NewProvider()
	uow := memory.NewUnitOfWork(provider)
	publisher := &recordingPublisher{}
	return &fixture{
		provider:  provider,
		publisher: publisher,
		customers: aggregate.NewCustomerService(provider, publisher, runner, nil),
		orders:    aggregate.NewOrderService(provider, uow, publisher, runner, nil),
		items:     aggregate.NewOrderItemService(provider, uow, publisher, runner, nil),
	}
}

// runners перечисляет обе модели исполнения: вся таблица идёт под каждой.
func runners() map[string]flow.Runner {
	return map[string]flow.Runner{
		"serial": flow.NewSerial(nil),
		"chain":  flow.NewChain(nil),
	}
}

func mustCreateCustomer(t *testing.T, f *fixture) domain.Customer {
	t.Helper()
	customer, err := f.customers.Create(context.Background(), aggregate.CustomerInput{
		Name:    "Alice",
		Email:   "alice@example.com",
		Address: "1 Main St",
	})
	require.NoError(t, err)
	return customer
}

func mustCreateOrder(t *testing.T, f *fixture, customerID string) domain.OrderDetails {
	t.Helper()
	details, err := f.orders.Create(context.Background(), aggregate.CreateOrderInput{
		CustomerID: customerID,
		Status:     domain.OrderStatusPending,
		Items: []aggregate.OrderItemInput{
			{ProductName: "Widget", Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{ProductName: "Gadget", Quantity: 1, Price: decimal.RequireFromString("5.00")},
		},
	})
	require.NoError(t, err)
	return details
}

func TestCustomerService_Lifecycle(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)
			ctx := context.Background()

			customer := mustCreateCustomer(t, f)
			assert.NotEmpty(t, customer.ID)
			assert.False(t, customer.CreatedAt.IsZero())

			got, err := f.customers.Get(ctx, customer.ID)
			require.NoError(t, err)
			assert.Equal(t, customer, got)

			updated, err := f.customers.Update(ctx, customer.ID, aggregate.CustomerInput{
				Name:    "Alice B",
				Email:   "alice.b@example.com",
				Address: "2 Main St",
			})
			require.NoError(t, err)
			assert.Equal(t, "Alice B", updated.Name)
			assert.Equal(t, customer.CreatedAt, updated.CreatedAt)

			require.NoError(t, f.customers.Delete(ctx, customer.ID))

			_, err = f.customers.Get(ctx, customer.ID)
			assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

			assert.Equal(t, []string{
				"CUSTOMER_CREATED:" + customer.ID,
				"CUSTOMER_UPDATED:" + customer.ID,
				"CUSTOMER_DELETED:" + customer.ID,
			}, f.publisher.recorded())
		})
	}
}

func TestCustomerService_NotFound(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)
			ctx := context.Background()

			_, err := f.customers.Get(ctx, "missing")
			assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

			_, err = f.customers.Update(ctx, "missing", aggregate.CustomerInput{Name: "X"})
			assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

			err = f.customers.Delete(ctx, "missing")
			assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

			// Неудачные операции ничего не публикуют.
			assert.Empty(t, f.publisher.recorded())
		})
	}
}

func TestOrderService_CreateComputesTotalFromItems(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)

			customer := mustCreateCustomer(t, f)
			details := mustCreateOrder(t, f, customer.ID)

			assert.True(t, details.Order.TotalAmount.Equal(decimal.RequireFromString("25.00")),
				"total %s", details.Order.TotalAmount)
			assert.Equal(t, customer.ID, details.Customer.ID)
			assert.Len(t, details.Items, 2)

			// Позиции сохранены и читаются обратно.
			items, err := f.items.ListByOrder(context.Background(), details.Order.ID)
			require.NoError(t, err)
			assert.Len(t, items, 2)
		})
	}
}

func TestOrderService_CreateForMissingCustomer(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)

			_, err := f.orders.Create(context.Background(), aggregate.CreateOrderInput{
				CustomerID: "missing",
				Status:     domain.OrderStatusPending,
				Items: []aggregate.OrderItemInput{
					{ProductName: "Widget", Quantity: 1, Price: decimal.RequireFromString("1.00")},
				},
			})
			assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
			assert.Empty(t, f.publisher.recorded())
		})
	}
}

func TestOrderService_UpdateOverridesTotalAndStatus(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)
			ctx := context.Background()

			customer := mustCreateCustomer(t, f)
			details := mustCreateOrder(t, f, customer.ID)

			updated, err := f.orders.Update(ctx, details.Order.ID, aggregate.UpdateOrderInput{
				TotalAmount: decimal.RequireFromString("99.00"),
				Status:      domain.OrderStatusConfirmed,
			})
			require.NoError(t, err)
			assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("99.00")))
			assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
			// Идентификатор владельца и дата заказа неизменны.
			assert.Equal(t, customer.ID, updated.CustomerID)
			assert.Equal(t, details.Order.OrderDate, updated.OrderDate)
		})
	}
}

func TestOrderService_DeleteCascadesItems(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)
			ctx := context.Background()

			customer := mustCreateCustomer(t, f)
			details := mustCreateOrder(t, f, customer.ID)

			require.NoError(t, f.orders.Delete(ctx, details.Order.ID))

			_, err := f.orders.Get(ctx, details.Order.ID)
			assert.ErrorIs(t, err, domain.ErrOrderNotFound)

			_, err = f.items.ListByOrder(ctx, details.Order.ID)
			assert.ErrorIs(t, err, domain.ErrOrderNotFound)

			for _, item := range details.Items {
				_, err := f.items.UpdateItem(ctx, item.ID, aggregate.OrderItemInput{
					ProductName: "X", Quantity: 1, Price: decimal.RequireFromString("1.00"),
				})
				assert.ErrorIs(t, err, domain.ErrOrderItemNotFound)
			}
		})
	}
}

func TestOrderService_ListByCustomer(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)
			ctx := context.Background()

			customer := mustCreateCustomer(t, f)
			first := mustCreateOrder(t, f, customer.ID)
			second := mustCreateOrder(t, f, customer.ID)

			orders, err := f.orders.ListByCustomer(ctx, customer.ID)
			require.NoError(t, err)
			require.Len(t, orders, 2)

			ids := []string{orders[0].ID, orders[1].ID}
			assert.Contains(t, ids, first.Order.ID)
			assert.Contains(t, ids, second.Order.ID)

			_, err = f.orders.ListByCustomer(ctx, "missing")
			assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
		})
	}
}

func TestOrderItemService_AddItemIncreasesTotal(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)
			ctx := context.Background()

			customer := mustCreateCustomer(t, f)
			details := mustCreateOrder(t, f, customer.ID)

			item, err := f.items.AddItem(ctx, details.Order.ID, aggregate.OrderItemInput{
				ProductName: "Gizmo",
				Quantity:    3,
				Price:       decimal.RequireFromString("2.00"),
			})
			require.NoError(t, err)
			assert.Equal(t, details.Order.ID, item.OrderID)

			after, err := f.orders.Get(ctx, details.Order.ID)
			require.NoError(t, err)
			assert.True(t, after.Order.TotalAmount.Equal(decimal.RequireFromString("31.00")),
				"total %s", after.Order.TotalAmount)
		})
	}
}

func TestOrderItemService_UpdateItemKeepsOrderTotal(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)
			ctx := context.Background()

			customer := mustCreateCustomer(t, f)
			details := mustCreateOrder(t, f, customer.ID)
			before := details.Order.TotalAmount

			item, err := f.items.UpdateItem(ctx, details.Items[0].ID, aggregate.OrderItemInput{
				ProductName: "Widget XL",
				Quantity:    100,
				Price:       decimal.RequireFromString("42.00"),
			})
			require.NoError(t, err)
			assert.Equal(t, int32(100), item.Quantity)

			after, err := f.orders.Get(ctx, details.Order.ID)
			require.NoError(t, err)
			assert.True(t, after.Order.TotalAmount.Equal(before),
				"total changed from %s to %s", before, after.Order.TotalAmount)
		})
	}
}

func TestOrderItemService_DeleteItemDecreasesTotal(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)
			ctx := context.Background()

			customer := mustCreateCustomer(t, f)
			details := mustCreateOrder(t, f, customer.ID)

			// Widget: 2 x 10.00 = 20.00.
			var widgetID string
			for _, item := range details.Items {
				if item.ProductName == "Widget" {
					widgetID = item.ID
				}
			}
			require.NotEmpty(t, widgetID)

			require.NoError(t, f.items.DeleteItem(ctx, widgetID))

			after, err := f.orders.Get(ctx, details.Order.ID)
			require.NoError(t, err)
			assert.True(t, after.Order.TotalAmount.Equal(decimal.RequireFromString("5.00")),
				"total %s", after.Order.TotalAmount)
			assert.Len(t, after.Items, 1)

			err = f.items.DeleteItem(ctx, widgetID)
			assert.ErrorIs(t, err, domain.ErrOrderItemNotFound)
		})
	}
}

func TestOrderItemService_EventOrdering(t *testing.T) {
	for name, runner := range runners() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(runner)
			ctx := context.Background()

			customer := mustCreateCustomer(t, f)
			details := mustCreateOrder(t, f, customer.ID)

			item, err := f.items.AddItem(ctx, details.Order.ID, aggregate.OrderItemInput{
				ProductName: "Gizmo", Quantity: 1, Price: decimal.RequireFromString("1.00"),
			})
			require.NoError(t, err)
			require.NoError(t, f.items.DeleteItem(ctx, item.ID))

			assert.Equal(t, []string{
				"CUSTOMER_CREATED:" + customer.ID,
				"ORDER_CREATED:" + details.Order.ID,
				"ORDER_ITEM_CREATED:" + item.ID,
				"ORDER_ITEM_DELETED:" + item.ID,
			}, f.publisher.recorded())
		})
	}
}
