package aggregate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/flow"
)

// OrderItemInput — данные позиции из запроса.
type OrderItemInput struct {
	ProductName string
	Quantity    int32
	Price       decimal.Decimal
}

// CreateOrderInput — данные создания заказа. Граница гарантирует хотя бы
// одну позицию и известный статус.
type CreateOrderInput struct {
	CustomerID string
	Status     domain.OrderStatus
	Items      []OrderItemInput
}

// UpdateOrderInput — данные обновления заказа. Обновление заменяет только
// сумму и статус; это прямой override, который может разойтись с суммой
// позиций.
type UpdateOrderInput struct {
	TotalAmount decimal.Decimal
	Status      domain.OrderStatus
}

// OrderService управляет жизненным циклом заказов.
type OrderService struct {
	repos  domain.RepositoryProvider
	uow    domain.UnitOfWork
	events domain.EventPublisher
	runner flow.Runner
	logger *log.Entry
}

// NewOrderService конструирует сервис с зависимостями.
func NewOrderService(
	repos domain.RepositoryProvider,
	uow domain.UnitOfWork,
	events domain.EventPublisher,
	runner flow.Runner,
	logger *log.Entry,
) *OrderService {
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}
	return &OrderService{
		repos:  repos,
		uow:    uow,
		events: events,
		runner: runner,
		logger: logger,
	}
}

// Get собирает составное представление заказа: заказ, клиент-владелец и
// позиции. Три чтения не атомарны; под конкурентной записью представление
// может отражать torn read.
func (s *OrderService) Get(ctx context.Context, id string) (domain.OrderDetails, error) {
	var (
		order    domain.Order
		customer domain.Customer
		items    []domain.OrderItem
	)
	err := s.runner.Execute(ctx, "GetOrder",
		flow.Step{Name: "load-order", Run: func(ctx context.Context) error {
			var err error
			order, err = s.repos.Orders().FindByID(ctx, id)
			return err
		}},
		flow.Step{Name: "load-customer", Run: func(ctx context.Context) error {
			var err error
			customer, err = s.repos.Customers().FindByID(ctx, order.CustomerID)
			return err
		}},
		flow.Step{Name: "load-items", Run: func(ctx context.Context) error {
			var err error
			items, err = s.repos.OrderItems().FindByOrder(ctx, order.ID)
			return err
		}},
	)
	if err != nil {
		return domain.OrderDetails{}, err
	}
	return domain.NewOrderDetails(order, customer, items), nil
}

// ListByCustomer возвращает заказы клиента, предварительно убедившись,
// что клиент существует.
func (s *OrderService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.runner.Execute(ctx, "ListOrdersByCustomer",
		flow.Step{Name: "verify-customer", Run: func(ctx context.Context) error {
			_, err := s.repos.Customers().FindByID(ctx, customerID)
			return err
		}},
		flow.Step{Name: "load", Run: func(ctx context.Context) error {
			var err error
			orders, err = s.repos.Orders().FindByCustomer(ctx, customerID)
			return err
		}},
	)
	return orders, err
}

// Create проверяет клиента, вычисляет сумму из позиций запроса, сохраняет
// заказ и позиции в одном unit of work и публикует событие. Представление
// собирается из только что сохранённых сущностей без повторного чтения.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (domain.OrderDetails, error) {
	var (
		customer domain.Customer
		order    domain.Order
		items    []domain.OrderItem
	)
	err := s.runner.Execute(ctx, "CreateOrder",
		flow.Step{Name: "verify-customer", Run: func(ctx context.Context) error {
			var err error
			customer, err = s.repos.Customers().FindByID(ctx, in.CustomerID)
			return err
		}},
		flow.Step{Name: "persist", Run: func(ctx context.Context) error {
			order = domain.Order{
				ID:         uuid.NewString(),
				CustomerID: in.CustomerID,
				OrderDate:  time.Now().UTC(),
				Status:     in.Status,
			}
			items = make([]domain.OrderItem, 0, len(in.Items))
			for _, itemIn := range in.Items {
				items = append(items, domain.OrderItem{
					ID:          uuid.NewString(),
					OrderID:     order.ID,
					ProductName: itemIn.ProductName,
					Quantity:    itemIn.Quantity,
					Price:       itemIn.Price,
				})
			}
			order.TotalAmount = domain.ItemsTotal(items)

			return s.uow.Within(ctx, func(ctx context.Context, tx domain.RepositoryProvider) error {
				var err error
				order, err = tx.Orders().Save(ctx, order)
				if err != nil {
					return err
				}
				for i, item := range items {
					items[i], err = tx.OrderItems().Save(ctx, item)
					if err != nil {
						return err
					}
				}
				return nil
			})
		}},
		flow.Step{Name: "publish", Run: func(ctx context.Context) error {
			s.events.OrderCreated(ctx, order)
			return nil
		}},
	)
	if err != nil {
		return domain.OrderDetails{}, err
	}
	return domain.NewOrderDetails(order, customer, items), nil
}

// Update заменяет только сумму и статус существующего заказа значениями
// запроса и публикует событие.
func (s *OrderService) Update(ctx context.Context, id string, in UpdateOrderInput) (domain.Order, error) {
	var order domain.Order
	err := s.runner.Execute(ctx, "UpdateOrder",
		flow.Step{Name: "load", Run: func(ctx context.Context) error {
			var err error
			order, err = s.repos.Orders().FindByID(ctx, id)
			return err
		}},
		flow.Step{Name: "persist", Run: func(ctx context.Context) error {
			order.TotalAmount = in.TotalAmount
			order.Status = in.Status
			var err error
			order, err = s.repos.Orders().Save(ctx, order)
			return err
		}},
		flow.Step{Name: "publish", Run: func(ctx context.Context) error {
			s.events.OrderUpdated(ctx, order)
			return nil
		}},
	)
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// Delete каскадно удаляет позиции заказа, затем сам заказ, в одном unit of
// work, и публикует событие только с идентификатором.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.runner.Execute(ctx, "DeleteOrder",
		flow.Step{Name: "delete", Run: func(ctx context.Context) error {
			return s.uow.Within(ctx, func(ctx context.Context, tx domain.RepositoryProvider) error {
				order, err := tx.Orders().FindByID(ctx, id)
				if err != nil {
					return err
				}
				items, err := tx.OrderItems().FindByOrder(ctx, order.ID)
				if err != nil {
					return err
				}
				// Позиции удаляются до строки заказа.
				for _, item := range items {
					if err := tx.OrderItems().Delete(ctx, item.ID); err != nil {
						return err
					}
				}
				return tx.Orders().Delete(ctx, order.ID)
			})
		}},
		flow.Step{Name: "publish", Run: func(ctx context.Context) error {
			s.events.OrderDeleted(ctx, id)
			return nil
		}},
	)
}
