package aggregate

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/flow"
)

// OrderItemService поддерживает инвариант суммы заказа при мутациях позиций.
// Добавление и удаление позиции корректируют сумму на price*quantity;
// обновление позиции сумму не трогает (см. UpdateItem).
type OrderItemService struct {
	repos  domain.RepositoryProvider
	uow    domain.UnitOfWork
	events domain.EventPublisher
	runner flow.Runner
	logger *log.Entry
}

// NewOrderItemService конструирует сервис с зависимостями.
func NewOrderItemService(
	repos domain.RepositoryProvider,
	uow domain.UnitOfWork,
	events domain.EventPublisher,
	runner flow.Runner,
	logger *log.Entry,
) *OrderItemService {
	if logger == nil {
		logger = log.WithField("component", "order-item-service")
	}
	return &OrderItemService{
		repos:  repos,
		uow:    uow,
		events: events,
		runner: runner,
		logger: logger,
	}
}

// ListByOrder возвращает позиции заказа, предварительно убедившись, что
// заказ существует: для удалённого заказа клиент получает NotFound, а не
// пустой список.
func (s *OrderItemService) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := s.runner.Execute(ctx, "ListOrderItems",
		flow.Step{Name: "verify-order", Run: func(ctx context.Context) error {
			_, err := s.repos.Orders().FindByID(ctx, orderID)
			return err
		}},
		flow.Step{Name: "load", Run: func(ctx context.Context) error {
			var err error
			items, err = s.repos.OrderItems().FindByOrder(ctx, orderID)
			return err
		}},
	)
	return items, err
}

// AddItem сохраняет новую позицию и прибавляет price*quantity к сумме
// заказа. Вставка позиции и read-modify-write суммы выполняются в одном
// unit of work.
func (s *OrderItemService) AddItem(ctx context.Context, orderID string, in OrderItemInput) (domain.OrderItem, error) {
	var item domain.OrderItem
	err := s.runner.Execute(ctx, "AddOrderItem",
		flow.Step{Name: "persist", Run: func(ctx context.Context) error {
			return s.uow.Within(ctx, func(ctx context.Context, tx domain.RepositoryProvider) error {
				order, err := tx.Orders().FindByID(ctx, orderID)
				if err != nil {
					return err
				}
				item = domain.OrderItem{
					ID:          uuid.NewString(),
					OrderID:     orderID,
					ProductName: in.ProductName,
					Quantity:    in.Quantity,
					Price:       in.Price,
				}
				item, err = tx.OrderItems().Save(ctx, item)
				if err != nil {
					return err
				}
				order.TotalAmount = order.TotalAmount.Add(item.Subtotal())
				_, err = tx.Orders().Save(ctx, order)
				return err
			})
		}},
		flow.Step{Name: "publish", Run: func(ctx context.Context) error {
			s.events.OrderItemCreated(ctx, item)
			return nil
		}},
	)
	if err != nil {
		return domain.OrderItem{}, err
	}
	return item, nil
}

// UpdateItem заменяет название, количество и цену позиции.
//
// Сумма заказа-владельца намеренно не пересчитывается: текущее поведение
// асимметрично AddItem/DeleteItem и зафиксировано тестами до прояснения
// продуктовых требований.
func (s *OrderItemService) UpdateItem(ctx context.Context, id string, in OrderItemInput) (domain.OrderItem, error) {
	var item domain.OrderItem
	err := s.runner.Execute(ctx, "UpdateOrderItem",
		flow.Step{Name: "load", Run: func(ctx context.Context) error {
			var err error
			item, err = s.repos.OrderItems().FindByID(ctx, id)
			return err
		}},
		flow.Step{Name: "persist", Run: func(ctx context.Context) error {
			item.ProductName = in.ProductName
			item.Quantity = in.Quantity
			item.Price = in.Price
			var err error
			item, err = s.repos.OrderItems().Save(ctx, item)
			return err
		}},
		flow.Step{Name: "publish", Run: func(ctx context.Context) error {
			s.events.OrderItemUpdated(ctx, item)
			return nil
		}},
	)
	if err != nil {
		return domain.OrderItem{}, err
	}
	return item, nil
}

// DeleteItem вычитает price*quantity удаляемой позиции из суммы заказа и
// удаляет позицию. Сумма обновляется до удаления строки позиции; оба
// изменения идут в одном unit of work. Сумма не ограничивается нулём снизу.
func (s *OrderItemService) DeleteItem(ctx context.Context, id string) error {
	return s.runner.Execute(ctx, "DeleteOrderItem",
		flow.Step{Name: "delete", Run: func(ctx context.Context) error {
			return s.uow.Within(ctx, func(ctx context.Context, tx domain.RepositoryProvider) error {
				item, err := tx.OrderItems().FindByID(ctx, id)
				if err != nil {
					return err
				}
				order, err := tx.Orders().FindByID(ctx, item.OrderID)
				if err != nil {
					return err
				}
				order.TotalAmount = order.TotalAmount.Sub(item.Subtotal())
				if _, err := tx.Orders().Save(ctx, order); err != nil {
					return err
				}
				return tx.OrderItems().Delete(ctx, item.ID)
			})
		}},
		flow.Step{Name: "publish", Run: func(ctx context.Context) error {
			s.events.OrderItemDeleted(ctx, id)
			return nil
		}},
	)
}
