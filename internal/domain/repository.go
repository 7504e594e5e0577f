package domain

import "context"

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// FindByID возвращает клиента или ErrCustomerNotFound.
	FindByID(ctx context.Context, id string) (Customer, error)
	// FindAll возвращает всех клиентов.
	FindAll(ctx context.Context) ([]Customer, error)
	// Save выполняет upsert: вставку для нового ID, полную замену для существующего.
	Save(ctx context.Context, customer Customer) (Customer, error)
	// Delete удаляет клиента или возвращает ErrCustomerNotFound.
	Delete(ctx context.Context, id string) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// FindByID возвращает заказ или ErrOrderNotFound.
	FindByID(ctx context.Context, id string) (Order, error)
	// FindByCustomer возвращает заказы клиента.
	FindByCustomer(ctx context.Context, customerID string) ([]Order, error)
	// Save выполняет upsert заказа.
	Save(ctx context.Context, order Order) (Order, error)
	// Delete удаляет заказ или возвращает ErrOrderNotFound.
	Delete(ctx context.Context, id string) error
}

// OrderItemRepository описывает требования к хранилищу позиций заказа.
type OrderItemRepository interface {
	// FindByID возвращает позицию или ErrOrderItemNotFound.
	FindByID(ctx context.Context, id string) (OrderItem, error)
	// FindByOrder возвращает позиции, привязанные к заказу.
	FindByOrder(ctx context.Context, orderID string) ([]OrderItem, error)
	// Save выполняет upsert позиции.
	Save(ctx context.Context, item OrderItem) (OrderItem, error)
	// Delete удаляет позицию или возвращает ErrOrderItemNotFound.
	Delete(ctx context.Context, id string) error
}

// RepositoryProvider объединяет доступ ко всем репозиториям. Вне транзакции
// провайдер работает через пул; внутри UnitOfWork — через активную транзакцию.
type RepositoryProvider interface {
	Customers() CustomerRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
}

// UnitOfWork даёт сервисам транзакционную область на несколько строк.
// Within гарантирует commit при nil-результате fn и rollback на любом
// другом пути выхода, включая панику.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx RepositoryProvider) error) error
}
