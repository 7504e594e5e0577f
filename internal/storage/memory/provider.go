package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Provider объединяет in-memory репозитории в RepositoryProvider.
type Provider struct {
	customers  domain.CustomerRepository
	orders     domain.OrderRepository
	orderItems domain.OrderItemRepository
}

// NewProvider создаёт провайдер с пустыми репозиториями.
func NewProvider() *Provider {
	return &Provider{
		customers:  NewCustomerRepository(),
		orders:     NewOrderRepository(),
		orderItems: NewOrderItemRepository(),
	}
}

func (p *Provider) Customers() domain.CustomerRepository   { return p.customers }
func (p *Provider) Orders() domain.OrderRepository         { return p.orders }
func (p *Provider) OrderItems() domain.OrderItemRepository { return p.orderItems }

// UnitOfWork сериализует многострочные операции одним мьютексом.
//
// In-memory реализация не умеет откатывать уже применённые записи; вместо
// этого она гарантирует, что конкурирующие unit of work не чередуются, и
// тем самым закрывает гонку read-modify-write по сумме заказа.
type UnitOfWork struct {
	mu       sync.Mutex
	provider *Provider
}

// NewUnitOfWork создаёт unit of work поверх провайдера.
func NewUnitOfWork(provider *Provider) *UnitOfWork {
	return &UnitOfWork{provider: provider}
}

// Within выполняет fn под эксклюзивной блокировкой.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx domain.RepositoryProvider) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, u.provider)
}

var (
	_ domain.RepositoryProvider = (*Provider)(nil)
	_ domain.UnitOfWork         = (*UnitOfWork)(nil)
)
