package postgres

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Provider отдаёт репозитории, работающие через пул подключений.
type Provider struct {
	customers  domain.CustomerRepository
	orders     domain.OrderRepository
	orderItems domain.OrderItemRepository
}

// NewProvider создаёт провайдер поверх Store.
func NewProvider(store *Store) *Provider {
	return &Provider{
		customers:  NewCustomerRepository(store),
		orders:     NewOrderRepository(store),
		orderItems: NewOrderItemRepository(store),
	}
}

func (p *Provider) Customers() domain.CustomerRepository   { return p.customers }
func (p *Provider) Orders() domain.OrderRepository         { return p.orders }
func (p *Provider) OrderItems() domain.OrderItemRepository { return p.orderItems }

// txProvider отдаёт репозитории, привязанные к открытой транзакции.
type txProvider struct {
	q querier
}

func (p *txProvider) Customers() domain.CustomerRepository   { return &customerRepository{q: p.q} }
func (p *txProvider) Orders() domain.OrderRepository         { return &orderRepository{q: p.q} }
func (p *txProvider) OrderItems() domain.OrderItemRepository { return &orderItemRepository{q: p.q} }

// UnitOfWork открывает транзакцию на время многострочной операции.
type UnitOfWork struct {
	store *Store
}

// NewUnitOfWork создаёт транзакционный unit of work.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// Within выполняет fn в транзакции: commit при nil-результате, rollback на
// любом другом пути выхода, включая панику внутри fn.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx domain.RepositoryProvider) error) error {
	sqlTx, err := u.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = sqlTx.Rollback()
		}
	}()

	if err := fn(ctx, &txProvider{q: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit unit of work: %w", err)
	}
	committed = true

	return nil
}

var (
	_ domain.RepositoryProvider = (*Provider)(nil)
	_ domain.RepositoryProvider = (*txProvider)(nil)
	_ domain.UnitOfWork         = (*UnitOfWork)(nil)
)
