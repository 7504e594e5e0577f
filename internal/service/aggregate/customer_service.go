// Package aggregate реализует протокол согласованности агрегатов поверх
// репозиториев, unit of work и публикации событий. Каждая операция описана
// как цепочка шагов (чтение, запись, публикация) и исполняется переданным
// flow-драйвером; семантика не зависит от модели исполнения.
package aggregate

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/flow"
)

// CustomerInput — данные клиента из запроса создания/обновления.
// Структурная валидация выполняется на границе до вызова сервиса.
type CustomerInput struct {
	Name    string
	Email   string
	Address string
}

// CustomerService управляет жизненным циклом клиентов.
type CustomerService struct {
	repos  domain.RepositoryProvider
	events domain.EventPublisher
	runner flow.Runner
	logger *log.Entry
}

// NewCustomerService конструирует сервис с зависимостями.
func NewCustomerService(
	repos domain.RepositoryProvider,
	events domain.EventPublisher,
	runner flow.Runner,
	logger *log.Entry,
) *CustomerService {
	if logger == nil {
		logger = log.WithField("component", "customer-service")
	}
	return &CustomerService{
		repos:  repos,
		events: events,
		runner: runner,
		logger: logger,
	}
}

// List возвращает всех клиентов.
func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := s.runner.Execute(ctx, "ListCustomers",
		flow.Step{Name: "load", Run: func(ctx context.Context) error {
			var err error
			customers, err = s.repos.Customers().FindAll(ctx)
			return err
		}},
	)
	return customers, err
}

// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
func (s *CustomerService) Get(ctx context.Context, id string) (domain.Customer, error) {
	var customer domain.Customer
	err := s.runner.Execute(ctx, "GetCustomer",
		flow.Step{Name: "load", Run: func(ctx context.Context) error {
			var err error
			customer, err = s.repos.Customers().FindByID(ctx, id)
			return err
		}},
	)
	return customer, err
}

// Create присваивает свежий идентификатор и метку времени, сохраняет клиента
// и публикует событие. Успех операции не зависит от успеха публикации.
func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (domain.Customer, error) {
	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: time.Now().UTC(),
	}

	err := s.runner.Execute(ctx, "CreateCustomer",
		flow.Step{Name: "persist", Run: func(ctx context.Context) error {
			var err error
			customer, err = s.repos.Customers().Save(ctx, customer)
			return err
		}},
		flow.Step{Name: "publish", Run: func(ctx context.Context) error {
			s.events.CustomerCreated(ctx, customer)
			return nil
		}},
	)
	if err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

// Update заменяет изменяемые поля существующего клиента значениями запроса.
func (s *CustomerService) Update(ctx context.Context, id string, in CustomerInput) (domain.Customer, error) {
	var customer domain.Customer
	err := s.runner.Execute(ctx, "UpdateCustomer",
		flow.Step{Name: "load", Run: func(ctx context.Context) error {
			var err error
			customer, err = s.repos.Customers().FindByID(ctx, id)
			return err
		}},
		flow.Step{Name: "persist", Run: func(ctx context.Context) error {
			customer.Name = in.Name
			customer.Email = in.Email
			customer.Address = in.Address
			var err error
			customer, err = s.repos.Customers().Save(ctx, customer)
			return err
		}},
		flow.Step{Name: "publish", Run: func(ctx context.Context) error {
			s.events.CustomerUpdated(ctx, customer)
			return nil
		}},
	)
	if err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

// Delete удаляет клиента и публикует событие только с идентификатором.
// Ссылающиеся заказы не проверяются и не каскадируются.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.runner.Execute(ctx, "DeleteCustomer",
		flow.Step{Name: "load", Run: func(ctx context.Context) error {
			_, err := s.repos.Customers().FindByID(ctx, id)
			return err
		}},
		flow.Step{Name: "delete", Run: func(ctx context.Context) error {
			return s.repos.Customers().Delete(ctx, id)
		}},
		flow.Step{Name: "publish", Run: func(ctx context.Context) error {
			s.events.CustomerDeleted(ctx, id)
			return nil
		}},
	)
}
