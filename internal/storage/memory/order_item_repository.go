package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// orderItemRepository — простая in-memory реализация OrderItemRepository.
type orderItemRepository struct {
	mu    sync.RWMutex
	items map[string]domain.OrderItem
}

// NewOrderItemRepository возвращает in-memory репозиторий позиций.
func NewOrderItemRepository() domain.OrderItemRepository {
	return &orderItemRepository{
		items: make(map[string]domain.OrderItem),
	}
}

func (r *orderItemRepository) FindByID(_ context.Context, id string) (domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return domain.OrderItem{}, domain.ErrOrderItemNotFound
	}
	return item, nil
}

func (r *orderItemRepository) FindByOrder(_ context.Context, orderID string) ([]domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OrderItem, 0)
	for _, item := range r.items {
		if item.OrderID != orderID {
			continue
		}
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (r *orderItemRepository) Save(_ context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return item, nil
}

func (r *orderItemRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderItemNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.OrderItemRepository = (*orderItemRepository)(nil)
