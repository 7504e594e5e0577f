package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

type orderItemRepository struct {
	q querier
}

// NewOrderItemRepository создаёт PostgreSQL-реализацию OrderItemRepository
// поверх пула подключений.
func NewOrderItemRepository(store *Store) domain.OrderItemRepository {
	return &orderItemRepository{q: store.DB()}
}

func (r *orderItemRepository) FindByID(ctx context.Context, id string) (domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var item domain.OrderItem
	err := r.q.QueryRowContext(ctx, `
		SELECT id, order_id, product_name, quantity, price
		FROM order_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.OrderID, &item.ProductName, &item.Quantity, &item.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderItem{}, domain.ErrOrderItemNotFound
		}
		return domain.OrderItem{}, fmt.Errorf("select order item: %w", err)
	}

	return item, nil
}

func (r *orderItemRepository) FindByOrder(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, order_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

func (r *orderItemRepository) Save(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO order_items (id, order_id, product_name, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET product_name = EXCLUDED.product_name,
		    quantity = EXCLUDED.quantity,
		    price = EXCLUDED.price
	`, item.ID, item.OrderID, item.ProductName, item.Quantity, item.Price)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("upsert order item: %w", err)
	}

	return item, nil
}

func (r *orderItemRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.q.ExecContext(ctx, `DELETE FROM order_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderItemNotFound
	}

	return nil
}

var _ domain.OrderItemRepository = (*orderItemRepository)(nil)
