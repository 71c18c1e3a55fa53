package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"foto-orders-service/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// OrderRepository persists submitted orders.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) SaveOrders(ctx context.Context, orders []domain.Order) error {
	for _, order := range orders {
		responses, err := json.Marshal(order.Responses)
		if err != nil {
			return fmt.Errorf("marshal responses: %w", err)
		}
		_, err = r.pool.Exec(ctx, `
			INSERT INTO orders (id, service_id, customer_name, customer_email, address, details, property_size, zone, property_type, responses, total_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			order.ID, order.ServiceID, order.CustomerName, order.CustomerEmail,
			order.Address, order.Details, order.PropertySize, string(order.Zone),
			string(order.PropertyType), responses, order.TotalPrice, order.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert order %s: %w", order.ID, err)
		}
	}
	return nil
}
