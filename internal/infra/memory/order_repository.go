package memory

import (
	"context"
	"sync"

	"foto-orders-service/internal/domain"
)

// OrderRepository keeps submitted orders in memory (tests/demo mode).
type OrderRepository struct {
	mu     sync.RWMutex
	orders []domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) SaveOrders(_ context.Context, orders []domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, orders...)
	return nil
}

// Orders returns a copy of everything saved so far.
func (r *OrderRepository) Orders() []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Order(nil), r.orders...)
}
