// internal/orders/memory.go
package orders

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps orders in process memory. It is safe for use from one
// logical caller at a time; the mutex only guards against accidental
// concurrent access, it is not a full concurrency discipline.
type MemoryStore struct {
	mu     sync.RWMutex
	orders []*Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) GetAll(ctx context.Context) ([]*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (s *MemoryStore) GetByStatus(ctx context.Context, status Status) ([]*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Order
	for _, order := range s.orders {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("order id must not be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	if id == "" {
		return fmt.Errorf("order id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.ID == id {
			order.Status = status
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) Add(ctx context.Context, order *Order) error {
	if order == nil {
		return fmt.Errorf("order must not be nil")
	}
	if order.ID == "" {
		return fmt.Errorf("order id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orders {
		if existing.ID == order.ID {
			return fmt.Errorf("order %s already exists", order.ID)
		}
	}
	s.orders = append(s.orders, order)
	return nil
}
