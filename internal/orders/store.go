// internal/orders/store.go
package orders

import (
	"context"
	"errors"
	"sort"
)

var ErrNotFound = errors.New("order not found")

// Store is the lookup and mutation surface for persisted orders.
type Store interface {
	GetAll(ctx context.Context) ([]*Order, error)
	GetByStatus(ctx context.Context, status Status) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Add(ctx context.Context, order *Order) error
}

// SortByPriorityAndDate sorts orders by priority descending, then order date
// ascending. The sort is stable: orders with equal priority and date keep
// their original relative position. The input slice is not modified.
func SortByPriorityAndDate(in []*Order) []*Order {
	sorted := make([]*Order, len(in))
	copy(sorted, in)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].OrderDate.Before(sorted[j].OrderDate)
	})
	return sorted
}
