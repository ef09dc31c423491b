// internal/allocation/service.go
package allocation

import (
	"context"

	"github.com/deperkenne/InventoryManagements/internal/orders"
)

// Service defines the interface for the allocation engine.
type Service interface {
	// ProcessNewOrders pulls every order in status NEW, sorts the batch by
	// priority and date and runs the allocation attempt for each order in
	// turn. A failing order never aborts the batch.
	ProcessNewOrders(ctx context.Context) error

	// AllocateStockToOrder attempts to satisfy every line of the order.
	// released reports whether the order was committed and moved to RELEASED;
	// a false result with a nil error means the attempt was compensated
	// because complete delivery could not be met.
	AllocateStockToOrder(ctx context.Context, order orders.Order) (released bool, err error)
}

// Canceller compensates previously recorded allocations for an order.
type Canceller interface {
	CancelOrder(ctx context.Context, orderID string) error
}
