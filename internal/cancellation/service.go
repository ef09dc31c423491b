// internal/cancellation/service.go
package cancellation

import "context"

// Service defines the interface for the compensation flow. Cancelling an
// order reverts its recorded allocations through new deallocation events; the
// order's own status field is never touched, the stock is simply released
// while the order stays in whatever state it was.
type Service interface {
	CancelOrder(ctx context.Context, orderID string) error
	CancelOrders(ctx context.Context, orderIDs []string) error
}
