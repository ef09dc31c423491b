// internal/adjustment/service.go
package adjustment

import (
	"context"

	"github.com/deperkenne/InventoryManagements/internal/orders"
)

// Service defines the interface for manual stock corrections and the
// reallocation they trigger.
type Service interface {
	// AdjustSkuQuantity overwrites a SKU's allocatable quantity (not a delta)
	// and re-runs allocation for the orders previously served from that SKU.
	AdjustSkuQuantity(ctx context.Context, skuID string, newQuantity int) error

	// HandleStockUpdate re-targets allocation at the orders implicated by
	// allocation events for the SKU. Each affected order is reduced to the
	// implicated lines before the engine sees it.
	HandleStockUpdate(ctx context.Context, skuID string) error
}

// Allocator is the slice of the allocation engine the reallocation trigger
// calls back into.
type Allocator interface {
	AllocateStockToOrder(ctx context.Context, order orders.Order) (bool, error)
}
