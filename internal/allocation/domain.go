// internal/allocation/domain.go
package allocation

import (
	"errors"

	"github.com/deperkenne/InventoryManagements/internal/stock"
)

// ErrNoCandidateSku signals that a line's product has no SKU entry in the
// ledger at all while the order requires complete delivery. This is distinct
// from "candidates exist but quantity is short", which is resolved through
// compensation instead of an error.
var ErrNoCandidateSku = errors.New("no candidate sku for product")

// PendingAllocation is one uncommitted grab of quantity from a SKU for an
// order line. Pending allocations accumulate across all lines of an order and
// are committed as one batch, or dropped entirely.
type PendingAllocation struct {
	Sku      stock.Sku
	Quantity int
	LineID   string
}
