// internal/stock/ledger.go
package stock

import (
	"context"
	"errors"
)

var (
	ErrSkuNotFound     = errors.New("sku not found")
	ErrProductNotFound = errors.New("no skus known for product")
)

// Ledger is the inventory surface the allocation engine works against.
//
// GetAvailableSkus returns the unlocked SKUs for a product in registration
// order. That order is a contract: the engine consumes candidates greedily in
// the order returned here, so reordering the ledger changes which SKU is
// picked under partial fulfilment. ErrProductNotFound means the ledger has no
// entry at all for the product, which is distinct from "all candidates locked
// or empty".
type Ledger interface {
	GetAvailableSkus(ctx context.Context, productName string) ([]Sku, error)
	GetSkuByID(ctx context.Context, skuID string) (Sku, error)
	AvailableQuantity(ctx context.Context, productName string) (int, error)
	ApplyAllocation(ctx context.Context, skuID string, quantity int) error
	RollbackAllocation(ctx context.Context, skuID string, quantity int) error
	SetQuantity(ctx context.Context, skuID string, quantity int) error
}
