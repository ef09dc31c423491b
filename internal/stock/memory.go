// internal/stock/memory.go
package stock

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLedger keeps SKUs in process memory, in registration order. Reads
// return value copies so callers never hold a reference into ledger state;
// every mutation goes through ApplyAllocation, RollbackAllocation or
// SetQuantity.
type MemoryLedger struct {
	mu   sync.RWMutex
	skus []*Sku
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

// Register adds a SKU to the ledger. Registration order is the order
// GetAvailableSkus hands candidates to the engine.
func (l *MemoryLedger) Register(sku Sku) error {
	if sku.ID == "" {
		return fmt.Errorf("sku id must not be empty")
	}
	if sku.ProductName == "" {
		return fmt.Errorf("product name must not be empty")
	}
	if sku.Available < 0 {
		return fmt.Errorf("sku %s: quantity must not be negative", sku.ID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.skus {
		if existing.ID == sku.ID {
			return fmt.Errorf("sku %s already registered", sku.ID)
		}
	}
	l.skus = append(l.skus, &sku)
	return nil
}

func (l *MemoryLedger) GetAvailableSkus(ctx context.Context, productName string) ([]Sku, error) {
	if productName == "" {
		return nil, fmt.Errorf("product name must not be empty")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	known := false
	var candidates []Sku
	for _, sku := range l.skus {
		if sku.ProductName != productName {
			continue
		}
		known = true
		if !sku.Locked {
			candidates = append(candidates, *sku)
		}
	}
	if !known {
		return nil, fmt.Errorf("product %s: %w", productName, ErrProductNotFound)
	}
	return candidates, nil
}

func (l *MemoryLedger) GetSkuByID(ctx context.Context, skuID string) (Sku, error) {
	if skuID == "" {
		return Sku{}, fmt.Errorf("sku id must not be empty")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	sku := l.find(skuID)
	if sku == nil {
		return Sku{}, fmt.Errorf("sku %s: %w", skuID, ErrSkuNotFound)
	}
	return *sku, nil
}

// AvailableQuantity sums the allocatable quantity of all unlocked SKUs for a
// product.
func (l *MemoryLedger) AvailableQuantity(ctx context.Context, productName string) (int, error) {
	if productName == "" {
		return 0, fmt.Errorf("product name must not be empty")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	total := 0
	for _, sku := range l.skus {
		if sku.ProductName == productName && !sku.Locked {
			total += sku.Available
		}
	}
	return total, nil
}

func (l *MemoryLedger) ApplyAllocation(ctx context.Context, skuID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("sku %s: allocation quantity must not be negative", skuID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sku := l.find(skuID)
	if sku == nil {
		return fmt.Errorf("sku %s: %w", skuID, ErrSkuNotFound)
	}
	if quantity > sku.Available {
		return fmt.Errorf("sku %s: allocation of %d exceeds available %d", skuID, quantity, sku.Available)
	}
	sku.Available -= quantity
	return nil
}

func (l *MemoryLedger) RollbackAllocation(ctx context.Context, skuID string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("sku %s: rollback quantity must not be negative", skuID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sku := l.find(skuID)
	if sku == nil {
		return fmt.Errorf("sku %s: %w", skuID, ErrSkuNotFound)
	}
	sku.Available += quantity
	return nil
}

// SetQuantity overwrites a SKU's allocatable quantity. This is the manual
// stock-correction path, not a delta.
func (l *MemoryLedger) SetQuantity(ctx context.Context, skuID string, quantity int) error {
	if skuID == "" {
		return fmt.Errorf("sku id must not be empty")
	}
	if quantity < 0 {
		return fmt.Errorf("sku %s: quantity must not be negative", skuID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sku := l.find(skuID)
	if sku == nil {
		return fmt.Errorf("sku %s: %w", skuID, ErrSkuNotFound)
	}
	sku.Available = quantity
	return nil
}

// caller must hold l.mu
func (l *MemoryLedger) find(skuID string) *Sku {
	for _, sku := range l.skus {
		if sku.ID == skuID {
			return sku
		}
	}
	return nil
}
