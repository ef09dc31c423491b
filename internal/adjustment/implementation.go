// internal/adjustment/implementation.go
package adjustment

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/deperkenne/InventoryManagements/internal/orders"
	"github.com/deperkenne/InventoryManagements/internal/stock"
	"github.com/deperkenne/InventoryManagements/pkg/eventlog"
)

// service implements the Service interface.
type service struct {
	ledger      stock.Ledger
	orders      orders.Store
	events      eventlog.Log
	allocator   Allocator
	rateLimiter *rate.Limiter
}

// NewService creates a new adjustment service instance.
func NewService(ledger stock.Ledger, store orders.Store, events eventlog.Log, allocator Allocator) Service {
	return &service{
		ledger:      ledger,
		orders:      store,
		events:      events,
		allocator:   allocator,
		rateLimiter: rate.NewLimiter(rate.Every(1*time.Second), 10), // 10 corrections per second
	}
}

func (s *service) AdjustSkuQuantity(ctx context.Context, skuID string, newQuantity int) error {
	if !s.rateLimiter.Allow() {
		return fmt.Errorf("rate limit exceeded")
	}

	if err := s.ledger.SetQuantity(ctx, skuID, newQuantity); err != nil {
		return fmt.Errorf("set quantity for sku %s: %w", skuID, err)
	}
	return s.HandleStockUpdate(ctx, skuID)
}

func (s *service) HandleStockUpdate(ctx context.Context, skuID string) error {
	all, err := s.orders.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	allocations, err := s.events.BySku(ctx, skuID)
	if err != nil {
		return fmt.Errorf("load allocation events for sku %s: %w", skuID, err)
	}

	affected := AffectedOrders(all, allocations)
	if len(affected) == 0 {
		return nil
	}
	log.Printf("adjustment: sku %s: reallocating %d affected orders", skuID, len(affected))

	// One order's outcome never blocks the rest of the batch.
	for _, order := range orders.SortByPriorityAndDate(affected) {
		released, err := s.allocator.AllocateStockToOrder(ctx, *order)
		if err != nil {
			log.Printf("adjustment: reallocate order %s: %v", order.ID, err)
			continue
		}
		if !released {
			log.Printf("adjustment: order %s could not be fully satisfied, compensated", order.ID)
		}
	}
	return nil
}

// AffectedOrders reduces the order set to derived views containing only the
// lines implicated by the given allocation events. Orders whose implicated
// lines no longer exist are excluded entirely. The views are transient value
// clones; they are consumed by one allocation pass and never persisted.
func AffectedOrders(all []*orders.Order, events []eventlog.DomainEvent) []*orders.Order {
	linesByOrder := make(map[string]map[string]bool)
	for _, event := range events {
		allocation, ok := event.(eventlog.SkuQuantityAllocated)
		if !ok {
			continue
		}
		lines := linesByOrder[allocation.OrderID]
		if lines == nil {
			lines = make(map[string]bool)
			linesByOrder[allocation.OrderID] = lines
		}
		lines[allocation.LineID] = true
	}

	// Iterate the order list, not the map, so equal-priority ties keep the
	// store's original relative order through the stable sort.
	var affected []*orders.Order
	for _, order := range all {
		lines, ok := linesByOrder[order.ID]
		if !ok {
			continue
		}
		view, ok := order.View(lines)
		if !ok {
			continue
		}
		affected = append(affected, &view)
	}
	return affected
}
