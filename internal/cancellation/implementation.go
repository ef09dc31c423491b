// internal/cancellation/implementation.go
package cancellation

import (
	"context"
	"fmt"
	"log"

	"github.com/deperkenne/InventoryManagements/internal/stock"
	"github.com/deperkenne/InventoryManagements/pkg/eventlog"
)

// service implements the Service interface.
type service struct {
	events eventlog.Log
	ledger stock.Ledger
}

// NewService creates a new cancellation service instance.
func NewService(events eventlog.Log, ledger stock.Ledger) Service {
	return &service{events: events, ledger: ledger}
}

// CancelOrder compensates every allocation recorded for the order: one
// matching deallocation event plus a ledger rollback per allocation event.
// An order with no recorded events is a silent no-op. Compensation is
// forward-only; the original events stay in the log untouched.
func (s *service) CancelOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return fmt.Errorf("order id must not be empty")
	}

	toRevert, err := s.events.ByOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load events for order %s: %w", orderID, err)
	}
	if len(toRevert) == 0 {
		return nil
	}

	reverted := 0
	for _, event := range toRevert {
		allocation, ok := event.(eventlog.SkuQuantityAllocated)
		if !ok {
			// Deallocations and cancellation markers are not compensated.
			continue
		}

		deallocation := eventlog.NewSkuQuantityDeallocated(
			allocation.SkuID, allocation.Quantity, allocation.OrderID, allocation.LineID)
		if err := s.events.Append(ctx, deallocation); err != nil {
			return fmt.Errorf("append deallocation event: %w", err)
		}
		if err := s.ledger.RollbackAllocation(ctx, allocation.SkuID, allocation.Quantity); err != nil {
			return fmt.Errorf("rollback sku %s: %w", allocation.SkuID, err)
		}
		reverted++
	}

	if reverted > 0 {
		log.Printf("cancellation: order %s: reverted %d allocation events", orderID, reverted)
		if err := s.events.Append(ctx, eventlog.NewOrderCancelled(orderID)); err != nil {
			return fmt.Errorf("append cancellation event: %w", err)
		}
	}
	return nil
}

func (s *service) CancelOrders(ctx context.Context, orderIDs []string) error {
	for _, orderID := range orderIDs {
		if err := s.CancelOrder(ctx, orderID); err != nil {
			return err
		}
	}
	return nil
}
