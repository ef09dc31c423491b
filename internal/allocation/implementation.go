// internal/allocation/implementation.go
package allocation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/deperkenne/InventoryManagements/internal/orders"
	"github.com/deperkenne/InventoryManagements/internal/stock"
	"github.com/deperkenne/InventoryManagements/pkg/eventlog"
)

// service implements the Service interface.
type service struct {
	orders    orders.Store
	ledger    stock.Ledger
	events    eventlog.Log
	canceller Canceller
	tracer    trace.Tracer
	released  metric.Int64Counter
}

// NewService creates a new allocation engine instance.
func NewService(store orders.Store, ledger stock.Ledger, events eventlog.Log, canceller Canceller) Service {
	released, err := otel.Meter("inventorymanagements/allocation").Int64Counter(
		"allocation.orders_released",
		metric.WithDescription("orders whose allocation committed"),
	)
	if err != nil {
		log.Printf("allocation: register counter: %v", err)
	}
	return &service{
		orders:    store,
		ledger:    ledger,
		events:    events,
		canceller: canceller,
		tracer:    otel.Tracer("inventorymanagements/allocation"),
		released:  released,
	}
}

func (s *service) ProcessNewOrders(ctx context.Context) error {
	pending, err := s.orders.GetByStatus(ctx, orders.StatusNew)
	if err != nil {
		return fmt.Errorf("load new orders: %w", err)
	}

	for _, order := range orders.SortByPriorityAndDate(pending) {
		released, err := s.AllocateStockToOrder(ctx, *order)
		if err != nil {
			log.Printf("allocation: order %s: %v", order.ID, err)
			continue
		}
		if !released {
			log.Printf("allocation: order %s could not be fully satisfied, compensated", order.ID)
		}
	}
	return nil
}

func (s *service) AllocateStockToOrder(ctx context.Context, order orders.Order) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "allocation.allocate_order",
		trace.WithAttributes(
			attribute.String("order.id", order.ID),
			attribute.Int("order.lines", len(order.Lines)),
			attribute.Bool("order.complete_delivery", order.CompleteDeliveryRequired),
		),
	)
	defer span.End()

	var pending []PendingAllocation
	shortfall := false

	// Quantity already pended per SKU within this attempt. Two lines of the
	// same product must not grab the same stock twice; the ledger is only
	// decremented at commit, so the scan has to do its own bookkeeping.
	pended := make(map[string]int)

	for _, line := range order.Lines {
		candidates, err := s.ledger.GetAvailableSkus(ctx, line.ProductName)
		if err != nil {
			if errors.Is(err, stock.ErrProductNotFound) {
				if order.CompleteDeliveryRequired {
					return false, fmt.Errorf("order %s line %s product %q: %w",
						order.ID, line.ID, line.ProductName, ErrNoCandidateSku)
				}
				// Partial delivery: the line is skipped, not failed.
				continue
			}
			return false, fmt.Errorf("fetch candidates for %q: %w", line.ProductName, err)
		}

		remaining := line.Quantity
		for _, sku := range candidates {
			if sku.Locked {
				// The ledger filters locked SKUs already; locked stock must
				// never be consumed even if one slips through.
				continue
			}
			if remaining <= 0 {
				break
			}
			grab := min(sku.Available-pended[sku.ID], remaining)
			if grab > 0 {
				pending = append(pending, PendingAllocation{Sku: sku, Quantity: grab, LineID: line.ID})
				pended[sku.ID] += grab
				remaining -= grab
			}
		}
		if remaining > 0 {
			shortfall = true
		}
	}

	if shortfall && order.CompleteDeliveryRequired {
		// Nothing from this attempt is committed. Compensation undoes what
		// earlier attempts may have recorded for this order; on a first
		// attempt it is a no-op.
		span.SetAttributes(attribute.Bool("allocation.compensated", true))
		if err := s.canceller.CancelOrder(ctx, order.ID); err != nil {
			return false, fmt.Errorf("compensate order %s: %w", order.ID, err)
		}
		return false, nil
	}

	if err := s.commit(ctx, order, pending); err != nil {
		return false, err
	}
	span.SetAttributes(attribute.Int("allocation.count", len(pending)))
	return true, nil
}

// commit appends one allocation event and applies one ledger decrement per
// pending triple, then releases the order.
func (s *service) commit(ctx context.Context, order orders.Order, pending []PendingAllocation) error {
	for _, pa := range pending {
		event := eventlog.NewSkuQuantityAllocated(pa.Sku.ID, pa.Quantity, order.ID, pa.LineID, string(orders.StatusReleased))
		if err := s.events.Append(ctx, event); err != nil {
			return fmt.Errorf("append allocation event: %w", err)
		}
		if err := s.ledger.ApplyAllocation(ctx, pa.Sku.ID, pa.Quantity); err != nil {
			return fmt.Errorf("apply allocation for sku %s: %w", pa.Sku.ID, err)
		}
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, orders.StatusReleased); err != nil {
		return fmt.Errorf("release order %s: %w", order.ID, err)
	}

	if s.released != nil {
		s.released.Add(ctx, 1)
	}
	return nil
}
