package adjustment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deperkenne/InventoryManagements/internal/allocation"
	"github.com/deperkenne/InventoryManagements/internal/cancellation"
	"github.com/deperkenne/InventoryManagements/internal/orders"
	"github.com/deperkenne/InventoryManagements/internal/stock"
	"github.com/deperkenne/InventoryManagements/pkg/eventlog"
)

func TestAffectedOrdersScoping(t *testing.T) {
	orderA := orders.NewOrder("ORDER_A", time.Now(), true, orders.PriorityNormal,
		orders.NewLine("COLA_L1", 10),
		orders.NewLine("WATER_L1", 20))
	orderB := orders.NewOrder("ORDER_B", time.Now(), false, orders.PriorityHigh,
		orders.NewLine("COLA_L1", 5),
		orders.NewLine("FANTA_L1", 5))

	lineA := orderA.Lines[0]
	lineB := orderB.Lines[0]

	events := []eventlog.DomainEvent{
		eventlog.NewSkuQuantityAllocated("SKU_X", 10, "ORDER_A", lineA.ID, "RELEASED"),
		eventlog.NewSkuQuantityAllocated("SKU_X", 5, "ORDER_B", lineB.ID, "RELEASED"),
		// Deallocations never implicate an order.
		eventlog.NewSkuQuantityDeallocated("SKU_X", 3, "ORDER_A", orderA.Lines[1].ID),
	}

	affected := AffectedOrders([]*orders.Order{orderA, orderB}, events)
	require.Len(t, affected, 2)

	require.Len(t, affected[0].Lines, 1, "derived orders carry only implicated lines")
	assert.Equal(t, "ORDER_A", affected[0].ID)
	assert.Equal(t, lineA.ID, affected[0].Lines[0].ID)

	require.Len(t, affected[1].Lines, 1)
	assert.Equal(t, "ORDER_B", affected[1].ID)
	assert.Equal(t, lineB.ID, affected[1].Lines[0].ID)

	// The persisted aggregates keep their full line sets.
	assert.Len(t, orderA.Lines, 2)
	assert.Len(t, orderB.Lines, 2)
}

func TestAffectedOrdersDropsOrdersWithoutSurvivingLines(t *testing.T) {
	order := orders.NewOrder("ORDER_A", time.Now(), true, orders.PriorityNormal,
		orders.NewLine("COLA_L1", 10))

	events := []eventlog.DomainEvent{
		eventlog.NewSkuQuantityAllocated("SKU_X", 10, "ORDER_A", "line-that-was-restructured", "RELEASED"),
		eventlog.NewSkuQuantityAllocated("SKU_X", 10, "ORDER_GONE", "some-line", "RELEASED"),
	}

	affected := AffectedOrders([]*orders.Order{order}, events)
	assert.Empty(t, affected)
}

// Full loop: allocate, correct the SKU downward, re-target only the affected
// orders by priority.
func TestAdjustSkuQuantityReallocates(t *testing.T) {
	ctx := context.Background()

	store := orders.NewMemoryStore()
	ledger := stock.NewMemoryLedger()
	events := eventlog.NewMemoryLog()
	cancelSvc := cancellation.NewService(events, ledger)
	engine := allocation.NewService(store, ledger, events, cancelSvc)
	adjust := NewService(ledger, store, events, engine)

	require.NoError(t, ledger.Register(stock.Sku{ID: "SKU_A", ProductName: "ORANGE_L1", Available: 80}))

	high := orders.NewOrder("ORDER_HIGH", time.Date(2025, 9, 10, 20, 40, 0, 0, time.UTC), true, orders.PriorityHigh,
		orders.NewLine("ORANGE_L1", 40))
	low := orders.NewOrder("ORDER_LOW", time.Date(2025, 9, 10, 20, 40, 1, 0, time.UTC), true, orders.PriorityLow,
		orders.NewLine("ORANGE_L1", 40))
	require.NoError(t, store.Add(ctx, high))
	require.NoError(t, store.Add(ctx, low))

	require.NoError(t, engine.ProcessNewOrders(ctx))
	sku, err := ledger.GetSkuByID(ctx, "SKU_A")
	require.NoError(t, err)
	require.Equal(t, 0, sku.Available)

	// Stocktake finds only 20 units. The high-priority order can no longer be
	// fully served: its allocation is compensated and the freed stock serves
	// the low-priority order.
	require.NoError(t, adjust.AdjustSkuQuantity(ctx, "SKU_A", 20))

	sku, err = ledger.GetSkuByID(ctx, "SKU_A")
	require.NoError(t, err)
	assert.Equal(t, 20, sku.Available)

	highEvents, err := events.ByOrder(ctx, "ORDER_HIGH")
	require.NoError(t, err)
	var deallocated int
	cancelled := false
	for _, event := range highEvents {
		switch e := event.(type) {
		case eventlog.SkuQuantityDeallocated:
			deallocated += e.Quantity
		case eventlog.OrderCancelled:
			cancelled = true
		}
	}
	assert.Equal(t, 40, deallocated)
	assert.True(t, cancelled)

	lowEvents, err := events.BySku(ctx, "SKU_A")
	require.NoError(t, err)
	var lowAllocations int
	for _, event := range lowEvents {
		if e := event.(eventlog.SkuQuantityAllocated); e.OrderID == "ORDER_LOW" {
			lowAllocations += e.Quantity
		}
	}
	assert.Equal(t, 80, lowAllocations, "original allocation plus the reallocation pass")
}

func TestHandleStockUpdateNoAffectedOrders(t *testing.T) {
	ctx := context.Background()

	store := orders.NewMemoryStore()
	ledger := stock.NewMemoryLedger()
	events := eventlog.NewMemoryLog()
	adjust := NewService(ledger, store, events, allocation.NewService(store, ledger, events, cancellation.NewService(events, ledger)))

	require.NoError(t, ledger.Register(stock.Sku{ID: "SKU_A", ProductName: "COLA_L1", Available: 10}))

	require.NoError(t, adjust.HandleStockUpdate(ctx, "SKU_A"))

	all, err := events.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdjustSkuQuantityRateLimited(t *testing.T) {
	ctx := context.Background()

	store := orders.NewMemoryStore()
	ledger := stock.NewMemoryLedger()
	events := eventlog.NewMemoryLog()
	adjust := NewService(ledger, store, events, allocation.NewService(store, ledger, events, cancellation.NewService(events, ledger)))

	require.NoError(t, ledger.Register(stock.Sku{ID: "SKU_A", ProductName: "COLA_L1", Available: 10}))

	var limited bool
	for i := 0; i < 11; i++ {
		if err := adjust.AdjustSkuQuantity(ctx, "SKU_A", 10); err != nil {
			limited = true
			break
		}
	}
	assert.True(t, limited, "burst above the limiter must be rejected")
}
