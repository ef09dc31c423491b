package cancellation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deperkenne/InventoryManagements/internal/stock"
	"github.com/deperkenne/InventoryManagements/pkg/eventlog"
)

func setupCancellation(t *testing.T) (*eventlog.MemoryLog, *stock.MemoryLedger, Service) {
	t.Helper()
	events := eventlog.NewMemoryLog()
	ledger := stock.NewMemoryLedger()
	return events, ledger, NewService(events, ledger)
}

func TestCancelOrderNoEventsIsNoOp(t *testing.T) {
	ctx := context.Background()
	events, ledger, svc := setupCancellation(t)
	require.NoError(t, ledger.Register(stock.Sku{ID: "SKU_A", ProductName: "COLA_L1", Available: 10}))

	require.NoError(t, svc.CancelOrder(ctx, "NEVER_ALLOCATED"))

	all, err := events.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "no event-log writes for an unknown order")

	sku, err := ledger.GetSkuByID(ctx, "SKU_A")
	require.NoError(t, err)
	assert.Equal(t, 10, sku.Available, "no ledger writes either")
}

func TestCancelOrderRevertsAllocations(t *testing.T) {
	ctx := context.Background()
	events, ledger, svc := setupCancellation(t)
	require.NoError(t, ledger.Register(stock.Sku{ID: "SKU_A", ProductName: "COLA_L1", Available: 70}))
	require.NoError(t, ledger.Register(stock.Sku{ID: "SKU_B", ProductName: "COLA_L1", Available: 90}))

	// State after an earlier committed allocation of 30 + 10.
	require.NoError(t, events.Append(ctx, eventlog.NewSkuQuantityAllocated("SKU_A", 30, "ORDER_1", "L1", "RELEASED")))
	require.NoError(t, events.Append(ctx, eventlog.NewSkuQuantityAllocated("SKU_B", 10, "ORDER_1", "L2", "RELEASED")))

	require.NoError(t, svc.CancelOrder(ctx, "ORDER_1"))

	skuA, err := ledger.GetSkuByID(ctx, "SKU_A")
	require.NoError(t, err)
	assert.Equal(t, 100, skuA.Available)
	skuB, err := ledger.GetSkuByID(ctx, "SKU_B")
	require.NoError(t, err)
	assert.Equal(t, 100, skuB.Available)

	all, err := events.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5, "2 allocations + 2 deallocations + 1 cancellation marker")

	dealloc := all[2].(eventlog.SkuQuantityDeallocated)
	assert.Equal(t, "SKU_A", dealloc.SkuID)
	assert.Equal(t, 30, dealloc.Quantity)
	assert.Equal(t, "ORDER_1", dealloc.OrderID)
	assert.Equal(t, "L1", dealloc.LineID)

	assert.Equal(t, eventlog.KindOrderCancelled, all[4].Kind())
}

func TestCancelOrderIgnoresNonAllocationEvents(t *testing.T) {
	ctx := context.Background()
	events, ledger, svc := setupCancellation(t)
	require.NoError(t, ledger.Register(stock.Sku{ID: "SKU_A", ProductName: "COLA_L1", Available: 50}))

	require.NoError(t, events.Append(ctx, eventlog.NewSkuQuantityDeallocated("SKU_A", 30, "ORDER_1", "L1")))
	require.NoError(t, events.Append(ctx, eventlog.NewOrderCancelled("ORDER_1")))

	require.NoError(t, svc.CancelOrder(ctx, "ORDER_1"))

	sku, err := ledger.GetSkuByID(ctx, "SKU_A")
	require.NoError(t, err)
	assert.Equal(t, 50, sku.Available)

	all, err := events.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "nothing to compensate, nothing appended")
}

func TestCancelOrderEmptyID(t *testing.T) {
	_, _, svc := setupCancellation(t)
	assert.Error(t, svc.CancelOrder(context.Background(), ""))
}

func TestCancelOrdersProcessesEach(t *testing.T) {
	ctx := context.Background()
	events, ledger, svc := setupCancellation(t)
	require.NoError(t, ledger.Register(stock.Sku{ID: "SKU_A", ProductName: "COLA_L1", Available: 0}))

	require.NoError(t, events.Append(ctx, eventlog.NewSkuQuantityAllocated("SKU_A", 5, "ORDER_1", "L1", "RELEASED")))
	require.NoError(t, events.Append(ctx, eventlog.NewSkuQuantityAllocated("SKU_A", 7, "ORDER_2", "L2", "RELEASED")))

	require.NoError(t, svc.CancelOrders(ctx, []string{"ORDER_1", "ORDER_2", "ORDER_3"}))

	sku, err := ledger.GetSkuByID(ctx, "SKU_A")
	require.NoError(t, err)
	assert.Equal(t, 12, sku.Available)
}
