package eventlog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLogByOrder(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog()

	require.NoError(t, log.Append(ctx, NewSkuQuantityAllocated("SKU_A", 30, "ORDER_1", "L1", "RELEASED")))
	require.NoError(t, log.Append(ctx, NewSkuQuantityAllocated("SKU_B", 10, "ORDER_2", "L2", "RELEASED")))
	require.NoError(t, log.Append(ctx, NewSkuQuantityDeallocated("SKU_A", 30, "ORDER_1", "L1")))
	require.NoError(t, log.Append(ctx, NewOrderCancelled("ORDER_1")))

	events, err := log.ByOrder(ctx, "ORDER_1")
	require.NoError(t, err)
	assert.Len(t, events, 3, "allocation, deallocation and cancellation all reference the order")

	events, err = log.ByOrder(ctx, "ORDER_3")
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = log.ByOrder(ctx, "")
	assert.Error(t, err)
}

func TestMemoryLogBySkuRestrictedToAllocations(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog()

	require.NoError(t, log.Append(ctx, NewSkuQuantityAllocated("SKU_A", 30, "ORDER_1", "L1", "RELEASED")))
	require.NoError(t, log.Append(ctx, NewSkuQuantityDeallocated("SKU_A", 30, "ORDER_1", "L1")))
	require.NoError(t, log.Append(ctx, NewSkuQuantityAllocated("SKU_A", 5, "ORDER_2", "L2", "RELEASED")))
	require.NoError(t, log.Append(ctx, NewSkuQuantityAllocated("SKU_B", 5, "ORDER_2", "L3", "RELEASED")))

	events, err := log.BySku(ctx, "SKU_A")
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, event := range events {
		assert.Equal(t, KindAllocation, event.Kind())
	}
}

func TestMemoryLogAllReturnsAppendOrder(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog()

	require.NoError(t, log.Append(ctx, NewSkuQuantityAllocated("SKU_A", 1, "ORDER_1", "L1", "RELEASED")))
	require.NoError(t, log.Append(ctx, NewOrderCancelled("ORDER_1")))

	events, err := log.All(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, KindAllocation, events[0].Kind())
	assert.Equal(t, KindOrderCancelled, events[1].Kind())

	// The returned slice is a copy; appending through it must not grow the log.
	_ = append(events, NewOrderCancelled("ORDER_2"))
	events, err = log.All(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestDecodeEventRoundTrip(t *testing.T) {
	allocated := NewSkuQuantityAllocated("SKU_A", 30, "ORDER_1", "L1", "RELEASED")

	payload, err := json.Marshal(allocated)
	require.NoError(t, err)

	decoded, err := decodeEvent(KindAllocation, payload)
	require.NoError(t, err)

	got, ok := decoded.(SkuQuantityAllocated)
	require.True(t, ok)
	assert.Equal(t, allocated.SkuID, got.SkuID)
	assert.Equal(t, allocated.Quantity, got.Quantity)
	assert.Equal(t, allocated.OrderID, got.OrderID)
	assert.Equal(t, allocated.LineID, got.LineID)
	assert.Equal(t, allocated.OrderStatus, got.OrderStatus)
	assert.True(t, got.At.Equal(allocated.At))

	_, err = decodeEvent(Kind("bogus"), payload)
	assert.Error(t, err)
}
