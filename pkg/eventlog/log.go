package eventlog

import (
	"context"
	"fmt"
	"sync"
)

// Log is an append-only store of domain events. Events are never mutated or
// deleted; compensation appends new events instead of retracting history.
//
// BySku is restricted to allocation events: it answers "which orders were
// served from this SKU", the question the reallocation trigger asks.
type Log interface {
	Append(ctx context.Context, event DomainEvent) error
	All(ctx context.Context) ([]DomainEvent, error)
	ByOrder(ctx context.Context, orderID string) ([]DomainEvent, error)
	BySku(ctx context.Context, skuID string) ([]DomainEvent, error)
}

// MemoryLog holds events in process memory, in append order.
type MemoryLog struct {
	mu     sync.RWMutex
	events []DomainEvent
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Append(ctx context.Context, event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event must not be nil")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)
	return nil
}

func (l *MemoryLog) All(ctx context.Context) ([]DomainEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]DomainEvent, len(l.events))
	copy(out, l.events)
	return out, nil
}

func (l *MemoryLog) ByOrder(ctx context.Context, orderID string) ([]DomainEvent, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order id must not be empty")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []DomainEvent
	for _, event := range l.events {
		if eventOrderID(event) == orderID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (l *MemoryLog) BySku(ctx context.Context, skuID string) ([]DomainEvent, error) {
	if skuID == "" {
		return nil, fmt.Errorf("sku id must not be empty")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []DomainEvent
	for _, event := range l.events {
		if allocation, ok := event.(SkuQuantityAllocated); ok && allocation.SkuID == skuID {
			out = append(out, allocation)
		}
	}
	return out, nil
}
