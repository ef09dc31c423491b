// internal/orders/domain.go
package orders

import (
	"time"

	"github.com/google/uuid"
)

// Priority ranks orders for allocation. Higher values are served first.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	}
	return "unknown"
}

// Status is the lifecycle state of an order. Further states are reserved.
type Status string

const (
	StatusNew      Status = "NEW"
	StatusReleased Status = "RELEASED"
)

// Line is one requested position of an order. The ID is assigned at
// construction and stays stable for the life of the order; ProductName keys
// the candidate SKU lookup, it is not a SKU id.
type Line struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// NewLine creates a line with a generated identifier.
func NewLine(productName string, quantity int) Line {
	return Line{
		ID:          uuid.NewString(),
		ProductName: productName,
		Quantity:    quantity,
	}
}

// Order is a customer order awaiting stock allocation.
type Order struct {
	ID                       string    `json:"id"`
	OrderDate                time.Time `json:"order_date"`
	CompleteDeliveryRequired bool      `json:"complete_delivery_required"`
	Priority                 Priority  `json:"priority"`
	Status                   Status    `json:"status"`
	Lines                    []Line    `json:"lines"`
}

// NewOrder creates an order in status NEW.
func NewOrder(id string, orderDate time.Time, completeDelivery bool, priority Priority, lines ...Line) *Order {
	return &Order{
		ID:                       id,
		OrderDate:                orderDate,
		CompleteDeliveryRequired: completeDelivery,
		Priority:                 priority,
		Status:                   StatusNew,
		Lines:                    lines,
	}
}

// View returns a transient value copy of the order carrying only the lines
// whose IDs appear in lineIDs. The copy is meant to be consumed by a single
// allocation pass and must never be persisted. ok is false when no line
// matched.
func (o *Order) View(lineIDs map[string]bool) (Order, bool) {
	var kept []Line
	for _, line := range o.Lines {
		if lineIDs[line.ID] {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return Order{}, false
	}
	view := *o
	view.Lines = kept
	return view, true
}
