package eventlog

import "time"

// Kind discriminates the closed set of domain event variants.
type Kind string

const (
	KindAllocation     Kind = "allocation"
	KindDeallocation   Kind = "deallocation"
	KindOrderCancelled Kind = "order_cancelled"
)

// DomainEvent is the closed union of event variants the log can hold. The
// unexported method seals the set: adding a variant forces every exhaustive
// switch in this module to be revisited.
type DomainEvent interface {
	Kind() Kind
	OccurredAt() time.Time
	isDomainEvent()
}

// SkuQuantityAllocated records that a SKU satisfied (part of) an order line.
// These events are the only historical record of which SKU served which line;
// compensation and reallocation both replay them.
type SkuQuantityAllocated struct {
	SkuID       string    `json:"sku_id"`
	Quantity    int       `json:"quantity"`
	OrderID     string    `json:"order_id"`
	LineID      string    `json:"line_id"`
	OrderStatus string    `json:"order_status"`
	At          time.Time `json:"occurred_at"`
}

func NewSkuQuantityAllocated(skuID string, quantity int, orderID, lineID, orderStatus string) SkuQuantityAllocated {
	return SkuQuantityAllocated{
		SkuID:       skuID,
		Quantity:    quantity,
		OrderID:     orderID,
		LineID:      lineID,
		OrderStatus: orderStatus,
		At:          time.Now().UTC(),
	}
}

func (e SkuQuantityAllocated) Kind() Kind            { return KindAllocation }
func (e SkuQuantityAllocated) OccurredAt() time.Time { return e.At }
func (SkuQuantityAllocated) isDomainEvent()          {}

// SkuQuantityDeallocated is the compensating counterpart of an allocation.
// It carries the same SKU, quantity, order and line as the event it reverts.
type SkuQuantityDeallocated struct {
	SkuID    string    `json:"sku_id"`
	Quantity int       `json:"quantity"`
	OrderID  string    `json:"order_id"`
	LineID   string    `json:"line_id"`
	At       time.Time `json:"occurred_at"`
}

func NewSkuQuantityDeallocated(skuID string, quantity int, orderID, lineID string) SkuQuantityDeallocated {
	return SkuQuantityDeallocated{
		SkuID:    skuID,
		Quantity: quantity,
		OrderID:  orderID,
		LineID:   lineID,
		At:       time.Now().UTC(),
	}
}

func (e SkuQuantityDeallocated) Kind() Kind            { return KindDeallocation }
func (e SkuQuantityDeallocated) OccurredAt() time.Time { return e.At }
func (SkuQuantityDeallocated) isDomainEvent()          {}

// OrderCancelled marks that an order's allocations were compensated. It is a
// recorded fact, not an instruction; nothing replays it.
type OrderCancelled struct {
	OrderID string    `json:"order_id"`
	At      time.Time `json:"occurred_at"`
}

func NewOrderCancelled(orderID string) OrderCancelled {
	return OrderCancelled{OrderID: orderID, At: time.Now().UTC()}
}

func (e OrderCancelled) Kind() Kind            { return KindOrderCancelled }
func (e OrderCancelled) OccurredAt() time.Time { return e.At }
func (OrderCancelled) isDomainEvent()          {}

// eventOrderID extracts the order an event references, matched exhaustively
// over the closed variant set.
func eventOrderID(event DomainEvent) string {
	switch e := event.(type) {
	case SkuQuantityAllocated:
		return e.OrderID
	case SkuQuantityDeallocated:
		return e.OrderID
	case OrderCancelled:
		return e.OrderID
	}
	return ""
}
