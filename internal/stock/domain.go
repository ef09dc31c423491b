// internal/stock/domain.go
package stock

// Sku is one stock-keeping unit. Many SKUs may share a product name; they are
// interchangeable candidates for an order line. Locked SKUs are never
// candidates for allocation.
type Sku struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	Location    string `json:"location"`
	Locked      bool   `json:"locked"`
	Available   int    `json:"available"`
}
