// internal/allocation/handler.go
package allocation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/deperkenne/InventoryManagements/internal/orders"
)

type Handler struct {
	service Service
	store   orders.Store
}

func NewHandler(service Service, store orders.Store) *Handler {
	return &Handler{service: service, store: store}
}

// HandleProcess runs the allocation pass over every NEW order.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ProcessNewOrders(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleAddOrder registers a new order in status NEW.
func (h *Handler) HandleAddOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID                       string    `json:"id"`
		OrderDate                time.Time `json:"order_date"`
		CompleteDeliveryRequired bool      `json:"complete_delivery_required"`
		Priority                 string    `json:"priority"`
		Lines                    []struct {
			ProductName string `json:"product_name"`
			Quantity    int    `json:"quantity"`
		} `json:"lines"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	priority, err := parsePriority(req.Priority)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	lines := make([]orders.Line, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line.Quantity < 0 {
			http.Error(w, "line quantity must not be negative", http.StatusBadRequest)
			return
		}
		lines = append(lines, orders.NewLine(line.ProductName, line.Quantity))
	}

	order := orders.NewOrder(req.ID, orderDate, req.CompleteDeliveryRequired, priority, lines...)
	if err := h.store.Add(r.Context(), order); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func parsePriority(s string) (orders.Priority, error) {
	switch s {
	case "low":
		return orders.PriorityLow, nil
	case "", "normal":
		return orders.PriorityNormal, nil
	case "high":
		return orders.PriorityHigh, nil
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}
