// internal/adjustment/handler.go
package adjustment

import (
	"encoding/json"
	"net/http"

	"github.com/deperkenne/InventoryManagements/internal/operator"
)

type Handler struct {
	service Service
	guard   *operator.Guard
}

func NewHandler(service Service, guard *operator.Guard) *Handler {
	return &Handler{service: service, guard: guard}
}

// HandleAdjust applies a manual SKU quantity correction. The endpoint is
// guarded by the operator credential carried in the X-Operator-Password
// header.
func (h *Handler) HandleAdjust(w http.ResponseWriter, r *http.Request) {
	if h.guard != nil && !h.guard.Verify(r.Header.Get("X-Operator-Password")) {
		http.Error(w, "invalid operator credentials", http.StatusUnauthorized)
		return
	}

	var req struct {
		SkuID    string `json:"sku_id"`
		Quantity int    `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.SkuID == "" {
		http.Error(w, "sku_id is required", http.StatusBadRequest)
		return
	}
	if req.Quantity < 0 {
		http.Error(w, "quantity must not be negative", http.StatusBadRequest)
		return
	}

	if err := h.service.AdjustSkuQuantity(r.Context(), req.SkuID, req.Quantity); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
