package handlers

import (
	"net/http"

	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/store"
)

type DashboardHandler struct {
	Store *store.Store
}

func NewDashboardHandler(s *store.Store) *DashboardHandler { return &DashboardHandler{Store: s} }

// Stats aggregates the headline dashboard numbers from the current record.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetAll()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pending, completed := 0, 0
	revenue := 0.0
	for _, o := range rec.Orders {
		switch o.Status {
		case store.StatusPending:
			pending++
		case store.StatusDelivered:
			completed++
		}
		revenue += o.Price
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"totalCustomers":  len(rec.Customers),
		"pendingOrders":   pending,
		"completedOrders": completed,
		"totalRevenue":    revenue,
	})
}
