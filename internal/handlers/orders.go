package handlers

import (
	"net/http"

	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/store"
)

type OrderHandler struct {
	Store *store.Store
}

func NewOrderHandler(s *store.Store) *OrderHandler { return &OrderHandler{Store: s} }

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.ListOrders()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input store.OrderInput
	if !decodeJSON(w, r, &input) {
		return
	}
	order, err := h.Store.AddOrder(input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID int `json:"id"`
		store.OrderUpdate
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.ID <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	order, err := h.Store.UpdateOrder(input.ID, input.OrderUpdate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Store.DeleteOrder(id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Advance moves an order one step along the status cycle.
func (h *OrderHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	order, err := h.Store.AdvanceOrderStatus(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}
