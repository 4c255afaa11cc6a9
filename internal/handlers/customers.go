package handlers

import (
	"net/http"

	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/store"
)

type CustomerHandler struct {
	Store *store.Store
}

func NewCustomerHandler(s *store.Store) *CustomerHandler { return &CustomerHandler{Store: s} }

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Store.ListCustomers()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input store.CustomerInput
	if !decodeJSON(w, r, &input) {
		return
	}
	customer, err := h.Store.AddCustomer(input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID int `json:"id"`
		store.CustomerUpdate
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.ID <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	customer, err := h.Store.UpdateCustomer(input.ID, input.CustomerUpdate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Store.DeleteCustomer(id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
