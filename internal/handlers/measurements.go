package handlers

import (
	"net/http"

	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/store"
)

type MeasurementHandler struct {
	Store *store.Store
}

func NewMeasurementHandler(s *store.Store) *MeasurementHandler { return &MeasurementHandler{Store: s} }

func (h *MeasurementHandler) List(w http.ResponseWriter, r *http.Request) {
	ms, err := h.Store.ListMeasurements()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ms)
}

func (h *MeasurementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input store.MeasurementInput
	if !decodeJSON(w, r, &input) {
		return
	}
	m, err := h.Store.AddMeasurement(input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

func (h *MeasurementHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID int `json:"id"`
		store.MeasurementUpdate
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.ID <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	m, err := h.Store.UpdateMeasurement(input.ID, input.MeasurementUpdate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *MeasurementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Store.DeleteMeasurement(id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Fields returns the effective measurement field set for a clothing type
// under the active field policy.
func (h *MeasurementHandler) Fields(w http.ResponseWriter, r *http.Request) {
	clothingType := r.URL.Query().Get("type")
	fields, err := h.Store.MeasurementFields(clothingType)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, fields)
}
