package handlers

import (
	"net/http"

	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/i18n"
	"github.com/darzihq/darzi/internal/middleware"
	"github.com/darzihq/darzi/internal/store"
)

type SettingsHandler struct {
	Store *store.Store
}

func NewSettingsHandler(s *store.Store) *SettingsHandler { return &SettingsHandler{Store: s} }

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.Settings()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input store.SettingsUpdate
	if !decodeJSON(w, r, &input) {
		return
	}
	settings, err := h.Store.UpdateSettings(input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	lang := middleware.LangFrom(r)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"settings": settings,
		"message":  i18n.T(lang, "settings_updated"),
	})
}

// AddField registers a custom measurement field from its label.
func (h *SettingsHandler) AddField(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Label string `json:"label"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	field, err := h.Store.AddCustomField(input.Label)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	lang := middleware.LangFrom(r)
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"field":   field,
		"message": i18n.T(lang, "field_added"),
	})
}

// RemoveField deletes a custom measurement field by key. Recorded
// measurement values are unaffected.
func (h *SettingsHandler) RemoveField(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Key string `json:"key"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.Key == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_key", nil)
		return
	}
	if err := h.Store.RemoveCustomField(input.Key); err != nil {
		writeStoreError(w, err)
		return
	}
	lang := middleware.LangFrom(r)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"deleted": true,
		"message": i18n.T(lang, "field_removed"),
	})
}
