package handlers

import (
	"io"
	"net/http"

	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/i18n"
	"github.com/darzihq/darzi/internal/middleware"
	"github.com/darzihq/darzi/internal/store"
)

// importBodyLimit caps import payloads; the store holds hundreds of
// entities, not millions.
const importBodyLimit = 8 << 20

type DataHandler struct {
	Store *store.Store
}

func NewDataHandler(s *store.Store) *DataHandler { return &DataHandler{Store: s} }

// Import replaces the whole record with an uploaded JSON backup.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, importBodyLimit))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "read_failed", nil)
		return
	}
	rec, err := h.Store.Import(raw)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	lang := middleware.LangFrom(r)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"record":  rec,
		"message": i18n.T(lang, "data_imported"),
	})
}

// Reset wipes everything back to the default record.
func (h *DataHandler) Reset(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Reset()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	lang := middleware.LangFrom(r)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"record":  rec,
		"message": i18n.T(lang, "data_reset"),
	})
}
