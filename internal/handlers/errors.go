package handlers

import (
	"errors"
	"net/http"

	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/store"
)

// writeStoreError maps store failures onto HTTP statuses. Callers keep their
// prior state on any non-2xx response.
func writeStoreError(w http.ResponseWriter, err error) {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", ve.Violations)
		return
	}
	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", map[string]any{"kind": nf.Kind, "id": nf.ID})
		return
	}
	var cs *store.CorruptStateError
	if errors.As(err, &cs) {
		httpx.JSONError(w, http.StatusInternalServerError, "corrupt_state", nil)
		return
	}
	var pe *store.PersistenceError
	if errors.As(err, &pe) {
		httpx.JSONError(w, http.StatusInternalServerError, "persistence_failed", nil)
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
}
