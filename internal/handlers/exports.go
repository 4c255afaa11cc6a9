package handlers

import (
	"net/http"
	"time"

	"github.com/darzihq/darzi/internal/export"
	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/store"
)

type ExportHandler struct {
	Store *store.Store
}

func NewExportHandler(s *store.Store) *ExportHandler { return &ExportHandler{Store: s} }

func exportFilename(prefix, ext string) string {
	return prefix + "_" + time.Now().Format("2006-01-02") + "." + ext
}

func (h *ExportHandler) CustomersCSV(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetAll()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	table := export.Customers(rec.Customers, rec.DateFormat)
	httpx.Attachment(w, exportFilename("customers", "csv"), "text/csv; charset=utf-8")
	if _, werr := w.Write([]byte(table.CSV())); werr != nil {
		_ = werr
	}
}

func (h *ExportHandler) MeasurementsCSV(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetAll()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	table := export.Measurements(rec.Measurements, rec.Customers, rec.DateFormat)
	httpx.Attachment(w, exportFilename("measurements", "csv"), "text/csv; charset=utf-8")
	if _, werr := w.Write([]byte(table.CSV())); werr != nil {
		_ = werr
	}
}

func (h *ExportHandler) OrdersCSV(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetAll()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	table := export.Orders(rec.Orders, rec.Customers, rec.TeamMembers, rec.DateFormat)
	httpx.Attachment(w, exportFilename("orders", "csv"), "text/csv; charset=utf-8")
	if _, werr := w.Write([]byte(table.CSV())); werr != nil {
		_ = werr
	}
}

// JSONDump serves the full record as a pretty-printed backup file.
func (h *ExportHandler) JSONDump(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetAll()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	body, err := export.RecordJSON(rec)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "encode_error", nil)
		return
	}
	httpx.Attachment(w, exportFilename("tailor_data", "json"), "application/json")
	if _, werr := w.Write(body); werr != nil {
		_ = werr
	}
}
