package server

import (
	"log"
	"net/http"
	"time"

	"github.com/darzihq/darzi/internal/handlers"
	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/middleware"
	"github.com/darzihq/darzi/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(st *store.Store) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(); err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Customer endpoints. List/Create via /customers, Update/Delete via
	// /customers/update & /customers/delete.
	ch := handlers.NewCustomerHandler(st)
	mux.HandleFunc("/customers", listCreate(ch.List, ch.Create))
	mux.HandleFunc("/customers/update", postOnly(ch.Update))
	mux.HandleFunc("/customers/delete", postOnly(ch.Delete))

	// Measurement endpoints
	mh := handlers.NewMeasurementHandler(st)
	mux.HandleFunc("/measurements", listCreate(mh.List, mh.Create))
	mux.HandleFunc("/measurements/update", postOnly(mh.Update))
	mux.HandleFunc("/measurements/delete", postOnly(mh.Delete))
	mux.HandleFunc("/measurements/fields", getOnly(mh.Fields))

	// Order endpoints
	oh := handlers.NewOrderHandler(st)
	mux.HandleFunc("/orders", listCreate(oh.List, oh.Create))
	mux.HandleFunc("/orders/update", postOnly(oh.Update))
	mux.HandleFunc("/orders/delete", postOnly(oh.Delete))
	mux.HandleFunc("/orders/advance", postOnly(oh.Advance))

	// Team endpoints
	th := handlers.NewTeamHandler(st)
	mux.HandleFunc("/team", listCreate(th.List, th.Create))
	mux.HandleFunc("/team/update", postOnly(th.Update))
	mux.HandleFunc("/team/delete", postOnly(th.Delete))

	// Settings & custom measurement fields
	sh := handlers.NewSettingsHandler(st)
	mux.HandleFunc("/settings", listCreate(sh.Get, sh.Update))
	mux.HandleFunc("/settings/fields", postOnly(sh.AddField))
	mux.HandleFunc("/settings/fields/delete", postOnly(sh.RemoveField))

	// Export / import / reset
	eh := handlers.NewExportHandler(st)
	mux.HandleFunc("/export/customers.csv", getOnly(eh.CustomersCSV))
	mux.HandleFunc("/export/measurements.csv", getOnly(eh.MeasurementsCSV))
	mux.HandleFunc("/export/orders.csv", getOnly(eh.OrdersCSV))
	mux.HandleFunc("/export/json", getOnly(eh.JSONDump))
	dh := handlers.NewDataHandler(st)
	mux.HandleFunc("/import", postOnly(dh.Import))
	mux.HandleFunc("/reset", postOnly(dh.Reset))

	// Dashboard & translations
	dash := handlers.NewDashboardHandler(st)
	mux.HandleFunc("/dashboard/stats", getOnly(dash.Stats))
	mux.HandleFunc("/translations", getOnly(handlers.Translations))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("Darzi records API")); werr != nil {
			_ = werr
		}
	})

	return middleware.Prefs(withRecover(withLogging(mux)))
}

func listCreate(list, create http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}
}

func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}

func postOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		h(w, r)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
