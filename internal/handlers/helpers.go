package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/darzihq/darzi/internal/httpx"
)

// idFromRequest reads the target id from the query string or a {"id": n}
// JSON body.
func idFromRequest(r *http.Request) (int, bool) {
	if v := r.URL.Query().Get("id"); v != "" {
		id, err := strconv.Atoi(v)
		return id, err == nil && id > 0
	}
	var body struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return 0, false
	}
	return body.ID, body.ID > 0
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}
