package handlers

import (
	"net/http"

	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/i18n"
	"github.com/darzihq/darzi/internal/middleware"
)

// Translations serves the catalog for the active language so a client can
// translate its page text wholesale.
func Translations(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"language":  lang,
		"languages": i18n.Languages(),
		"catalog":   i18n.Catalog(lang),
	})
}
