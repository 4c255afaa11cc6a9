package middleware

import (
	"context"
	"net/http"

	"github.com/darzihq/darzi/internal/i18n"
)

type ctxKey string

const (
	ctxLang  ctxKey = "pref_lang"
	ctxTheme ctxKey = "pref_theme"
)

// Prefs extracts language/theme preferences (cookie > query > header) and
// stores them in context. Query-provided prefs persist in cookies for ~30
// days.
func Prefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			lang = c.Value
		}
		if ql := r.URL.Query().Get("lang"); ql != "" {
			lang = ql
			http.SetCookie(w, &http.Cookie{Name: "lang", Value: lang, Path: "/", MaxAge: 86400 * 30})
		}
		if !i18n.Supported(lang) {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}
		theme := "system"
		if c, err := r.Cookie("theme"); err == nil && c.Value != "" {
			theme = c.Value
		}
		if qt := r.URL.Query().Get("theme"); qt != "" {
			theme = qt
			http.SetCookie(w, &http.Cookie{Name: "theme", Value: theme, Path: "/", MaxAge: 86400 * 30})
		}
		ctx := context.WithValue(r.Context(), ctxLang, lang)
		ctx = context.WithValue(ctx, ctxTheme, theme)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LangFrom returns the language preference from context or the default.
func LangFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxLang).(string); ok && v != "" {
		return v
	}
	return "en"
}

// ThemeFrom returns the theme preference from context or the default.
func ThemeFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxTheme).(string); ok && v != "" {
		return v
	}
	return "system"
}
