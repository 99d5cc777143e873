package server

import (
	"net/http"
	"time"

	"income-tax-tracker/internal/auth"
	"income-tax-tracker/internal/entries"
	"income-tax-tracker/internal/tax"
	"income-tax-tracker/internal/web"
)

// LocalOwner is the single owner used when sign-in is disabled.
const LocalOwner = "local"

// SetupRouter wires the API and the page. A nil authService serves every
// request as LocalOwner.
func SetupRouter(ledger *entries.Ledger, authService *auth.Service, tokenTTL time.Duration) http.Handler {
	protect := func(h http.Handler) http.Handler {
		return auth.StaticOwner(LocalOwner, h)
	}
	session := protect
	if authService != nil {
		protect = func(h http.Handler) http.Handler {
			return auth.JWTMiddleware(authService, h)
		}
		session = func(h http.Handler) http.Handler {
			return auth.SessionMiddleware(authService, h)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	if authService != nil {
		mux.Handle("POST /api/v1/register", auth.RegisterHandler(authService))
		mux.Handle("POST /api/v1/login", auth.LoginHandler(authService))
	}
	mux.Handle("GET /api/v1/entries", protect(entries.ListHandler(ledger)))
	mux.Handle("POST /api/v1/entries", protect(entries.CreateHandler(ledger)))
	mux.Handle("DELETE /api/v1/entries/{id}", protect(entries.DeleteHandler(ledger)))
	mux.Handle("GET /api/v1/summary", protect(tax.SummaryHandler(ledger)))
	mux.Handle("PUT /api/v1/settings", protect(tax.SettingsHandler(ledger)))

	pages := http.NewServeMux()
	web.NewPages(ledger, authService, tokenTTL).Register(pages)
	mux.Handle("/", session(pages))

	return RequestLogger(mux)
}
