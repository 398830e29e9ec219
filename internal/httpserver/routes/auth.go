package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/astral-cool/astral-web/internal/httpserver/deps"
	"github.com/astral-cool/astral-web/internal/httpserver/handlers"
	"github.com/astral-cool/astral-web/internal/httpserver/mw"
)

func init() { Register("auth", registerAuth, allowedHost, noCache) }

func registerAuth(r chi.Router, d deps.Deps) {
	// One bucket per client across the three forms.
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.LoginLimit,
		RefillPerMin: d.LoginRefill,
		MaxEntries:   10_000,
		TrustProxy:   d.TrustProxy,
		OnLimited:    handlers.Throttled(d),
	})

	r.Get("/", handlers.Landing(d))
	r.Post("/logout", handlers.Logout(d))

	r.With(limit).Post("/login", handlers.Login(d))
	r.With(limit).Post("/register", handlers.Register(d))
	r.With(limit).Post("/password-reset", handlers.PasswordReset(d))
}
