package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/astral-cool/astral-web/internal/httpserver/deps"
	"github.com/astral-cool/astral-web/internal/httpserver/handlers"
)

func init() { Register("probes", registerProbes, operatorsOnly) }

func registerProbes(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
	r.Get("/infra", handlers.Infra(d))
	r.Post("/refresh", handlers.Refresh(d))
}
