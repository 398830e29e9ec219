package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/astral-cool/astral-web/internal/httpserver/deps"
	"github.com/astral-cool/astral-web/internal/httpserver/handlers"
)

func init() { Register("pages", registerPages, allowedHost, noCache, signedIn) }

func registerPages(r chi.Router, d deps.Deps) {
	r.Get("/dashboard", handlers.Dashboard(d))
	r.Get("/settings", handlers.Settings(d))
	r.Get("/settings/config", handlers.UploaderConfig(d))
	r.Post("/settings/toggle", handlers.Toggle(d))
	r.Post("/settings/embed", handlers.Embed(d))
	r.Post("/settings/domain", handlers.Domain(d))
	r.Post("/settings/wipe", handlers.Wipe(d))
	r.Post("/settings/zone", handlers.Zone(d))
}
