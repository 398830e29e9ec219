package routes

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/astral-cool/astral-web/internal/httpserver/deps"
	"github.com/astral-cool/astral-web/internal/httpserver/handlers"
	"github.com/astral-cool/astral-web/internal/timezones"
)

func init() { Register("api", registerAPI, allowedHost, noCache) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Method(http.MethodGet, "/api/timezones", timezones.Handler())

	cfg := huma.DefaultConfig(d.Site.Title+" web API", d.Version)
	cfg.OpenAPIPath = "/api/openapi"
	cfg.DocsPath = ""
	cfg.SchemasPath = "/api/schemas"
	handlers.RegisterEmbedAPI(humachi.New(r, cfg), d)
}
