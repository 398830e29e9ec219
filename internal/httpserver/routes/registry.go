package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/astral-cool/astral-web/internal/httpserver/deps"
)

type (
	// Registrar mounts the routes of one group.
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
	// Guard builds a group middleware once the dependencies are known.
	Guard func(d deps.Deps) Middleware
)

type group struct {
	name   string
	reg    Registrar
	guards []Guard
}

var groups []group

// Register adds a named route group. Guards wrap every route of the group,
// outermost first.
func Register(name string, reg Registrar, guards ...Guard) {
	groups = append(groups, group{name: name, reg: reg, guards: guards})
}

// RegisterAll mounts every registered group. Called once from Router.
func RegisterAll(r chi.Router, d deps.Deps) {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		r.Group(func(r chi.Router) {
			for _, guard := range g.guards {
				r.Use(guard(d))
			}
			g.reg(r, d)
		})
		names = append(names, g.name)
	}
	d.Logger.Debugf("routes: mounted %d groups (%s)", len(names), strings.Join(names, ", "))
}
