package routes

import (
	"github.com/astral-cool/astral-web/internal/httpserver/deps"
	"github.com/astral-cool/astral-web/internal/httpserver/handlers"
	"github.com/astral-cool/astral-web/internal/httpserver/mw"
)

func allowedHost(d deps.Deps) Middleware { return mw.EnforceHost(d.AllowedHosts, d.Logger) }

func noCache(deps.Deps) Middleware { return mw.NoCache }

func signedIn(d deps.Deps) Middleware { return mw.RequireSession(d.Sessions, handlers.RequireLogin) }

func operatorsOnly(d deps.Deps) Middleware {
	return mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
}
