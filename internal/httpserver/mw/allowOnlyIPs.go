package mw

import (
	"net/http"

	"github.com/astral-cool/astral-web/internal/logger"
	"github.com/astral-cool/astral-web/internal/utils"
)

// AllowOnlyCIDRS restricts the operator endpoints (probes, /infra, /refresh)
// to the given addresses and ranges. An empty list lets everything through.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	set, rejected := utils.NewAddrSet(allowed)
	for _, s := range rejected {
		log.Warn("ignoring invalid allowed CIDR", logger.String("value", s))
	}
	if set.Len() == 0 {
		log.Debug("operator endpoints open to every client")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !set.Contains(ip) {
				log.Debug("operator endpoint refused",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
