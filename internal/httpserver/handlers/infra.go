package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/astral-cool/astral-web/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Mode    string `json:"mode,omitempty"`
	Target  string `json:"target,omitempty"`
	Tracked *int   `json:"tracked,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the session store and the refresher for
// operators.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		components := map[string]componentStatus{
			"backend":   {OK: true, Target: d.Backend.BaseURL()},
			"sessions":  checkSessionStore(ctx, d),
			"refresher": checkRefresher(ctx, d),
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func overallStatus(components map[string]componentStatus) string {
	if s, ok := components["sessions"]; ok && !s.OK {
		return "critical" // nobody can sign in
	}
	if s, ok := components["refresher"]; ok && !s.OK {
		return "degraded" // sessions go stale until the next login
	}
	return "ok"
}

func checkSessionStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisStore == nil {
		return componentStatus{OK: true, Mode: "memory", Impact: "sessions-lost-on-restart"}
	}
	if err := d.RedisStore.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: "redis", Error: "unreachable"}
	}
	return componentStatus{OK: true, Mode: "redis"}
}

func checkRefresher(ctx context.Context, d deps.Deps) componentStatus {
	n, err := d.Refresher.Tracked(ctx)
	if err != nil {
		return componentStatus{OK: false, Error: "queue unavailable"}
	}
	return componentStatus{OK: true, Tracked: &n}
}
