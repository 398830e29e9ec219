package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/astral-cool/astral-web/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	Service       string  `json:"service"`
	Build         string  `json:"build"`
	GoVersion     string  `json:"go_version,omitempty"`
	StartedAt     string  `json:"started_at"`
	Started       string  `json:"started"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Healthz reports liveness. It never calls the backend or the session store.
func Healthz(d deps.Deps) http.HandlerFunc {
	build := d.Version
	if d.Commit != "" {
		build = d.Version + "+" + d.Commit
	}
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(healthzResponse{
			Status:        "ok",
			Service:       "astral-web",
			GoVersion:     d.GoVersion,
			Build:         build,
			StartedAt:     d.StartTime.UTC().Format(time.RFC3339),
			Started:       humanize.RelTime(d.StartTime, now, "ago", "from now"),
			UptimeSeconds: now.Sub(d.StartTime).Seconds(),
		})
	}
}
