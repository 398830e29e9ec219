package deps

import (
	"time"

	"github.com/astral-cool/astral-web/internal/api"
	"github.com/astral-cool/astral-web/internal/embed"
	"github.com/astral-cool/astral-web/internal/httpserver/views"
	"github.com/astral-cool/astral-web/internal/logger"
	"github.com/astral-cool/astral-web/internal/scheduler"
	"github.com/astral-cool/astral-web/internal/session"
	"github.com/astral-cool/astral-web/internal/settings"
	"github.com/astral-cool/astral-web/internal/site"
	redisstore "github.com/astral-cool/astral-web/internal/store/redis"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time            // for testing, defaults to time.Now
	AllowedHosts   []string                    // Host headers allowed to reach the pages
	AllowedCIDRS   []string                    // IPs allowed to reach the probe and operator endpoints
	TrustProxy     bool                        // true if running behind a trusted reverse proxy
	LoginLimit     int                         // auth form burst per client IP
	LoginRefill    int                         // auth form tokens regained per minute
	Site           site.Config                 // branding and preview sample
	Backend        *api.Client                 // Astral API client
	Sessions       *session.Manager            // session state and flash notices
	Dispatcher     *settings.Dispatcher        // settings page intents
	Refresher      *scheduler.SessionRefresher // periodic re-bootstrap of signed-in sessions
	RefreshTrigger chan struct{}               // manual refresh of every tracked session
	RedisStore     *redisstore.Store           // nil when sessions live in memory
	Views          *views.Views                // server-side pages
	Rand           embed.IntN                  // random embed colors, nil for the global source
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}

// Sample is the preview stand-in file from the branding config.
func (d Deps) Sample() settings.Sample {
	return settings.Sample{Filename: d.Site.Sample.Filename, Size: d.Site.Sample.Size}
}
