package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/astral-cool/astral-web/internal/api"
	"github.com/astral-cool/astral-web/internal/embed"
	"github.com/astral-cool/astral-web/internal/httpserver/deps"
	"github.com/astral-cool/astral-web/internal/logger"
	"github.com/astral-cool/astral-web/internal/notice"
	"github.com/astral-cool/astral-web/internal/session"
	"github.com/astral-cool/astral-web/internal/settings"
	"github.com/astral-cool/astral-web/internal/timezones"
)

const (
	TabGeneral = "general"
	TabEmbeds  = "embeds"
	TabDomains = "domains"
)

var flagLabels = map[settings.Flag]string{
	settings.FlagLongURL:      "Long URLs",
	settings.FlagShowLink:     "Show link",
	settings.FlagInvisibleURL: "Invisible URLs",
	settings.FlagEmbeds:       "Embeds",
	settings.FlagAutoWipe:     "Auto-wipe",
	settings.FlagRandomDomain: "Random domain",
}

type toggleRow struct {
	Flag    settings.Flag
	Label   string
	Enabled bool
}

type wipeRow struct {
	Label    string
	Millis   int64
	Selected bool
}

type settingsPage struct {
	Tab       string
	Toggles   []toggleRow
	Wipe      []wipeRow
	Embed     api.EmbedSettings
	Preview   embed.Preview
	Tokens    []string
	Domains   []api.Domain
	Selection session.DomainSelection
	Effective string
	Zone      string
	Zones     []string
}

func settingsTab(v string) string {
	switch v {
	case TabEmbeds, TabDomains:
		return v
	default:
		return TabGeneral
	}
}

func flagEnabled(s api.Settings, f settings.Flag) bool {
	switch f {
	case settings.FlagLongURL:
		return s.LongURL
	case settings.FlagShowLink:
		return s.ShowLink
	case settings.FlagInvisibleURL:
		return s.InvisibleURL
	case settings.FlagEmbeds:
		return s.Embed.Enabled
	case settings.FlagAutoWipe:
		return s.AutoWipe.Enabled
	case settings.FlagRandomDomain:
		return s.RandomDomain.Enabled
	}
	return false
}

func Settings(d deps.Deps) http.HandlerFunc {
	zones, err := timezones.DefaultZones()
	if err != nil {
		d.Logger.Warn("zone list unavailable, preview zone picker disabled", logger.Error(err))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := d.Sessions.Get(r.Context())
		if !ok {
			RequireLogin(w, r)
			return
		}
		s := st.User.Settings

		toggles := make([]toggleRow, 0, len(settings.Flags))
		for _, f := range settings.Flags {
			toggles = append(toggles, toggleRow{Flag: f, Label: flagLabels[f], Enabled: flagEnabled(s, f)})
		}
		wipe := make([]wipeRow, 0, len(settings.WipePresets))
		for _, p := range settings.WipePresets {
			wipe = append(wipe, wipeRow{Label: p.Label, Millis: p.Millis(), Selected: p.Millis() == s.AutoWipe.Interval})
		}

		render(d, w, r, "settings", "Settings", settingsPage{
			Tab:       settingsTab(r.URL.Query().Get("tab")),
			Toggles:   toggles,
			Wipe:      wipe,
			Embed:     s.Embed,
			Preview:   settings.Preview(st, d.Sample(), d.Now(), d.Rand),
			Tokens:    embed.Tokens,
			Domains:   st.Domains,
			Selection: st.Selection,
			Effective: st.Selection.Effective(),
			Zone:      st.PreviewZone,
			Zones:     zones,
		})
	}
}

// apply runs intents in order, stopping at the first failure, and keeps
// the resulting state. An error notice is never hidden by a later success.
func apply(d deps.Deps, w http.ResponseWriter, r *http.Request, tab string, intents ...settings.Intent) {
	ctx := r.Context()
	st, ok := d.Sessions.Get(ctx)
	if !ok {
		RequireLogin(w, r)
		return
	}

	var shown notice.Notice
	for _, in := range intents {
		next, n, err := d.Dispatcher.Dispatch(ctx, st, in)
		if !n.Zero() && (shown.Zero() || shown.Kind != notice.KindError) {
			shown = n
		}
		if err != nil {
			if apiErr, ok := api.AsError(err); ok && apiErr.Unauthorized() {
				expire(d, w, r)
				return
			}
			logFor(d, r).Debug("settings action stopped",
				logger.String("user", st.User.Username),
				logger.Error(err))
			break
		}
		st = next
	}

	d.Sessions.Save(ctx, st)
	back(d, w, r, "/settings?tab="+url.QueryEscape(tab), shown)
}

// expire drops a session the backend no longer accepts.
func expire(d deps.Deps, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if token := d.Sessions.Token(ctx); token != "" {
		_ = d.Refresher.Untrack(ctx, token)
	}
	if err := d.Sessions.Destroy(ctx); err != nil {
		logFor(d, r).Error("failed to destroy session", logger.Error(err))
	}
	back(d, w, r, "/", notice.Failure("Your session has expired, please log in again."))
}

func parsed(d deps.Deps, w http.ResponseWriter, r *http.Request, tab string) bool {
	if err := r.ParseForm(); err != nil {
		back(d, w, r, "/settings?tab="+tab, notice.Failure("Invalid form submission."))
		return false
	}
	return true
}

func checked(v url.Values, key string) bool {
	switch v.Get(key) {
	case "on", "true", "1":
		return true
	}
	return false
}

// Toggle flips one boolean setting: flag=<name>&enabled=true|false.
func Toggle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parsed(d, w, r, TabGeneral) {
			return
		}
		flag, err := settings.ParseFlag(r.PostForm.Get("flag"))
		if err != nil {
			back(d, w, r, "/settings?tab="+TabGeneral, notice.Failure("Unknown setting"))
			return
		}
		apply(d, w, r, TabGeneral, settings.Toggle{Flag: flag, Enabled: checked(r.PostForm, "enabled")})
	}
}

// Embed edits the embed draft and saves it unless action=preview.
func Embed(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parsed(d, w, r, TabEmbeds) {
			return
		}
		v := r.PostForm
		intents := []settings.Intent{settings.EditEmbed{
			Color:       v.Get("color"),
			Title:       v.Get("title"),
			Description: v.Get("description"),
			Author:      v.Get("author"),
			RandomColor: checked(v, "randomColor"),
		}}
		if v.Get("action") != "preview" {
			intents = append(intents, settings.SaveEmbed{})
		}
		apply(d, w, r, TabEmbeds, intents...)
	}
}

// Domain selects a domain and, unless action=select, saves it with the
// posted subdomain.
func Domain(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parsed(d, w, r, TabDomains) {
			return
		}
		v := r.PostForm
		intents := []settings.Intent{settings.SelectDomain{Name: v.Get("domain")}}
		if v.Get("action") != "select" {
			if v.Has("subdomain") {
				intents = append(intents, settings.SetSubdomain{Value: v.Get("subdomain")})
			}
			intents = append(intents, settings.SaveDomain{})
		}
		apply(d, w, r, TabDomains, intents...)
	}
}

// Wipe saves the auto-wipe interval, posted in milliseconds.
func Wipe(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parsed(d, w, r, TabGeneral) {
			return
		}
		ms, err := strconv.ParseInt(r.PostForm.Get("interval"), 10, 64)
		if err != nil {
			back(d, w, r, "/settings?tab="+TabGeneral, notice.Failure("Invalid auto-wipe interval"))
			return
		}
		apply(d, w, r, TabGeneral, settings.SetWipeInterval{Interval: time.Duration(ms) * time.Millisecond})
	}
}

// Zone picks the zone the embed preview renders times in.
func Zone(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !parsed(d, w, r, TabEmbeds) {
			return
		}
		apply(d, w, r, TabEmbeds, settings.SetPreviewZone{Zone: r.PostForm.Get("zone")})
	}
}

// UploaderConfig sends the browser to the backend's config download for the
// user's upload key.
func UploaderConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := d.Sessions.Get(r.Context())
		if !ok {
			RequireLogin(w, r)
			return
		}
		http.Redirect(w, r, d.Backend.ConfigURL(st.User.Key), http.StatusFound)
	}
}
