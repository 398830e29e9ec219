// Package embed renders Discord embed templates the way the settings page
// previews them.
//
// A template mixes literal text with placeholder tokens. Simple tokens
// ({size}, {username}, {filename}, {uploads}, {date}, {time}, {timestamp},
// {domain}) are replaced once each, in that order. Zone tokens
// ({time:ZONE}, {timestamp:ZONE}) are then rendered left to right until one
// names a zone that cannot be resolved.
package embed

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/astral-cool/astral-web/internal/timezones"
)

// en-US renderings of the current instant.
const (
	DateLayout      = "1/2/2006"
	TimeLayout      = "3:04:05 PM"
	TimestampLayout = "1/2/2006, 3:04:05 PM"
)

// Context is the snapshot a template is rendered against.
type Context struct {
	Size     string
	Username string
	Filename string
	Uploads  int
	Now      time.Time
	// Location renders {date}, {time} and {timestamp}. Nil means time.Local.
	Location *time.Location
	Domain   string
}

var zoneToken = regexp.MustCompile(`(?i)\{(time|timestamp):([^}]+)\}`)

// Format substitutes every placeholder of template using ctx. It never fails:
// an unresolvable zone token is left verbatim together with every zone token
// after it.
func Format(template string, ctx Context) string {
	now := ctx.local()

	out := template
	for _, r := range []struct{ token, value string }{
		{"{size}", ctx.Size},
		{"{username}", ctx.Username},
		{"{filename}", ctx.Filename},
		{"{uploads}", strconv.Itoa(ctx.Uploads)},
		{"{date}", now.Format(DateLayout)},
		{"{time}", now.Format(TimeLayout)},
		{"{timestamp}", now.Format(TimestampLayout)},
		{"{domain}", ctx.Domain},
	} {
		out = strings.Replace(out, r.token, r.value, 1)
	}

	return formatZones(out, ctx.Now)
}

func formatZones(s string, now time.Time) string {
	for {
		m := zoneToken.FindStringSubmatchIndex(s)
		if m == nil {
			return s
		}
		name, zone := s[m[2]:m[3]], s[m[4]:m[5]]

		loc, err := timezones.Resolve(zone)
		if err != nil {
			return s
		}

		// The name matches in any case but only lowercase "time" renders
		// time alone.
		layout := TimestampLayout
		if name == "time" {
			layout = TimeLayout
		}
		s = s[:m[0]] + now.In(loc).Format(layout) + s[m[1]:]
	}
}

func (c Context) local() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return c.Now.In(loc)
}

// Timestamp renders the context instant with the {timestamp} layout.
func (c Context) Timestamp() string {
	return c.local().Format(TimestampLayout)
}
