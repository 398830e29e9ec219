package settings

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/astral-cool/astral-web/internal/embed"
	"github.com/astral-cool/astral-web/internal/session"
	"github.com/astral-cool/astral-web/internal/timezones"
)

// Sample is the file shown in the preview when the user has no uploads.
type Sample struct {
	Filename string
	Size     int64
}

// PreviewContext builds the formatter context for st at now. The latest
// upload stands in for the file being shared.
func PreviewContext(st session.State, sample Sample, now time.Time) embed.Context {
	file := sample
	if img, ok := st.LatestImage(); ok && img.Filename != "" {
		file = Sample{Filename: img.Filename, Size: img.Size}
	}

	ctx := embed.Context{
		Size:     humanize.Bytes(uint64(max(file.Size, 0))),
		Username: st.User.Username,
		Filename: file.Filename,
		Uploads:  st.User.Uploads,
		Now:      now,
		Domain:   st.Selection.Effective(),
	}
	if st.PreviewZone != "" {
		if loc, err := timezones.Resolve(st.PreviewZone); err == nil {
			ctx.Location = loc
		}
	}
	return ctx
}

// Preview renders the saved embed draft of st. rnd may be nil.
func Preview(st session.State, sample Sample, now time.Time, rnd embed.IntN) embed.Preview {
	e := st.User.Settings.Embed
	return embed.Render(
		embed.Fields{Author: e.Author, Title: e.Title, Description: e.Description},
		embed.Appearance{Color: e.Color, RandomColor: e.RandomColor},
		PreviewContext(st, sample, now),
		rnd,
	)
}
