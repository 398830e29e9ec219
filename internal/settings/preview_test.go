package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/astral-cool/astral-web/internal/api"
)

var sample = Sample{Filename: "ccb834e0.png", Size: 10_030_000}

func TestPreviewContextUsesSample(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	st := baseState().WithPreviewZone("UTC")

	ctx := PreviewContext(st, sample, now)
	assert.Equal(t, "ccb834e0.png", ctx.Filename)
	assert.Equal(t, "10 MB", ctx.Size)
	assert.Equal(t, "ann", ctx.Username)
	assert.Equal(t, 12, ctx.Uploads)
	assert.Equal(t, "ann.astral.cool", ctx.Domain)
	assert.Equal(t, time.UTC, ctx.Location)
}

func TestPreviewContextUsesLatestUpload(t *testing.T) {
	st := baseState()
	st.Images = []api.Image{{Filename: "latest.gif", Size: 2048}, {Filename: "older.png"}}

	ctx := PreviewContext(st, sample, time.Now())
	assert.Equal(t, "latest.gif", ctx.Filename)
	assert.Equal(t, "2.0 kB", ctx.Size)
	assert.Nil(t, ctx.Location, "no preview zone means server zone")
}

func TestPreview(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	st := baseState().WithPreviewZone("UTC")
	s := st.User.Settings
	s.Embed = api.EmbedSettings{Color: "#222222", Title: "default", Description: "{time:Asia/Tokyo} on {domain}", Author: "default"}
	st = st.WithSettings(s)

	p := Preview(st, sample, now, nil)
	assert.Equal(t, "ann", p.Author)
	assert.Equal(t, "ccb834e0.png", p.Title)
	assert.Equal(t, "11:07:09 PM on ann.astral.cool", p.Description)
	assert.Equal(t, "#222222", p.Color)
}
