// Package settings turns settings-page actions into backend calls.
//
// Every page action is an Intent. Dispatch maps it to at most one API call
// and returns the next session.State plus the notice to show. Intents that
// only change page-local state (domain picker, embed editor, preview zone)
// never reach the backend.
package settings

import (
	"fmt"
	"time"
)

type Intent interface {
	intent()
}

// Toggle flips one of the boolean settings.
type Toggle struct {
	Flag    Flag
	Enabled bool
}

// EditEmbed replaces the embed draft. Fields over their length limit are
// left as they were.
type EditEmbed struct {
	Color       string
	Title       string
	Description string
	Author      string
	RandomColor bool
}

// SaveEmbed persists the embed draft.
type SaveEmbed struct{}

// SelectDomain picks a domain from the listing.
type SelectDomain struct {
	Name string
}

// SetSubdomain edits the subdomain of the selection.
type SetSubdomain struct {
	Value string
}

// SaveDomain persists the selection.
type SaveDomain struct{}

// SetWipeInterval persists one of the WipePresets.
type SetWipeInterval struct {
	Interval time.Duration
}

// SetPreviewZone changes the zone the preview renders local times in.
// Empty restores the server zone.
type SetPreviewZone struct {
	Zone string
}

func (Toggle) intent()          {}
func (EditEmbed) intent()       {}
func (SaveEmbed) intent()       {}
func (SelectDomain) intent()    {}
func (SetSubdomain) intent()    {}
func (SaveDomain) intent()      {}
func (SetWipeInterval) intent() {}
func (SetPreviewZone) intent()  {}

type Flag string

const (
	FlagLongURL      Flag = "longUrl"
	FlagShowLink     Flag = "showLink"
	FlagInvisibleURL Flag = "invisibleUrl"
	FlagEmbeds       Flag = "embeds"
	FlagAutoWipe     Flag = "autoWipe"
	FlagRandomDomain Flag = "randomDomain"
)

// Flags in page order.
var Flags = []Flag{FlagLongURL, FlagShowLink, FlagInvisibleURL, FlagEmbeds, FlagAutoWipe, FlagRandomDomain}

func ParseFlag(s string) (Flag, error) {
	for _, f := range Flags {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown setting %q", s)
}

// WipePreset is an auto-wipe interval offered to the user.
type WipePreset struct {
	Label    string
	Interval time.Duration
}

// Millis is the interval as the backend stores it.
func (p WipePreset) Millis() int64 {
	return p.Interval.Milliseconds()
}

const week = 7 * 24 * time.Hour

var WipePresets = []WipePreset{
	{"1 Hour", time.Hour},
	{"2 Hours", 2 * time.Hour},
	{"12 Hours", 12 * time.Hour},
	{"24 Hours", 24 * time.Hour},
	{"1 Week", week},
	{"2 Weeks", 2 * week},
	{"1 Month", 4 * week},
}

// PresetFor finds the preset with interval d.
func PresetFor(d time.Duration) (WipePreset, bool) {
	for _, p := range WipePresets {
		if p.Interval == d {
			return p, true
		}
	}
	return WipePreset{}, false
}
