// Package session keeps the signed-in user's snapshot between requests.
//
// State is a value: every update returns a new State and leaves the
// receiver untouched, so a handler can hold the previous snapshot while a
// backend call is in flight and fall back to it on failure.
package session

import (
	"slices"
	"time"

	"github.com/astral-cool/astral-web/internal/api"
	"github.com/astral-cool/astral-web/internal/embed"
)

type State struct {
	User        api.User
	Tokens      api.Tokens
	Domains     []api.Domain
	Images      []api.Image
	StorageUsed int64
	Invites     []api.Invite
	URLs        []api.ShortenedURL

	// Selection is the domain picked on the settings page, saved or not.
	Selection DomainSelection
	// PreviewZone renders {date}, {time} and {timestamp} in the preview.
	// Empty means the server zone.
	PreviewZone string

	FetchedAt time.Time
}

type DomainSelection struct {
	Name      string
	Wildcard  bool
	Subdomain string
}

// Effective is the host the selection resolves to.
func (d DomainSelection) Effective() string {
	return embed.EffectiveDomain(d.Name, d.Wildcard, d.Subdomain)
}

// SignedIn reports whether s belongs to an authenticated user.
func (s State) SignedIn() bool {
	return s.Tokens.Access != "" && s.User.Username != ""
}

// Domain looks up name in the domain listing.
func (s State) Domain(name string) (api.Domain, bool) {
	for _, d := range s.Domains {
		if d.Name == name {
			return d, true
		}
	}
	return api.Domain{}, false
}

// LatestImage returns the most recent upload, if any. The backend lists
// newest first.
func (s State) LatestImage() (api.Image, bool) {
	if len(s.Images) == 0 {
		return api.Image{}, false
	}
	return s.Images[0], true
}

// Clone deep-copies every slice so the copy can be changed freely.
func (s State) Clone() State {
	s.User.Settings.RandomDomain.Domains = slices.Clone(s.User.Settings.RandomDomain.Domains)
	s.Domains = slices.Clone(s.Domains)
	s.Images = slices.Clone(s.Images)
	s.Invites = slices.Clone(s.Invites)
	s.URLs = slices.Clone(s.URLs)
	return s
}

func (s State) WithSettings(settings api.Settings) State {
	next := s.Clone()
	settings.RandomDomain.Domains = slices.Clone(settings.RandomDomain.Domains)
	next.User.Settings = settings
	return next
}

func (s State) WithSelection(sel DomainSelection) State {
	next := s.Clone()
	next.Selection = sel
	return next
}

func (s State) WithPreviewZone(zone string) State {
	next := s.Clone()
	next.PreviewZone = zone
	return next
}

func (s State) WithTokens(t api.Tokens) State {
	next := s.Clone()
	next.Tokens = t
	return next
}

// Rebase carries the page-owned parts of s (settings, domain selection,
// preview zone) over to fresh, a newer snapshot from a background refresh.
func (s State) Rebase(fresh State) State {
	next := fresh.WithSettings(s.User.Settings)
	next.Selection = s.Selection
	next.PreviewZone = s.PreviewZone
	return next
}

// InitialSelection picks the saved domain when the listing still has it,
// otherwise fallback. The saved subdomain is kept either way.
func InitialSelection(user api.User, domains []api.Domain, fallback string) DomainSelection {
	saved := user.Settings.Domain
	sel := DomainSelection{Name: fallback, Subdomain: saved.Subdomain}
	for _, d := range domains {
		if d.Name == saved.Name {
			sel.Name = d.Name
			sel.Wildcard = d.Wildcard
			break
		}
	}
	return sel
}
