package session

import (
	"context"
	"fmt"
	"time"

	"github.com/astral-cool/astral-web/internal/api"
)

// Backend is the part of the API client a snapshot is built from.
type Backend interface {
	RefreshToken(ctx context.Context, refresh string) (api.AuthResult, error)
	Images(ctx context.Context, access string) (api.ImagesResult, error)
	Invites(ctx context.Context, access string) ([]api.Invite, error)
	Domains(ctx context.Context, access string) ([]api.Domain, error)
	ShortenedURLs(ctx context.Context, access string) ([]api.ShortenedURL, error)
}

// Bootstrap refreshes the access token and loads a fresh snapshot.
func Bootstrap(ctx context.Context, b Backend, refresh, fallbackDomain string) (State, error) {
	auth, err := b.RefreshToken(ctx, refresh)
	if err != nil {
		return State{}, fmt.Errorf("refresh token: %w", err)
	}
	return Load(ctx, b, auth, fallbackDomain)
}

// Load fetches images, invites, domains and shortened URLs for an
// authenticated user, in that order, stopping at the first failure.
func Load(ctx context.Context, b Backend, auth api.AuthResult, fallbackDomain string) (State, error) {
	access := auth.Tokens.Access

	imgs, err := b.Images(ctx, access)
	if err != nil {
		return State{}, fmt.Errorf("images: %w", err)
	}
	invites, err := b.Invites(ctx, access)
	if err != nil {
		return State{}, fmt.Errorf("invites: %w", err)
	}
	domains, err := b.Domains(ctx, access)
	if err != nil {
		return State{}, fmt.Errorf("domains: %w", err)
	}
	urls, err := b.ShortenedURLs(ctx, access)
	if err != nil {
		return State{}, fmt.Errorf("shortened urls: %w", err)
	}

	return State{
		User:        auth.User,
		Tokens:      auth.Tokens,
		Domains:     domains,
		Images:      imgs.Images,
		StorageUsed: imgs.StorageUsed,
		Invites:     invites,
		URLs:        urls,
		Selection:   InitialSelection(auth.User, domains, fallbackDomain),
		FetchedAt:   time.Now(),
	}, nil
}

// Reload re-bootstraps prev. The page-local picks (domain selection and
// preview zone) survive when still valid.
func Reload(ctx context.Context, b Backend, prev State, fallbackDomain string) (State, error) {
	next, err := Bootstrap(ctx, b, prev.Tokens.Refresh, fallbackDomain)
	if err != nil {
		return State{}, err
	}
	if d, ok := next.Domain(prev.Selection.Name); ok {
		next.Selection = DomainSelection{Name: d.Name, Wildcard: d.Wildcard, Subdomain: prev.Selection.Subdomain}
	}
	next.PreviewZone = prev.PreviewZone
	return next, nil
}
