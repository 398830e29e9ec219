package api

import (
	"context"
	"net/http"
)

// UpdateSettings sends a partial settings document, e.g. {"longUrl": true}.
func (c *Client) UpdateSettings(ctx context.Context, access string, patch map[string]bool) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/users/@me/settings",
		access: access,
		body:   patch,
	}, nil)
	return err
}

func (c *Client) UpdateEmbed(ctx context.Context, access string, upd EmbedUpdate) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/users/@me/settings/embed",
		access: access,
		body:   upd,
	}, nil)
	return err
}

func (c *Client) SaveDomain(ctx context.Context, access string, upd DomainUpdate) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/users/@me/settings/domain",
		access: access,
		body:   upd,
	}, nil)
	return err
}

// SetWipeInterval stores the auto-wipe interval in milliseconds.
func (c *Client) SetWipeInterval(ctx context.Context, access string, ms int64) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/users/@me/settings/wipe_interval",
		access: access,
		body:   map[string]int64{"value": ms},
	}, nil)
	return err
}
