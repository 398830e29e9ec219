package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Images(ctx context.Context, access string) (ImagesResult, error) {
	var out ImagesResult
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/users/@me/images", access: access}, &out)
	return out, err
}

func (c *Client) Invites(ctx context.Context, access string) ([]Invite, error) {
	var out struct {
		Invites []Invite `json:"invites"`
	}
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/users/@me/invites", access: access}, &out)
	return out.Invites, err
}

func (c *Client) Domains(ctx context.Context, access string) ([]Domain, error) {
	var out struct {
		Domains []Domain `json:"domains"`
	}
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/domains", access: access}, &out)
	return out.Domains, err
}

func (c *Client) ShortenedURLs(ctx context.Context, access string) ([]ShortenedURL, error) {
	var out struct {
		URLs []ShortenedURL `json:"urls"`
	}
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/users/@me/urls", access: access}, &out)
	return out.URLs, err
}

// ConfigURL is the download link of the uploader config for an upload key.
// The browser fetches it directly.
func (c *Client) ConfigURL(key string) string {
	u := c.base.JoinPath("/files/config")
	u.RawQuery = url.Values{"key": {key}}.Encode()
	return u.String()
}
