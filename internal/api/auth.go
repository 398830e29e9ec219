package api

import (
	"context"
	"net/http"
)

type authPayload struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, username, password string) (AuthResult, error) {
	var p authPayload
	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"username": username, "password": password},
	}, &p)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		Tokens: Tokens{Access: p.AccessToken, Refresh: refreshCookie(resp)},
		User:   p.User,
	}, nil
}

// RefreshToken trades the refresh token for a new access token. The refresh
// token is kept unless the backend rotates it.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (AuthResult, error) {
	var p authPayload
	resp, err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    "/auth/token",
		refresh: refresh,
	}, &p)
	if err != nil {
		return AuthResult{}, err
	}

	next := refreshCookie(resp)
	if next == "" {
		next = refresh
	}
	return AuthResult{
		Tokens: Tokens{Access: p.AccessToken, Refresh: next},
		User:   p.User,
	}, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   reg,
	}, nil)
	return err
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/password_resets/send",
		body:   map[string]string{"email": email},
	}, nil)
	return err
}

// DiscordLoginURL is where the browser goes to sign in with Discord.
func (c *Client) DiscordLoginURL() string {
	return c.base.JoinPath("/auth/discord/login").String()
}
