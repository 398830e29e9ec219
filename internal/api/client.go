// Package api is a thin client for the Astral backend. It performs no
// retries: every call maps to exactly one HTTP request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RefreshCookie is the cookie the backend keeps the refresh token in.
const RefreshCookie = "refreshToken"

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

type Client struct {
	base *url.URL
	http *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: base URL must be http(s), got %q", baseURL)
	}

	c := &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base.String()
}

type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type request struct {
	method  string
	path    string
	query   url.Values
	access  string
	refresh string
	body    any
}

// do sends req and decodes the payload into out (when non-nil). The raw
// response is returned so callers can read cookies.
func (c *Client) do(ctx context.Context, req request, out any) (*http.Response, error) {
	u := c.base.JoinPath(req.path)
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		buf, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("api: encode %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(buf)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.access != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.access)
	}
	if req.refresh != "" {
		httpReq.AddCookie(&http.Cookie{Name: RefreshCookie, Value: req.refresh})
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("api: read %s %s: %w", req.method, req.path, err)
	}

	var env envelope
	_ = json.Unmarshal(data, &env)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok || (env.Success != nil && !*env.Success) {
		return resp, &Error{Status: resp.StatusCode, Message: env.message(resp)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp, fmt.Errorf("api: decode %s %s: %w", req.method, req.path, err)
		}
	}
	return resp, nil
}

func (e envelope) message(resp *http.Response) string {
	switch {
	case e.Error != "":
		return e.Error
	case e.Message != "":
		return e.Message
	default:
		return http.StatusText(resp.StatusCode)
	}
}

func refreshCookie(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == RefreshCookie {
			return ck.Value
		}
	}
	return ""
}
