package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kovrae/admingate/session"
)

// TokenResponse is the credential pair minted by the Identity Service.
// Tokens are opaque to this module.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenSource supplies the current bearer token ("" when logged out). The
// client calls it per request so it always sends the live credential.
type TokenSource func() string

// Client is the Identity Service API client.
type Client struct {
	baseURL    string
	token      TokenSource
	httpClient *http.Client
}

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (timeouts, transport,
// proxies all live there).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an Identity Service client. token may be nil for
// anonymous-only use.
func NewClient(baseURL string, token TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a token pair. A 401 surfaces as an
// authentication error per [IsAuthError].
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	var tokens TokenResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &tokens); err != nil {
		return nil, fmt.Errorf("identity.Login: %w", err)
	}
	return &tokens, nil
}

// Me fetches the authenticated profile. Requires a valid bearer token; a
// 401 surfaces as an authentication error per [IsAuthError].
func (c *Client) Me(ctx context.Context) (*session.Profile, error) {
	var profile session.Profile
	if err := c.get(ctx, "/auth/me", &profile); err != nil {
		return nil, fmt.Errorf("identity.Me: %w", err)
	}
	return &profile, nil
}

// Refresh mints a new token pair from a refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var tokens TokenResponse
	if err := c.post(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &tokens); err != nil {
		return nil, fmt.Errorf("identity.Refresh: %w", err)
	}
	return &tokens, nil
}

// Logout notifies the server to invalidate the session. Best-effort by
// contract: callers clear local state regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("identity.Logout: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// readErrorMessage extracts {"detail": "..."} bodies, falling back to the
// raw text, capped so a misbehaving server can't bloat an error value.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &detail); err == nil && detail.Detail != "" {
		return detail.Detail
	}
	return strings.TrimSpace(string(raw))
}
