// Package monetr provides a client for the monetr REST API.
package monetr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/monetr-client/internal/common"
)

const (
	// TokenHeader carries the session token on authenticated requests.
	TokenHeader = "H-Token"
	// TokenCookie is the cookie holding the session token for cookie based session resume.
	TokenCookie = "M-Token"
	// RequestIDHeader correlates a request with client logs.
	RequestIDHeader = "X-Request-Id"

	defaultTimeout = 30 * time.Second
)

// Config holds monetr API configuration.
type Config struct {
	BaseURL      string
	CookieDomain string
	Timeout      time.Duration
	CookieSecure bool
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: monetr API URL is required", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: invalid monetr API URL: %v", common.ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: monetr API URL must be http or https, got %q", common.ErrInvalidConfig, c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: monetr API URL has no host", common.ErrInvalidConfig)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}

// Client talks to the monetr API. It is safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	jar          http.CookieJar
	baseURL      *url.URL
	logger       *slog.Logger
	cookieDomain string
	token        string
	mu           sync.RWMutex
	cookieSecure bool
}

// NewClient creates a new monetr client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse monetr API URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		jar:          jar,
		baseURL:      baseURL,
		cookieDomain: cfg.CookieDomain,
		cookieSecure: cfg.CookieSecure,
		logger:       slog.Default().With("component", "monetr"),
	}, nil
}

// SetToken sets the session token sent with every request, both as a header and as a cookie.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.jar.SetCookies(c.baseURL, []*http.Cookie{c.SessionCookie(token)})
}

// ClearToken forgets the session token and expires the token cookie.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	expired := c.SessionCookie("")
	expired.MaxAge = -1
	c.jar.SetCookies(c.baseURL, []*http.Cookie{expired})
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// CookieToken returns the session token held by the cookie jar, if any.
func (c *Client) CookieToken() string {
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		if cookie.Name == TokenCookie {
			return cookie.Value
		}
	}
	return ""
}

// SessionCookie builds the token cookie for this client's API host.
func (c *Client) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   c.cookieDomain,
		Secure:   c.cookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// do performs a JSON request. A nil body sends no payload, a nil out discards the response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(TokenHeader, token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", common.ErrAPIConnection, ctxErr)
		}
		return fmt.Errorf("%w: %w", common.ErrAPIConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("monetr API request",
		"method", method,
		"path", u.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp, requestID)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
