// Package xray provides a client for the Xray test-management GraphQL API.
package xray

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/common"
	"github.com/ternarybob/probatio/internal/models"
)

const authenticatePath = "/api/v2/authenticate"

// TokenCache holds the process-wide Xray bearer credential and refreshes
// it on demand. Access is serialized so concurrent callers racing past an
// expired token trigger exactly one authentication exchange.
type TokenCache struct {
	mu           sync.Mutex
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	logger       arbor.ILogger
	now          func() time.Time

	token     string
	expiresAt time.Time
}

// TokenCacheOption configures the TokenCache.
type TokenCacheOption func(*TokenCache)

// WithAuthHTTPClient sets a custom HTTP client for the exchange.
func WithAuthHTTPClient(httpClient *http.Client) TokenCacheOption {
	return func(c *TokenCache) {
		c.httpClient = httpClient
	}
}

// WithAuthLogger sets a logger.
func WithAuthLogger(logger arbor.ILogger) TokenCacheOption {
	return func(c *TokenCache) {
		c.logger = logger
	}
}

// WithClock sets the clock used for expiry decisions.
func WithClock(now func() time.Time) TokenCacheOption {
	return func(c *TokenCache) {
		c.now = now
	}
}

// NewTokenCache creates a token cache for the given Xray credentials.
func NewTokenCache(baseURL, clientID, clientSecret string, opts ...TokenCacheOption) *TokenCache {
	c := &TokenCache{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{},
		logger:       arbor.NewLogger(),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Token returns the cached credential when it is still inside its validity
// window, otherwise performs the authentication exchange. A token is never
// partially reused: once expired it is discarded and re-fetched.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	c.token = ""

	token, err := c.authenticate(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	c.expiresAt = c.now().Add(common.TokenValidity)
	c.logger.Debug().Str("expires_at", c.expiresAt.Format(time.RFC3339)).Msg("Obtained Xray token")

	return token, nil
}

// Invalidate discards the cached credential so the next Token call
// re-authenticates.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.expiresAt = time.Time{}
}

// authenticate performs the credential exchange. The endpoint returns the
// token as a quoted string literal; the quotes are stripped here.
func (c *TokenCache) authenticate(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, common.AuthTimeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authenticatePath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", &models.TimeoutError{Service: "xray", Operation: "authenticate", Deadline: common.AuthTimeout}
		}
		return "", fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &models.AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	token := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if token == "" {
		return "", &models.AuthError{StatusCode: resp.StatusCode, Body: "empty token in response"}
	}

	return token, nil
}

// isTimeout reports whether a transport error was caused by a deadline.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
