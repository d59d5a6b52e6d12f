package xray

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/probatio/internal/common"
	"github.com/ternarybob/probatio/internal/interfaces"
	"github.com/ternarybob/probatio/internal/models"
)

const (
	graphqlPath = "/api/v2/graphql"

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5
)

// Client executes queries and mutations against the Xray GraphQL endpoint
// with bearer authentication from a TokenSource and a fixed 10s deadline
// per call, independent of the authentication deadline.
type Client struct {
	baseURL    string
	tokens     interfaces.TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new Xray GraphQL client.
func NewClient(baseURL string, tokens interfaces.TokenSource, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     arbor.NewLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Execute runs a GraphQL document with the given variables. The parsed
// body is returned even when it carries a top-level errors array; callers
// inspect Errors explicitly since partial data may co-exist with them.
func (c *Client) Execute(ctx context.Context, document string, variables map[string]any) (*models.GraphQLResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(graphqlRequest{Query: document, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, common.GraphQLTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+graphqlPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &models.TimeoutError{Service: "xray", Operation: "graphql", Deadline: common.GraphQLTimeout}
		}
		return nil, fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read graphql response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &models.RejectionError{
			Service:    "xray",
			Operation:  "graphql",
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
	}

	var parsed models.GraphQLResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse graphql response: %w", err)
	}

	if parsed.HasErrors() {
		c.logger.Debug().Int("errors", len(parsed.Errors)).Msg("GraphQL response carries errors array")
	}

	return &parsed, nil
}
