package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/models"
)

// LookupService resolves human-facing issue keys and browse URLs against
// the Jira REST API.
type LookupService struct {
	client *Client
	logger arbor.ILogger
}

// NewLookupService creates a lookup service.
func NewLookupService(client *Client, logger arbor.ILogger) *LookupService {
	return &LookupService{
		client: client,
		logger: logger,
	}
}

// SplitBrowseURL splits a Jira browse URL into base URL and issue key.
// Inputs without a /browse/ segment are returned unchanged as the key with
// an empty base URL.
func SplitBrowseURL(issueKeyOrURL string) (baseURL, key string) {
	const marker = "/browse/"

	idx := strings.Index(issueKeyOrURL, marker)
	if idx < 0 {
		return "", strings.TrimSpace(issueKeyOrURL)
	}

	baseURL = issueKeyOrURL[:idx]
	key = issueKeyOrURL[idx+len(marker):]

	// Drop anything after the key: trailing path, query, fragment.
	if cut := strings.IndexAny(key, "/?#"); cut >= 0 {
		key = key[:cut]
	}

	return baseURL, strings.TrimSpace(key)
}

// Resolve turns an issue key or browse URL into the tracker's numeric
// identifier and base URL. The base URL is taken from the supplied URL
// when one was given, otherwise from the configured Jira base URL.
func (s *LookupService) Resolve(ctx context.Context, issueKeyOrURL string) (models.ResolvedIssue, error) {
	if strings.TrimSpace(issueKeyOrURL) == "" {
		return models.ResolvedIssue{}, &models.ValidationError{Field: "issue", Reason: "is required"}
	}

	baseURL, key := SplitBrowseURL(issueKeyOrURL)
	if baseURL == "" {
		baseURL = s.client.BaseURL()
	}

	var payload struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	if err := s.client.Get(ctx, "/rest/api/2/issue/"+url.PathEscape(key)+"?fields=id", &payload); err != nil {
		var rejection *models.RejectionError
		if errors.As(err, &rejection) {
			return models.ResolvedIssue{}, &models.LookupError{Key: key, StatusCode: rejection.StatusCode, Body: rejection.Body}
		}
		return models.ResolvedIssue{}, fmt.Errorf("failed to resolve issue %q: %w", key, err)
	}

	resolvedKey := payload.Key
	if resolvedKey == "" {
		resolvedKey = key
	}

	return models.ResolvedIssue{
		NumericID: payload.ID,
		Key:       resolvedKey,
		BaseURL:   strings.TrimRight(baseURL, "/"),
	}, nil
}

// FetchIssue loads an issue's summary, status, and flattened description
// for use as synthesis input. Descriptions arrive either as plain text
// (API v2) or as an ADF document; both are flattened to plain text.
func (s *LookupService) FetchIssue(ctx context.Context, issueKey string) (*models.FetchedIssue, error) {
	if strings.TrimSpace(issueKey) == "" {
		return nil, &models.ValidationError{Field: "issueKey", Reason: "is required"}
	}

	_, key := SplitBrowseURL(issueKey)

	var payload struct {
		Key    string `json:"key"`
		Fields struct {
			Summary     string          `json:"summary"`
			Description json.RawMessage `json:"description"`
			Status      struct {
				Name string `json:"name"`
			} `json:"status"`
			IssueType struct {
				Name string `json:"name"`
			} `json:"issuetype"`
		} `json:"fields"`
	}
	path := "/rest/api/2/issue/" + url.PathEscape(key) + "?fields=summary,description,status,issuetype"
	if err := s.client.Get(ctx, path, &payload); err != nil {
		var rejection *models.RejectionError
		if errors.As(err, &rejection) {
			return nil, &models.LookupError{Key: key, StatusCode: rejection.StatusCode, Body: rejection.Body}
		}
		return nil, fmt.Errorf("failed to fetch issue %q: %w", key, err)
	}

	return &models.FetchedIssue{
		Key:         payload.Key,
		Summary:     payload.Fields.Summary,
		Description: FlattenDescription(payload.Fields.Description),
		Status:      payload.Fields.Status.Name,
		IssueType:   payload.Fields.IssueType.Name,
	}, nil
}
