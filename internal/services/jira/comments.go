package jira

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/models"
)

// CommentService reads and writes issue comments.
type CommentService struct {
	client *Client
	logger arbor.ILogger
}

// NewCommentService creates a comment service.
func NewCommentService(client *Client, logger arbor.ILogger) *CommentService {
	return &CommentService{
		client: client,
		logger: logger,
	}
}

// AddComment posts a plain-text comment on an issue.
func (s *CommentService) AddComment(ctx context.Context, issueKey, body string) (*models.IssueComment, error) {
	if strings.TrimSpace(issueKey) == "" {
		return nil, &models.ValidationError{Field: "issueKey", Reason: "is required"}
	}
	if strings.TrimSpace(body) == "" {
		return nil, &models.ValidationError{Field: "body", Reason: "is required"}
	}

	var created struct {
		ID     string `json:"id"`
		Body   string `json:"body"`
		Author struct {
			DisplayName string `json:"displayName"`
		} `json:"author"`
		Created string `json:"created"`
	}
	path := "/rest/api/2/issue/" + url.PathEscape(issueKey) + "/comment"
	if err := s.client.Post(ctx, path, map[string]string{"body": body}, &created); err != nil {
		return nil, err
	}

	return &models.IssueComment{
		ID:      created.ID,
		Author:  created.Author.DisplayName,
		Body:    created.Body,
		Created: created.Created,
	}, nil
}

// ListComments returns the comments on an issue. Rendered HTML bodies are
// converted to markdown when the server provides them; otherwise the raw
// body is flattened like a description field.
func (s *CommentService) ListComments(ctx context.Context, issueKey string) ([]models.IssueComment, error) {
	if strings.TrimSpace(issueKey) == "" {
		return nil, &models.ValidationError{Field: "issueKey", Reason: "is required"}
	}

	var payload struct {
		Comments []struct {
			ID     string `json:"id"`
			Author struct {
				DisplayName string `json:"displayName"`
			} `json:"author"`
			Body         json.RawMessage `json:"body"`
			RenderedBody string          `json:"renderedBody"`
			Created      string          `json:"created"`
		} `json:"comments"`
	}
	path := "/rest/api/2/issue/" + url.PathEscape(issueKey) + "/comment?expand=renderedBody"
	if err := s.client.Get(ctx, path, &payload); err != nil {
		return nil, err
	}

	comments := make([]models.IssueComment, 0, len(payload.Comments))
	for _, c := range payload.Comments {
		body := ""
		if c.RenderedBody != "" {
			body = ConvertRenderedBody(c.RenderedBody, s.client.BaseURL(), s.logger)
		} else {
			body = FlattenDescription(c.Body)
		}
		comments = append(comments, models.IssueComment{
			ID:      c.ID,
			Author:  c.Author.DisplayName,
			Body:    body,
			Created: c.Created,
		})
	}
	return comments, nil
}
