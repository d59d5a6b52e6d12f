package interfaces

import (
	"context"

	"github.com/ternarybob/probatio/internal/models"
)

// IssueResolver resolves human-facing issue keys (or browse URLs) against
// the Jira REST API.
type IssueResolver interface {
	// Resolve turns an issue key or a /browse/ URL into the tracker's
	// numeric identifier and base URL.
	Resolve(ctx context.Context, issueKeyOrURL string) (models.ResolvedIssue, error)

	// FetchIssue loads an issue's summary and flattened description for
	// use as synthesis input.
	FetchIssue(ctx context.Context, issueKey string) (*models.FetchedIssue, error)
}

// LinkTypeResolver discovers the relationship type carrying "tests"
// semantics from the tracker's catalog.
type LinkTypeResolver interface {
	FindTestsLinkType(ctx context.Context) (models.LinkType, error)
}

// IssueLinker creates a directed relationship link between two issues.
type IssueLinker interface {
	// LinkIssues creates a link of the given type with inwardID on the
	// side asserting the inward verb and outwardID on the outward side.
	LinkIssues(ctx context.Context, linkType models.LinkType, inwardID, outwardID string) error
}

// LinkService combines link-type discovery and link creation; the Jira
// link-type service implements both.
type LinkService interface {
	LinkTypeResolver
	IssueLinker
}

// CommentService covers issue-comment reads and writes.
type CommentService interface {
	AddComment(ctx context.Context, issueKey, body string) (*models.IssueComment, error)
	ListComments(ctx context.Context, issueKey string) ([]models.IssueComment, error)
}
