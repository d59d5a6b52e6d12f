package interfaces

import (
	"context"

	"github.com/ternarybob/probatio/internal/models"
)

// TokenSource supplies a bearer credential for the Xray GraphQL service.
type TokenSource interface {
	// Token returns a cached credential when one is still valid, otherwise
	// performs the authentication exchange.
	Token(ctx context.Context) (string, error)

	// Invalidate discards the cached credential so the next Token call
	// re-authenticates.
	Invalidate()
}

// GraphQLExecutor executes a query or mutation against the Xray GraphQL
// endpoint. A non-empty Errors array in the response is not an error
// return; callers inspect it explicitly.
type GraphQLExecutor interface {
	Execute(ctx context.Context, document string, variables map[string]any) (*models.GraphQLResponse, error)
}

// TestWriter covers the write-side mutations of the Xray service consumed
// by the creation workflow.
type TestWriter interface {
	// CreatePrecondition creates one precondition entity and returns its
	// issue ID.
	CreatePrecondition(ctx context.Context, pre models.Precondition, projectKey string) (string, error)

	// CreateTest creates the test issue with its ordered steps and the
	// given precondition references embedded in a single mutation.
	CreateTest(ctx context.Context, content models.TestCaseContent, projectKey string, preconditionIDs []string) (*models.ExternalIssueRef, error)
}

// TestEditor covers amendments to a test that already exists, used when a
// created test needs an extra step or a later-created precondition attached.
type TestEditor interface {
	// AddTestStep appends one step after the test's existing steps.
	AddTestStep(ctx context.Context, testIssueID string, step models.TestStep) error

	// AddTestPreconditions attaches existing precondition entities to a test.
	AddTestPreconditions(ctx context.Context, testIssueID string, preconditionIDs []string) error
}

// TestReader covers the read-side retrieval flows of the Xray service.
type TestReader interface {
	GetTest(ctx context.Context, issueID string) (*models.XrayTest, error)
	GetTests(ctx context.Context, jql string, limit int) ([]models.XrayTest, error)
	GetTestRuns(ctx context.Context, testIssueID string, limit int) ([]models.XrayTestRun, error)
}
