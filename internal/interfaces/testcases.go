package interfaces

import (
	"context"

	"github.com/ternarybob/probatio/internal/models"
)

// Synthesizer derives a structured test-case document from free text.
// Implementations are pure functions of their inputs: no network access,
// no wall-clock dependence.
type Synthesizer interface {
	Synthesize(freeText, additionalRequirements string) models.TestCaseContent
}

// TestCreator drives the multi-step test-case creation workflow.
type TestCreator interface {
	// CreateTestCase creates the preconditions (best effort), the test
	// issue with embedded steps (mandatory), and the link back to the
	// originating issue (best effort, only when originatingIssue is
	// non-empty).
	CreateTestCase(ctx context.Context, content models.TestCaseContent, projectKey, jiraBaseURL, originatingIssue string) (*models.CreationResult, error)
}
