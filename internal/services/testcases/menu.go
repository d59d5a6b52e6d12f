package testcases

import "github.com/ternarybob/probatio/internal/models"

// ArtifactOptions returns the fixed menu presented when a retrieval
// request does not say which artifact type it wants. The agent answers
// with this menu instead of guessing.
func ArtifactOptions() []models.ArtifactOption {
	return []models.ArtifactOption{
		{
			ID:          "test-steps",
			Label:       "Test steps",
			Description: "The ordered steps of a test case, with action, data, and expected result",
		},
		{
			ID:          "preconditions",
			Label:       "Preconditions",
			Description: "Reusable prerequisites linked to one or more test cases",
		},
		{
			ID:          "test-sets",
			Label:       "Test sets",
			Description: "Named groupings of test cases",
		},
		{
			ID:          "test-plans",
			Label:       "Test plans",
			Description: "Planned scopes of testing for a release or iteration",
		},
		{
			ID:          "test-runs",
			Label:       "Test runs",
			Description: "Execution records of test cases with their status",
		},
	}
}
