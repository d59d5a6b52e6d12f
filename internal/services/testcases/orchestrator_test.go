package testcases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/models"
)

// fakeWriter is a TestWriter with scriptable per-item failures.
type fakeWriter struct {
	failConditions  map[string]bool
	failCreateTest  error
	createdPres     []string
	createTestCalls int
	gotPreIDs       []string
	gotSteps        int
}

func (f *fakeWriter) CreatePrecondition(ctx context.Context, pre models.Precondition, projectKey string) (string, error) {
	if f.failConditions[pre.Condition] {
		return "", fmt.Errorf("simulated failure for %s", pre.Condition)
	}
	id := fmt.Sprintf("PRE-ISSUE-%d", len(f.createdPres)+1)
	f.createdPres = append(f.createdPres, id)
	return id, nil
}

func (f *fakeWriter) CreateTest(ctx context.Context, content models.TestCaseContent, projectKey string, preconditionIDs []string) (*models.ExternalIssueRef, error) {
	f.createTestCalls++
	f.gotPreIDs = preconditionIDs
	f.gotSteps = len(content.Steps)
	if f.failCreateTest != nil {
		return nil, f.failCreateTest
	}
	return &models.ExternalIssueRef{IssueID: "20001", Key: "PROJ-101", Summary: content.Summary}, nil
}

// fakeResolver resolves every key to a fixed numeric ID.
type fakeResolver struct {
	failResolve bool
}

func (f *fakeResolver) Resolve(ctx context.Context, issueKeyOrURL string) (models.ResolvedIssue, error) {
	if f.failResolve {
		return models.ResolvedIssue{}, &models.LookupError{Key: issueKeyOrURL, StatusCode: 404}
	}
	return models.ResolvedIssue{NumericID: "10042", Key: "PROJ-10", BaseURL: "https://jira.example.com"}, nil
}

func (f *fakeResolver) FetchIssue(ctx context.Context, issueKey string) (*models.FetchedIssue, error) {
	return &models.FetchedIssue{Key: "PROJ-10", Summary: "Login feature", Description: "Users can log in."}, nil
}

// fakeLinks records the link it was asked to create.
type fakeLinks struct {
	failDiscovery bool
	failLink      bool
	gotInward     string
	gotOutward    string
	gotType       models.LinkType
}

func (f *fakeLinks) FindTestsLinkType(ctx context.Context) (models.LinkType, error) {
	if f.failDiscovery {
		return models.LinkType{}, models.ErrNoLinkTypeFound
	}
	return models.LinkType{ID: "10100", Name: "Test", Inward: "is tested by", Outward: "tests"}, nil
}

func (f *fakeLinks) LinkIssues(ctx context.Context, linkType models.LinkType, inwardID, outwardID string) error {
	if f.failLink {
		return fmt.Errorf("simulated link failure")
	}
	f.gotType = linkType
	f.gotInward = inwardID
	f.gotOutward = outwardID
	return nil
}

func threePreconditions() models.TestCaseContent {
	return models.TestCaseContent{
		Summary: "Test: Login feature",
		Steps: []models.TestStep{
			{StepNumber: 1, Action: "Navigate to the application"},
			{StepNumber: 2, Action: "Log in with valid credentials"},
			{StepNumber: 3, Action: "Verify the overall result matches the expected behavior"},
		},
		Preconditions: []models.Precondition{
			{Condition: "first"},
			{Condition: "second"},
			{Condition: "third"},
		},
	}
}

func newTestOrchestrator(writer *fakeWriter, resolver *fakeResolver, links *fakeLinks) *Orchestrator {
	return NewOrchestrator(writer, resolver, links, "https://jira.example.com", arbor.NewLogger())
}

func TestCreateTestCase_HappyPath(t *testing.T) {
	writer := &fakeWriter{}
	links := &fakeLinks{}
	orch := newTestOrchestrator(writer, &fakeResolver{}, links)

	result, err := orch.CreateTestCase(context.Background(), threePreconditions(), "PROJ", "", "PROJ-10")
	require.NoError(t, err)

	assert.Equal(t, "PROJ-101", result.Key)
	assert.Equal(t, 3, result.StepsCreated)
	assert.Equal(t, 3, result.PreconditionsCreated)
	assert.Empty(t, result.FailedPreconditions)
	assert.True(t, result.UserStoryLinked)
	assert.Equal(t, "https://jira.example.com/browse/PROJ-101", result.URL)
}

func TestCreateTestCase_PartialPreconditionFailure(t *testing.T) {
	writer := &fakeWriter{failConditions: map[string]bool{"second": true}}
	orch := newTestOrchestrator(writer, &fakeResolver{}, &fakeLinks{})

	result, err := orch.CreateTestCase(context.Background(), threePreconditions(), "PROJ", "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.PreconditionsCreated)
	require.Len(t, result.FailedPreconditions, 1)
	assert.Equal(t, "second", result.FailedPreconditions[0].Condition)
	assert.Contains(t, result.FailedPreconditions[0].Error, "simulated failure")

	// Stage 2 must still proceed with the two surviving identifiers.
	assert.Equal(t, 1, writer.createTestCalls)
	assert.Len(t, writer.gotPreIDs, 2)
}

func TestCreateTestCase_FatalTestCreation(t *testing.T) {
	writer := &fakeWriter{
		failCreateTest: &models.GraphQLError{Operation: "createTest", Messages: []string{"project not found"}},
	}
	orch := newTestOrchestrator(writer, &fakeResolver{}, &fakeLinks{})

	result, err := orch.CreateTestCase(context.Background(), threePreconditions(), "PROJ", "", "")
	require.Error(t, err)
	assert.Nil(t, result, "a failed test-issue creation must produce no result")

	var creationErr *models.CreationError
	require.True(t, errors.As(err, &creationErr))

	var gqlErr *models.GraphQLError
	assert.True(t, errors.As(err, &gqlErr), "the underlying GraphQL error must stay reachable")
}

func TestCreateTestCase_LinkDirection(t *testing.T) {
	writer := &fakeWriter{}
	links := &fakeLinks{}
	orch := newTestOrchestrator(writer, &fakeResolver{}, links)

	_, err := orch.CreateTestCase(context.Background(), threePreconditions(), "PROJ", "", "PROJ-10")
	require.NoError(t, err)

	assert.Equal(t, "20001", links.gotInward, "the new test issue asserts the inward verb (tests)")
	assert.Equal(t, "10042", links.gotOutward, "the originating issue asserts the outward verb (is tested by)")
}

func TestCreateTestCase_LinkFailureDoesNotRollBack(t *testing.T) {
	tests := []struct {
		name  string
		links *fakeLinks
	}{
		{name: "discovery fails", links: &fakeLinks{failDiscovery: true}},
		{name: "link creation fails", links: &fakeLinks{failLink: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := newTestOrchestrator(&fakeWriter{}, &fakeResolver{}, tt.links)

			result, err := orch.CreateTestCase(context.Background(), threePreconditions(), "PROJ", "", "PROJ-10")
			require.NoError(t, err, "link failures are degradation, not failure")
			assert.False(t, result.UserStoryLinked)
			assert.Equal(t, "PROJ-101", result.Key)
		})
	}
}

func TestCreateTestCase_ResolveFailureSkipsLink(t *testing.T) {
	orch := newTestOrchestrator(&fakeWriter{}, &fakeResolver{failResolve: true}, &fakeLinks{})

	result, err := orch.CreateTestCase(context.Background(), threePreconditions(), "PROJ", "", "GONE-1")
	require.NoError(t, err)
	assert.False(t, result.UserStoryLinked)
}

func TestCreateTestCase_MissingProjectKey(t *testing.T) {
	orch := newTestOrchestrator(&fakeWriter{}, &fakeResolver{}, &fakeLinks{})

	_, err := orch.CreateTestCase(context.Background(), threePreconditions(), " ", "", "")
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestCreateTestCase_NoOriginatingIssueSkipsLinkStage(t *testing.T) {
	links := &fakeLinks{failDiscovery: true} // would fail if consulted
	orch := newTestOrchestrator(&fakeWriter{}, &fakeResolver{}, links)

	result, err := orch.CreateTestCase(context.Background(), threePreconditions(), "PROJ", "https://other.example.com", "")
	require.NoError(t, err)
	assert.False(t, result.UserStoryLinked)
	assert.Equal(t, "https://other.example.com/browse/PROJ-101", result.URL)
}
