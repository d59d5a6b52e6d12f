// Package testcases drives the multi-step test-case creation workflow
// against the Xray and Jira services.
package testcases

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/common"
	"github.com/ternarybob/probatio/internal/interfaces"
	"github.com/ternarybob/probatio/internal/models"
)

// Orchestrator creates test cases in three stages: preconditions (best
// effort, per-item fault isolation), the test issue with embedded steps
// (mandatory), and the link back to the originating issue (best effort).
// Stages run strictly sequentially; failure attribution stays per item.
type Orchestrator struct {
	writer         interfaces.TestWriter
	resolver       interfaces.IssueResolver
	links          interfaces.LinkService
	defaultBaseURL string
	logger         arbor.ILogger
}

// NewOrchestrator creates the creation workflow. defaultBaseURL is the
// configured Jira base URL used for result links when the caller supplies
// neither a base URL nor an originating browse URL.
func NewOrchestrator(writer interfaces.TestWriter, resolver interfaces.IssueResolver, links interfaces.LinkService, defaultBaseURL string, logger arbor.ILogger) *Orchestrator {
	return &Orchestrator{
		writer:         writer,
		resolver:       resolver,
		links:          links,
		defaultBaseURL: strings.TrimRight(defaultBaseURL, "/"),
		logger:         logger,
	}
}

// CreateTestCase runs the creation workflow. The returned result exists
// only when the test issue itself was created; precondition and link
// failures are reflected as reduced counts and retained outcomes, never as
// an absent result.
func (o *Orchestrator) CreateTestCase(ctx context.Context, content models.TestCaseContent, projectKey, jiraBaseURL, originatingIssue string) (*models.CreationResult, error) {
	if strings.TrimSpace(projectKey) == "" {
		return nil, &models.ValidationError{Field: "projectKey", Reason: "is required"}
	}

	log := o.logger.WithCorrelationId(common.NewRequestID())

	outcomes := o.createPreconditions(ctx, log, content.Preconditions, projectKey)

	createdIDs := make([]string, 0, len(outcomes))
	failed := make([]models.PreconditionOutcome, 0)
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			createdIDs = append(createdIDs, outcome.IssueID)
		} else {
			failed = append(failed, outcome)
		}
	}

	ref, err := o.writer.CreateTest(ctx, content, projectKey, createdIDs)
	if err != nil {
		log.Error().Err(err).Str("project", projectKey).Msg("Test issue creation failed")
		return nil, &models.CreationError{Stage: "test-issue", Err: err}
	}

	log.Info().
		Str("project", projectKey).
		Str("issue", ref.Key).
		Int("steps", len(content.Steps)).
		Int("preconditions", len(createdIDs)).
		Msg("Created test issue")

	result := &models.CreationResult{
		IssueID:              ref.IssueID,
		Key:                  ref.Key,
		StepsCreated:         len(content.Steps),
		PreconditionsCreated: len(createdIDs),
		FailedPreconditions:  failed,
	}

	baseURL := strings.TrimRight(jiraBaseURL, "/")

	if originatingIssue != "" {
		linkedBase, linked := o.linkToUserStory(ctx, log, ref, originatingIssue)
		result.UserStoryLinked = linked
		if baseURL == "" {
			baseURL = linkedBase
		}
	}

	if baseURL == "" {
		baseURL = o.defaultBaseURL
	}
	if baseURL != "" && ref.Key != "" {
		result.URL = baseURL + "/browse/" + ref.Key
	}

	return result, nil
}

// createPreconditions runs the best-effort precondition stage. A failure
// for one item is logged and recorded; it never aborts the loop.
func (o *Orchestrator) createPreconditions(ctx context.Context, log arbor.ILogger, preconditions []models.Precondition, projectKey string) []models.PreconditionOutcome {
	outcomes := make([]models.PreconditionOutcome, 0, len(preconditions))

	for _, pre := range preconditions {
		issueID, err := o.writer.CreatePrecondition(ctx, pre, projectKey)
		if err != nil {
			log.Warn().Err(err).Str("condition", pre.Condition).Msg("Skipping failed precondition")
			outcomes = append(outcomes, models.PreconditionOutcome{Condition: pre.Condition, Error: err.Error()})
			continue
		}
		outcomes = append(outcomes, models.PreconditionOutcome{Condition: pre.Condition, IssueID: issueID})
	}

	return outcomes
}

// linkToUserStory runs the best-effort linkage stage. The new test issue
// is the inward side ("tests"); the originating issue is the outward side
// ("is tested by"). Returns the originating issue's base URL (for result
// links) and whether the link was created.
func (o *Orchestrator) linkToUserStory(ctx context.Context, log arbor.ILogger, ref *models.ExternalIssueRef, originatingIssue string) (string, bool) {
	resolved, err := o.resolver.Resolve(ctx, originatingIssue)
	if err != nil {
		log.Warn().Err(err).Str("issue", originatingIssue).Msg("Could not resolve originating issue, skipping link")
		return "", false
	}

	linkType, err := o.links.FindTestsLinkType(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Could not discover tests link type, skipping link")
		return resolved.BaseURL, false
	}

	if err := o.links.LinkIssues(ctx, linkType, ref.IssueID, resolved.NumericID); err != nil {
		log.Warn().Err(err).Str("issue", resolved.Key).Msg("Could not create link to originating issue")
		return resolved.BaseURL, false
	}

	log.Info().Str("link_type", linkType.Name).Str("story", resolved.Key).Str("test", ref.Key).Msg("Linked test to originating issue")
	return resolved.BaseURL, true
}
