// Package synthesis derives structured test-case documents from free-text
// requirements using an ordered, first-match-wins rule table.
package synthesis

import (
	"fmt"
	"strings"

	"github.com/ternarybob/probatio/internal/models"
)

// Service synthesizes test-case content. It is a pure function of its
// inputs: no network access, no clock, so identical inputs always produce
// structurally identical output.
type Service struct{}

// NewService creates a synthesizer.
func NewService() *Service {
	return &Service{}
}

// Synthesize builds a TestCaseContent from free text and optional
// additional requirements.
func (s *Service) Synthesize(freeText, additionalRequirements string) models.TestCaseContent {
	title := firstNonEmptyLine(freeText)
	lower := strings.ToLower(freeText)

	content := models.TestCaseContent{
		Summary:            "Test: " + title,
		Description:        buildDescription(freeText, additionalRequirements),
		TestObjective:      fmt.Sprintf("Verify that %q behaves as described in the requirement", title),
		Steps:              buildSteps(lower),
		Preconditions:      baselinePreconditions(),
		ExpectedResults:    baselineExpectedResults(),
		TestData:           baselineTestData(),
		AcceptanceCriteria: buildAcceptanceCriteria(additionalRequirements),
	}

	return content
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func buildDescription(freeText, additionalRequirements string) string {
	description := strings.TrimSpace(freeText)
	if strings.TrimSpace(additionalRequirements) != "" {
		description += "\n\nAdditional Requirements:\n" + strings.TrimSpace(additionalRequirements)
	}
	return description
}

// buildSteps assembles bootstrap + first matching topical rule (or the
// fallback) + verification, then numbers the combined sequence 1..n.
func buildSteps(lower string) []models.TestStep {
	templates := make([]stepTemplate, 0, len(bootstrapSteps)+8)
	templates = append(templates, bootstrapSteps...)

	matched := false
	for _, rule := range topicalRules {
		if rule.matches(lower) {
			templates = append(templates, rule.steps...)
			matched = true
			break
		}
	}
	if !matched {
		templates = append(templates, fallbackStep)
	}

	templates = append(templates, verificationStep)

	steps := make([]models.TestStep, len(templates))
	for i, tpl := range templates {
		steps[i] = models.TestStep{
			StepNumber:     i + 1,
			Action:         tpl.action,
			Data:           tpl.data,
			ExpectedResult: tpl.expected,
		}
	}
	return steps
}

func baselinePreconditions() []models.Precondition {
	return []models.Precondition{
		{
			ID:          "PRE-1",
			Condition:   "User has valid access credentials",
			Description: "A test account with the permissions required by the feature exists and can authenticate",
		},
		{
			ID:          "PRE-2",
			Condition:   "Test environment is available",
			Description: "The target environment is deployed, reachable, and in a known-good state",
		},
		{
			ID:          "PRE-3",
			Condition:   "Required test data is prepared",
			Description: "Reference data and fixtures needed by the scenario are loaded",
		},
	}
}

func baselineExpectedResults() []string {
	return []string{
		"The feature behaves according to the stated requirement",
		"No errors are reported in the application or its logs",
		"Data changes are persisted correctly and are visible after a refresh",
		"The user receives clear feedback for every performed action",
	}
}

func baselineTestData() []models.TestDataCategory {
	return []models.TestDataCategory{
		{
			Category:    "Valid inputs",
			Description: "Typical values a real user would supply",
			Examples:    []string{"standard user account", "representative field values"},
		},
		{
			Category:    "Boundary values",
			Description: "Values at the edges of accepted ranges",
			Examples:    []string{"minimum length input", "maximum length input"},
		},
		{
			Category:    "Invalid inputs",
			Description: "Values the feature must reject gracefully",
			Examples:    []string{"empty required fields", "malformed values"},
		},
	}
}

// buildAcceptanceCriteria emits the fixed baseline quintet and appends one
// extra criterion per keyword rule that hits the additional requirements.
func buildAcceptanceCriteria(additionalRequirements string) []models.AcceptanceCriterion {
	criteria := []models.AcceptanceCriterion{
		{ID: "AC-1", Criterion: "Feature is reachable by an authenticated user", Description: "Navigation to the feature succeeds from the main entry point"},
		{ID: "AC-2", Criterion: "Primary flow completes successfully", Description: "The main scenario can be executed end to end without errors"},
		{ID: "AC-3", Criterion: "Invalid input is rejected with a clear message", Description: "Validation failures are reported to the user and nothing is persisted"},
		{ID: "AC-4", Criterion: "Results are persisted and retrievable", Description: "Outcomes of the flow survive a reload and are queryable"},
		{ID: "AC-5", Criterion: "Behavior matches the documented requirement", Description: "Observed behavior is consistent with the source requirement text"},
	}

	lower := strings.ToLower(additionalRequirements)
	for _, rule := range criterionRules {
		if containsAny(lower, rule.keywords...) {
			criteria = append(criteria, models.AcceptanceCriterion{
				ID:          fmt.Sprintf("AC-%d", len(criteria)+1),
				Criterion:   rule.criterion,
				Description: rule.description,
			})
		}
	}

	return criteria
}
