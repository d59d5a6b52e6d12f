package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/probatio/internal/models"
)

// formatCreationResult formats a creation outcome as markdown
func formatCreationResult(result *models.CreationResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Created test case %s\n\n", result.Key))
	if result.URL != "" {
		sb.WriteString(fmt.Sprintf("**URL:** %s\n", result.URL))
	}
	sb.WriteString(fmt.Sprintf("**Steps:** %d\n", result.StepsCreated))
	sb.WriteString(fmt.Sprintf("**Preconditions created:** %d\n", result.PreconditionsCreated))
	if result.UserStoryLinked {
		sb.WriteString("**Linked to user story:** yes\n")
	} else {
		sb.WriteString("**Linked to user story:** no\n")
	}

	if len(result.FailedPreconditions) > 0 {
		sb.WriteString("\n### Skipped preconditions\n\n")
		for _, failed := range result.FailedPreconditions {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", failed.Condition, failed.Error))
		}
	}

	return sb.String()
}

// formatTest formats a single test as markdown
func formatTest(test *models.XrayTest) string {
	var sb strings.Builder

	title := test.IssueID
	if test.Jira.Parsed() && test.Jira.Ref.Key != "" {
		title = test.Jira.Ref.Key
	}
	sb.WriteString(fmt.Sprintf("# Test %s\n\n", title))

	if test.Jira.Parsed() {
		ref := test.Jira.Ref
		if ref.Summary != "" {
			sb.WriteString(fmt.Sprintf("**Summary:** %s\n", ref.Summary))
		}
		if ref.Status != "" {
			sb.WriteString(fmt.Sprintf("**Status:** %s\n", ref.Status))
		}
	} else if test.Jira.Raw != "" {
		sb.WriteString("**Note:** the linked Jira issue payload could not be parsed\n")
	}
	if test.TestType != "" {
		sb.WriteString(fmt.Sprintf("**Type:** %s\n", test.TestType))
	}
	sb.WriteString("\n")

	sb.WriteString(formatSteps(test))
	return sb.String()
}

// formatSteps formats a test's step table as markdown
func formatSteps(test *models.XrayTest) string {
	if len(test.Steps) == 0 {
		return "No steps recorded.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Steps (%d)\n\n", len(test.Steps)))
	for i, step := range test.Steps {
		sb.WriteString(fmt.Sprintf("%d. **%s**\n", i+1, step.Action))
		if step.Data != "" {
			sb.WriteString(fmt.Sprintf("   - Data: %s\n", step.Data))
		}
		if step.Result != "" {
			sb.WriteString(fmt.Sprintf("   - Expected: %s\n", step.Result))
		}
	}
	return sb.String()
}

// formatTests formats a test listing as markdown
func formatTests(jql string, tests []models.XrayTest) string {
	var sb strings.Builder
	if jql != "" {
		sb.WriteString(fmt.Sprintf("## Tests matching %q (%d results)\n\n", jql, len(tests)))
	} else {
		sb.WriteString(fmt.Sprintf("## Tests (%d results)\n\n", len(tests)))
	}

	if len(tests) == 0 {
		sb.WriteString("No tests found.\n")
		return sb.String()
	}

	for i, test := range tests {
		label := test.IssueID
		summary := ""
		if test.Jira.Parsed() {
			if test.Jira.Ref.Key != "" {
				label = test.Jira.Ref.Key
			}
			summary = test.Jira.Ref.Summary
		}
		sb.WriteString(fmt.Sprintf("%d. **%s** %s\n", i+1, label, summary))
	}
	return sb.String()
}

// formatTestRuns formats a run listing as markdown
func formatTestRuns(testIssueID string, runs []models.XrayTestRun) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Runs of test %s (%d results)\n\n", testIssueID, len(runs)))

	if len(runs) == 0 {
		sb.WriteString("No runs found.\n")
		return sb.String()
	}

	for i, run := range runs {
		sb.WriteString(fmt.Sprintf("%d. **%s**", i+1, run.Status))
		if run.StartedOn != "" {
			sb.WriteString(fmt.Sprintf(" started %s", run.StartedOn))
		}
		if run.FinishedOn != "" {
			sb.WriteString(fmt.Sprintf(", finished %s", run.FinishedOn))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatArtifactMenu formats the artifact-type menu as markdown
func formatArtifactMenu(options []models.ArtifactOption) string {
	var sb strings.Builder
	sb.WriteString("## Which artifact type do you want?\n\n")
	for _, opt := range options {
		sb.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", opt.Label, opt.ID, opt.Description))
	}
	sb.WriteString("\nCall get_artifacts again with data_type set to one of the ids above.\n")
	return sb.String()
}

// formatComments formats an issue's comments as markdown
func formatComments(issueKey string, comments []models.IssueComment) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Comments on %s (%d)\n\n", issueKey, len(comments)))

	if len(comments) == 0 {
		sb.WriteString("No comments.\n")
		return sb.String()
	}

	for _, comment := range comments {
		sb.WriteString(fmt.Sprintf("### %s (%s)\n\n", comment.Author, comment.Created))
		sb.WriteString(comment.Body)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
