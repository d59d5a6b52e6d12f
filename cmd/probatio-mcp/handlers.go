package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/common"
	"github.com/ternarybob/probatio/internal/interfaces"
	"github.com/ternarybob/probatio/internal/models"
	"github.com/ternarybob/probatio/internal/services/testcases"
)

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(fmt.Sprintf(format, args...)),
		},
	}
}

func textResult(markdown string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(markdown),
		},
	}
}

// handleCreateTestCase implements the create_test_case tool
func handleCreateTestCase(creationService *testcases.Service, config *common.Config, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userStory := request.GetString("user_story", "")
		text := request.GetString("text", "")
		if userStory == "" && text == "" {
			return errorResult("Error: either user_story or text is required"), nil
		}

		additional := request.GetString("additional_requirements", "")
		project := request.GetString("project", config.Jira.ProjectKey)
		if project == "" {
			return errorResult("Error: no project given and no default project configured"), nil
		}

		var result *models.CreationResult
		var err error
		if userStory != "" {
			result, err = creationService.CreateFromUserStory(ctx, userStory, additional, project)
		} else {
			result, err = creationService.CreateFromText(ctx, text, additional, project, "")
		}
		if err != nil {
			logger.Error().Err(err).Str("project", project).Msg("Test case creation failed")
			return errorResult("Test case creation failed: %v", err), nil
		}

		return textResult(formatCreationResult(result)), nil
	}
}

// handleGetTest implements the get_test tool
func handleGetTest(reader interfaces.TestReader, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueID, err := request.RequireString("issue_id")
		if err != nil || issueID == "" {
			return errorResult("Error: issue_id parameter is required"), nil
		}

		test, err := reader.GetTest(ctx, issueID)
		if err != nil {
			logger.Error().Err(err).Str("issue_id", issueID).Msg("GetTest failed")
			return errorResult("Failed to fetch test: %v", err), nil
		}

		return textResult(formatTest(test)), nil
	}
}

// handleListTests implements the list_tests tool
func handleListTests(reader interfaces.TestReader, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jql := request.GetString("jql", "")
		limit := request.GetInt("limit", 10)
		if limit > 100 {
			limit = 100
		}

		tests, err := reader.GetTests(ctx, jql, limit)
		if err != nil {
			logger.Error().Err(err).Msg("GetTests failed")
			return errorResult("Failed to list tests: %v", err), nil
		}

		return textResult(formatTests(jql, tests)), nil
	}
}

// handleGetTestRuns implements the get_test_runs tool
func handleGetTestRuns(reader interfaces.TestReader, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		testIssueID, err := request.RequireString("test_issue_id")
		if err != nil || testIssueID == "" {
			return errorResult("Error: test_issue_id parameter is required"), nil
		}
		limit := request.GetInt("limit", 10)

		runs, err := reader.GetTestRuns(ctx, testIssueID, limit)
		if err != nil {
			logger.Error().Err(err).Str("test_issue_id", testIssueID).Msg("GetTestRuns failed")
			return errorResult("Failed to fetch test runs: %v", err), nil
		}

		return textResult(formatTestRuns(testIssueID, runs)), nil
	}
}

// handleGetArtifacts implements the get_artifacts tool. Without a
// data_type it answers with the fixed artifact-type menu instead of
// guessing what the caller wanted.
func handleGetArtifacts(reader interfaces.TestReader, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dataType := request.GetString("data_type", "")
		if dataType == "" {
			return textResult(formatArtifactMenu(testcases.ArtifactOptions())), nil
		}

		issueID := request.GetString("issue_id", "")

		switch dataType {
		case "test-steps":
			if issueID == "" {
				return errorResult("Error: issue_id is required for test-steps"), nil
			}
			test, err := reader.GetTest(ctx, issueID)
			if err != nil {
				logger.Error().Err(err).Str("issue_id", issueID).Msg("GetTest failed")
				return errorResult("Failed to fetch test steps: %v", err), nil
			}
			return textResult(formatSteps(test)), nil

		case "test-runs":
			if issueID == "" {
				return errorResult("Error: issue_id is required for test-runs"), nil
			}
			runs, err := reader.GetTestRuns(ctx, issueID, 10)
			if err != nil {
				logger.Error().Err(err).Str("issue_id", issueID).Msg("GetTestRuns failed")
				return errorResult("Failed to fetch test runs: %v", err), nil
			}
			return textResult(formatTestRuns(issueID, runs)), nil

		case "preconditions", "test-sets", "test-plans":
			return textResult(fmt.Sprintf("Retrieval of %s is not wired yet. Available today: test-steps, test-runs.", dataType)), nil

		default:
			return errorResult("Unknown data_type %q. Omit the parameter to see the available types.", dataType), nil
		}
	}
}

// handleAddComment implements the add_comment tool
func handleAddComment(comments interfaces.CommentService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKey, err := request.RequireString("issue_key")
		if err != nil || issueKey == "" {
			return errorResult("Error: issue_key parameter is required"), nil
		}
		body, err := request.RequireString("body")
		if err != nil || body == "" {
			return errorResult("Error: body parameter is required"), nil
		}

		comment, err := comments.AddComment(ctx, issueKey, body)
		if err != nil {
			logger.Error().Err(err).Str("issue_key", issueKey).Msg("AddComment failed")
			return errorResult("Failed to add comment: %v", err), nil
		}

		return textResult(fmt.Sprintf("Added comment %s to %s.", comment.ID, issueKey)), nil
	}
}

// handleGetComments implements the get_comments tool
func handleGetComments(comments interfaces.CommentService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKey, err := request.RequireString("issue_key")
		if err != nil || issueKey == "" {
			return errorResult("Error: issue_key parameter is required"), nil
		}

		list, err := comments.ListComments(ctx, issueKey)
		if err != nil {
			logger.Error().Err(err).Str("issue_key", issueKey).Msg("ListComments failed")
			return errorResult("Failed to list comments: %v", err), nil
		}

		return textResult(formatComments(issueKey, list)), nil
	}
}

// handleAddTestStep implements the add_test_step tool
func handleAddTestStep(editor interfaces.TestEditor, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		testIssueID, err := request.RequireString("test_issue_id")
		if err != nil || testIssueID == "" {
			return errorResult("Error: test_issue_id parameter is required"), nil
		}
		action, err := request.RequireString("action")
		if err != nil || action == "" {
			return errorResult("Error: action parameter is required"), nil
		}

		step := models.TestStep{
			Action:         action,
			Data:           request.GetString("data", ""),
			ExpectedResult: request.GetString("expected_result", ""),
		}

		if err := editor.AddTestStep(ctx, testIssueID, step); err != nil {
			logger.Error().Err(err).Str("test_issue_id", testIssueID).Msg("AddTestStep failed")
			return errorResult("Failed to add test step: %v", err), nil
		}

		return textResult(fmt.Sprintf("Added step to test %s.", testIssueID)), nil
	}
}

// handleAddPreconditions implements the add_preconditions tool
func handleAddPreconditions(editor interfaces.TestEditor, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		testIssueID, err := request.RequireString("test_issue_id")
		if err != nil || testIssueID == "" {
			return errorResult("Error: test_issue_id parameter is required"), nil
		}
		rawIDs, err := request.RequireString("precondition_issue_ids")
		if err != nil || rawIDs == "" {
			return errorResult("Error: precondition_issue_ids parameter is required"), nil
		}

		var ids []string
		for _, id := range strings.Split(rawIDs, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				ids = append(ids, trimmed)
			}
		}
		if len(ids) == 0 {
			return errorResult("Error: precondition_issue_ids parameter is required"), nil
		}

		if err := editor.AddTestPreconditions(ctx, testIssueID, ids); err != nil {
			logger.Error().Err(err).Str("test_issue_id", testIssueID).Msg("AddTestPreconditions failed")
			return errorResult("Failed to attach preconditions: %v", err), nil
		}

		return textResult(fmt.Sprintf("Attached %d preconditions to test %s.", len(ids), testIssueID)), nil
	}
}
