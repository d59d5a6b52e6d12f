package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createTestCaseTool returns the create_test_case tool definition
func createTestCaseTool() mcp.Tool {
	return mcp.NewTool("create_test_case",
		mcp.WithDescription("Synthesize a structured test case from a requirement and create it in Xray, linked back to the originating Jira issue"),
		mcp.WithString("user_story",
			mcp.Description("Jira issue key or browse URL of the requirement (e.g. PROJ-10). Either this or text is required"),
		),
		mcp.WithString("text",
			mcp.Description("Free-text requirement to synthesize the test case from. Either this or user_story is required"),
		),
		mcp.WithString("additional_requirements",
			mcp.Description("Extra requirements (security, mobile, browser support) folded into the acceptance criteria"),
		),
		mcp.WithString("project",
			mcp.Description("Jira project key for the created test issue (defaults to the configured project)"),
		),
	)
}

// getTestTool returns the get_test tool definition
func getTestTool() mcp.Tool {
	return mcp.NewTool("get_test",
		mcp.WithDescription("Retrieve one Xray test with its steps by Jira issue ID"),
		mcp.WithString("issue_id",
			mcp.Required(),
			mcp.Description("Numeric Jira issue ID of the test"),
		),
	)
}

// listTestsTool returns the list_tests tool definition
func listTestsTool() mcp.Tool {
	return mcp.NewTool("list_tests",
		mcp.WithDescription("List Xray tests, optionally filtered by JQL"),
		mcp.WithString("jql",
			mcp.Description("JQL filter (e.g. project = PROJ)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 10, max: 100)"),
		),
	)
}

// getTestRunsTool returns the get_test_runs tool definition
func getTestRunsTool() mcp.Tool {
	return mcp.NewTool("get_test_runs",
		mcp.WithDescription("List execution runs of an Xray test"),
		mcp.WithString("test_issue_id",
			mcp.Required(),
			mcp.Description("Numeric Jira issue ID of the test"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 10)"),
		),
	)
}

// getArtifactsTool returns the get_artifacts tool definition
func getArtifactsTool() mcp.Tool {
	return mcp.NewTool("get_artifacts",
		mcp.WithDescription("Retrieve test-management artifacts of a given type. Without data_type, returns the menu of available types"),
		mcp.WithString("data_type",
			mcp.Description("Artifact type: test-steps, preconditions, test-sets, test-plans, test-runs. Omit to get the menu"),
		),
		mcp.WithString("issue_id",
			mcp.Description("Numeric Jira issue ID of the test the artifacts belong to"),
		),
	)
}

// addCommentTool returns the add_comment tool definition
func addCommentTool() mcp.Tool {
	return mcp.NewTool("add_comment",
		mcp.WithDescription("Add a comment to a Jira issue"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Issue key (e.g. PROJ-10)"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Comment text"),
		),
	)
}

// getCommentsTool returns the get_comments tool definition
func getCommentsTool() mcp.Tool {
	return mcp.NewTool("get_comments",
		mcp.WithDescription("List the comments on a Jira issue"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("Issue key (e.g. PROJ-10)"),
		),
	)
}

// addTestStepTool returns the add_test_step tool definition
func addTestStepTool() mcp.Tool {
	return mcp.NewTool("add_test_step",
		mcp.WithDescription("Append a step to an existing Xray test"),
		mcp.WithString("test_issue_id",
			mcp.Required(),
			mcp.Description("Numeric Jira issue ID of the test"),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("What the tester does in this step"),
		),
		mcp.WithString("data",
			mcp.Description("Input data used by the step"),
		),
		mcp.WithString("expected_result",
			mcp.Description("What the tester should observe"),
		),
	)
}

// addPreconditionsTool returns the add_preconditions tool definition
func addPreconditionsTool() mcp.Tool {
	return mcp.NewTool("add_preconditions",
		mcp.WithDescription("Attach existing Xray precondition issues to a test"),
		mcp.WithString("test_issue_id",
			mcp.Required(),
			mcp.Description("Numeric Jira issue ID of the test"),
		),
		mcp.WithString("precondition_issue_ids",
			mcp.Required(),
			mcp.Description("Comma-separated numeric issue IDs of the preconditions to attach"),
		),
	)
}
