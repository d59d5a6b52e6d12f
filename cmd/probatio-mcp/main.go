package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"

	"github.com/ternarybob/probatio/internal/common"
	"github.com/ternarybob/probatio/internal/services/jira"
	"github.com/ternarybob/probatio/internal/services/synthesis"
	"github.com/ternarybob/probatio/internal/services/testcases"
	"github.com/ternarybob/probatio/internal/services/xray"
)

func main() {
	configPath := os.Getenv("PROBATIO_CONFIG")
	if configPath == "" {
		configPath = "probatio.toml"
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logging to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	// Xray side: token cache -> GraphQL client -> service
	tokens := xray.NewTokenCache(config.Xray.BaseURL, config.Xray.ClientID, config.Xray.ClientSecret,
		xray.WithAuthLogger(logger))
	gqlClient := xray.NewClient(config.Xray.BaseURL, tokens,
		xray.WithLogger(logger),
		xray.WithRateLimit(config.Xray.RateLimit))
	xrayService := xray.NewService(gqlClient, logger)

	// Jira side: REST client -> lookup, link, comment services
	jiraClient := jira.NewClient(config.Jira.BaseURL, config.Jira.Username, config.Jira.APIToken,
		jira.WithLogger(logger))
	lookupService := jira.NewLookupService(jiraClient, logger)
	linkService := jira.NewLinkTypeService(jiraClient, config.Jira.LinkTypeName, logger)
	commentService := jira.NewCommentService(jiraClient, logger)

	orchestrator := testcases.NewOrchestrator(xrayService, lookupService, linkService, config.Jira.BaseURL, logger)
	creationService := testcases.NewService(synthesis.NewService(), orchestrator, lookupService, logger)

	mcpServer := server.NewMCPServer(
		"probatio",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Authoring tools
	mcpServer.AddTool(createTestCaseTool(), handleCreateTestCase(creationService, config, logger))
	mcpServer.AddTool(addTestStepTool(), handleAddTestStep(xrayService, logger))
	mcpServer.AddTool(addPreconditionsTool(), handleAddPreconditions(xrayService, logger))

	// Retrieval tools
	mcpServer.AddTool(getTestTool(), handleGetTest(xrayService, logger))
	mcpServer.AddTool(listTestsTool(), handleListTests(xrayService, logger))
	mcpServer.AddTool(getTestRunsTool(), handleGetTestRuns(xrayService, logger))
	mcpServer.AddTool(getArtifactsTool(), handleGetArtifacts(xrayService, logger))

	// Comment tools
	mcpServer.AddTool(addCommentTool(), handleAddComment(commentService, logger))
	mcpServer.AddTool(getCommentsTool(), handleGetComments(commentService, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
