package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/common"
	"github.com/ternarybob/probatio/internal/services/jira"
	"github.com/ternarybob/probatio/internal/services/synthesis"
	"github.com/ternarybob/probatio/internal/services/testcases"
	"github.com/ternarybob/probatio/internal/services/xray"
)

var (
	configFile   = flag.String("config", "probatio.toml", "Configuration file path")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: probatio [flags] <command> [args]

Commands:
  create -project KEY (-story ISSUE | -text TEXT) [-requirements TEXT]
          Synthesize a test case and create it in Xray
  get ISSUE_ID
          Show one Xray test with its steps
  runs ISSUE_ID
          Show the runs of an Xray test

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Probatio version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file -> env)
	// 2. Initialize logger
	// 3. Print banner
	var err error
	config, err = common.LoadFromFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger = common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	tokens := xray.NewTokenCache(config.Xray.BaseURL, config.Xray.ClientID, config.Xray.ClientSecret,
		xray.WithAuthLogger(logger))
	gqlClient := xray.NewClient(config.Xray.BaseURL, tokens,
		xray.WithLogger(logger),
		xray.WithRateLimit(config.Xray.RateLimit))
	xrayService := xray.NewService(gqlClient, logger)

	jiraClient := jira.NewClient(config.Jira.BaseURL, config.Jira.Username, config.Jira.APIToken,
		jira.WithLogger(logger))
	lookupService := jira.NewLookupService(jiraClient, logger)
	linkService := jira.NewLinkTypeService(jiraClient, config.Jira.LinkTypeName, logger)

	orchestrator := testcases.NewOrchestrator(xrayService, lookupService, linkService, config.Jira.BaseURL, logger)
	creationService := testcases.NewService(synthesis.NewService(), orchestrator, lookupService, logger)

	ctx := context.Background()

	switch args[0] {
	case "create":
		runCreate(ctx, creationService, args[1:])
	case "get":
		runGet(ctx, xrayService, args[1:])
	case "runs":
		runRuns(ctx, xrayService, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}
}

func runCreate(ctx context.Context, creationService *testcases.Service, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	project := fs.String("project", config.Jira.ProjectKey, "Jira project key for the test issue")
	story := fs.String("story", "", "Requirement issue key or browse URL")
	text := fs.String("text", "", "Free-text requirement")
	requirements := fs.String("requirements", "", "Additional requirements")
	fs.Parse(args)

	if *story == "" && *text == "" {
		fmt.Fprintln(os.Stderr, "create: either -story or -text is required")
		os.Exit(2)
	}

	var err error
	if *story != "" {
		created, cerr := creationService.CreateFromUserStory(ctx, *story, *requirements, *project)
		if cerr == nil {
			fmt.Printf("Created %s (%d steps, %d preconditions, linked=%v)\n%s\n",
				created.Key, created.StepsCreated, created.PreconditionsCreated, created.UserStoryLinked, created.URL)
			return
		}
		err = cerr
	} else {
		created, cerr := creationService.CreateFromText(ctx, *text, *requirements, *project, "")
		if cerr == nil {
			fmt.Printf("Created %s (%d steps, %d preconditions)\n%s\n",
				created.Key, created.StepsCreated, created.PreconditionsCreated, created.URL)
			return
		}
		err = cerr
	}

	logger.Fatal().Err(err).Msg("Test case creation failed")
}

func runGet(ctx context.Context, xrayService *xray.Service, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "get: exactly one issue id is required")
		os.Exit(2)
	}

	test, err := xrayService.GetTest(ctx, args[0])
	if err != nil {
		logger.Fatal().Err(err).Str("issue_id", args[0]).Msg("Failed to fetch test")
	}

	label := test.IssueID
	if test.Jira.Parsed() && test.Jira.Ref.Key != "" {
		label = fmt.Sprintf("%s (%s)", test.Jira.Ref.Key, test.Jira.Ref.Summary)
	}
	fmt.Printf("Test %s, %d steps\n", label, len(test.Steps))
	for _, step := range test.Steps {
		fmt.Printf("  %s\n", step.Action)
	}
}

func runRuns(ctx context.Context, xrayService *xray.Service, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "runs: exactly one issue id is required")
		os.Exit(2)
	}

	runs, err := xrayService.GetTestRuns(ctx, args[0], 10)
	if err != nil {
		logger.Fatal().Err(err).Str("issue_id", args[0]).Msg("Failed to fetch test runs")
	}

	fmt.Printf("%d runs\n", len(runs))
	for _, run := range runs {
		fmt.Printf("  %s %s\n", run.Status, run.StartedOn)
	}
}
