package xray

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/probatio/internal/interfaces"
	"github.com/ternarybob/probatio/internal/models"
)

// Service exposes the Xray read and write operations on top of a
// GraphQLExecutor. Read flows decode the opaque `jira` blob through the
// tagged decoder; write flows treat a non-empty errors array as fatal for
// their own operation.
type Service struct {
	executor interfaces.GraphQLExecutor
	logger   arbor.ILogger
}

// NewService creates an Xray service.
func NewService(executor interfaces.GraphQLExecutor, logger arbor.ILogger) *Service {
	return &Service{
		executor: executor,
		logger:   logger,
	}
}

type testPayload struct {
	IssueID  string `json:"issueId"`
	TestType struct {
		Name string `json:"name"`
	} `json:"testType"`
	Jira  json.RawMessage `json:"jira"`
	Steps []struct {
		ID     string `json:"id"`
		Action string `json:"action"`
		Data   string `json:"data"`
		Result string `json:"result"`
	} `json:"steps"`
}

func (p *testPayload) toModel() models.XrayTest {
	test := models.XrayTest{
		IssueID:  p.IssueID,
		TestType: p.TestType.Name,
		Jira:     DecodeJiraBlob(p.Jira),
	}
	for _, s := range p.Steps {
		test.Steps = append(test.Steps, models.XrayStep{
			ID:     s.ID,
			Action: s.Action,
			Data:   s.Data,
			Result: s.Result,
		})
	}
	return test
}

// GetTest fetches one test entity by its issue ID.
func (s *Service) GetTest(ctx context.Context, issueID string) (*models.XrayTest, error) {
	if issueID == "" {
		return nil, &models.ValidationError{Field: "issueId", Reason: "is required"}
	}

	resp, err := s.executor.Execute(ctx, queryGetTest, map[string]any{"issueId": issueID})
	if err != nil {
		return nil, err
	}
	if resp.HasErrors() {
		return nil, &models.GraphQLError{Operation: "getTest", Messages: resp.ErrorMessages()}
	}

	var data struct {
		GetTest *testPayload `json:"getTest"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode getTest response: %w", err)
	}
	if data.GetTest == nil {
		return nil, fmt.Errorf("test %s not found", issueID)
	}

	test := data.GetTest.toModel()
	return &test, nil
}

// GetTests fetches tests matching a JQL filter.
func (s *Service) GetTests(ctx context.Context, jql string, limit int) ([]models.XrayTest, error) {
	if limit <= 0 {
		limit = 10
	}

	variables := map[string]any{"limit": limit}
	if jql != "" {
		variables["jql"] = jql
	}

	resp, err := s.executor.Execute(ctx, queryGetTests, variables)
	if err != nil {
		return nil, err
	}
	if resp.HasErrors() {
		return nil, &models.GraphQLError{Operation: "getTests", Messages: resp.ErrorMessages()}
	}

	var data struct {
		GetTests struct {
			Total   int           `json:"total"`
			Results []testPayload `json:"results"`
		} `json:"getTests"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode getTests response: %w", err)
	}

	tests := make([]models.XrayTest, 0, len(data.GetTests.Results))
	for i := range data.GetTests.Results {
		tests = append(tests, data.GetTests.Results[i].toModel())
	}
	return tests, nil
}

// GetTestRuns fetches runs for a test issue.
func (s *Service) GetTestRuns(ctx context.Context, testIssueID string, limit int) ([]models.XrayTestRun, error) {
	if testIssueID == "" {
		return nil, &models.ValidationError{Field: "testIssueId", Reason: "is required"}
	}
	if limit <= 0 {
		limit = 10
	}

	resp, err := s.executor.Execute(ctx, queryGetTestRuns, map[string]any{
		"testIssueIds": []string{testIssueID},
		"limit":        limit,
	})
	if err != nil {
		return nil, err
	}
	if resp.HasErrors() {
		return nil, &models.GraphQLError{Operation: "getTestRuns", Messages: resp.ErrorMessages()}
	}

	var data struct {
		GetTestRuns struct {
			Total   int `json:"total"`
			Results []struct {
				ID     string `json:"id"`
				Status struct {
					Name string `json:"name"`
				} `json:"status"`
				StartedOn  string `json:"startedOn"`
				FinishedOn string `json:"finishedOn"`
				Test       struct {
					IssueID string          `json:"issueId"`
					Jira    json.RawMessage `json:"jira"`
				} `json:"test"`
			} `json:"results"`
		} `json:"getTestRuns"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode getTestRuns response: %w", err)
	}

	runs := make([]models.XrayTestRun, 0, len(data.GetTestRuns.Results))
	for _, r := range data.GetTestRuns.Results {
		runs = append(runs, models.XrayTestRun{
			ID:         r.ID,
			Status:     r.Status.Name,
			StartedOn:  r.StartedOn,
			FinishedOn: r.FinishedOn,
			TestIssue:  DecodeJiraBlob(r.Test.Jira),
		})
	}
	return runs, nil
}

// CreatePrecondition creates one precondition entity and returns its issue
// ID. A non-empty errors array is fatal for this item only; the caller
// decides whether to continue with the remaining items.
func (s *Service) CreatePrecondition(ctx context.Context, pre models.Precondition, projectKey string) (string, error) {
	resp, err := s.executor.Execute(ctx, mutationCreatePrecondition, map[string]any{
		"definition": pre.Description,
		"summary":    pre.Condition,
		"project":    projectKey,
	})
	if err != nil {
		return "", err
	}
	if resp.HasErrors() {
		return "", &models.GraphQLError{Operation: "createPrecondition", Messages: resp.ErrorMessages()}
	}

	var data struct {
		CreatePrecondition struct {
			Precondition struct {
				IssueID string `json:"issueId"`
			} `json:"precondition"`
			Warnings []string `json:"warnings"`
		} `json:"createPrecondition"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to decode createPrecondition response: %w", err)
	}

	for _, w := range data.CreatePrecondition.Warnings {
		s.logger.Warn().Str("condition", pre.Condition).Str("warning", w).Msg("Precondition created with warning")
	}

	if data.CreatePrecondition.Precondition.IssueID == "" {
		return "", fmt.Errorf("createPrecondition returned no issue id")
	}
	return data.CreatePrecondition.Precondition.IssueID, nil
}

// CreateTest creates the test issue with its ordered steps and the given
// precondition references embedded in a single mutation. A missing data
// payload or a non-empty errors array fails the call: there is no partial
// test-issue state to recover.
func (s *Service) CreateTest(ctx context.Context, content models.TestCaseContent, projectKey string, preconditionIDs []string) (*models.ExternalIssueRef, error) {
	steps := make([]map[string]any, 0, len(content.Steps))
	for _, step := range content.Steps {
		steps = append(steps, map[string]any{
			"action": step.Action,
			"data":   step.Data,
			"result": step.ExpectedResult,
		})
	}

	resp, err := s.executor.Execute(ctx, mutationCreateTest, map[string]any{
		"summary":              content.Summary,
		"description":          content.Description,
		"project":              projectKey,
		"steps":                steps,
		"preconditionIssueIds": preconditionIDs,
	})
	if err != nil {
		return nil, err
	}
	if resp.HasErrors() {
		return nil, &models.GraphQLError{Operation: "createTest", Messages: resp.ErrorMessages()}
	}

	var data struct {
		CreateTest struct {
			Test *struct {
				IssueID string          `json:"issueId"`
				Jira    json.RawMessage `json:"jira"`
			} `json:"test"`
			Warnings []string `json:"warnings"`
		} `json:"createTest"`
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("createTest returned no data payload")
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode createTest response: %w", err)
	}
	if data.CreateTest.Test == nil {
		return nil, fmt.Errorf("createTest returned no test entity")
	}

	for _, w := range data.CreateTest.Warnings {
		s.logger.Warn().Str("summary", content.Summary).Str("warning", w).Msg("Test created with warning")
	}

	ref := &models.ExternalIssueRef{IssueID: data.CreateTest.Test.IssueID}
	if blob := DecodeJiraBlob(data.CreateTest.Test.Jira); blob.Parsed() {
		ref.Key = blob.Ref.Key
		ref.Summary = blob.Ref.Summary
		ref.Status = blob.Ref.Status
		if blob.Ref.IssueID != "" {
			ref.IssueID = blob.Ref.IssueID
		}
	}
	return ref, nil
}

// AddTestStep appends a single step to an existing test.
func (s *Service) AddTestStep(ctx context.Context, testIssueID string, step models.TestStep) error {
	resp, err := s.executor.Execute(ctx, mutationAddTestStep, map[string]any{
		"issueId": testIssueID,
		"action":  step.Action,
		"data":    step.Data,
		"result":  step.ExpectedResult,
	})
	if err != nil {
		return err
	}
	if resp.HasErrors() {
		return &models.GraphQLError{Operation: "addTestStep", Messages: resp.ErrorMessages()}
	}
	return nil
}

// AddTestPreconditions attaches existing preconditions to a test.
func (s *Service) AddTestPreconditions(ctx context.Context, testIssueID string, preconditionIDs []string) error {
	resp, err := s.executor.Execute(ctx, mutationAddTestPrecondition, map[string]any{
		"issueId":              testIssueID,
		"preconditionIssueIds": preconditionIDs,
	})
	if err != nil {
		return err
	}
	if resp.HasErrors() {
		return &models.GraphQLError{Operation: "addTestPrecondition", Messages: resp.ErrorMessages()}
	}
	return nil
}
