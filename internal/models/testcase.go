package models

// TestStep is a single ordered step inside a test case. StepNumber is
// 1-based and matches the step's position in the containing slice.
type TestStep struct {
	StepNumber     int    `json:"stepNumber"`
	Action         string `json:"action"`
	Data           string `json:"data"`
	ExpectedResult string `json:"expectedResult"`
}

// Precondition is a reusable prerequisite that maps to its own Xray entity
// once created.
type Precondition struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Description string `json:"description"`
}

// TestDataCategory groups example test data under a named category.
type TestDataCategory struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// AcceptanceCriterion is a single acceptance criterion attached to a
// synthesized test case.
type AcceptanceCriterion struct {
	ID          string `json:"id"`
	Criterion   string `json:"criterion"`
	Description string `json:"description"`
}

// TestCaseContent is the structured test-case document produced by the
// synthesizer. It is built once per request and never mutated afterwards.
type TestCaseContent struct {
	Summary            string                `json:"summary"`
	Description        string                `json:"description"`
	TestObjective      string                `json:"testObjective"`
	Steps              []TestStep            `json:"steps"`
	Preconditions      []Precondition        `json:"preconditions"`
	ExpectedResults    []string              `json:"expectedResults"`
	TestData           []TestDataCategory    `json:"testData"`
	AcceptanceCriteria []AcceptanceCriterion `json:"acceptanceCriteria"`
}

// PreconditionOutcome records the per-item result of a precondition
// creation attempt. Failed items carry the error text so the caller can
// see which items were skipped, not just how many.
type PreconditionOutcome struct {
	Condition string `json:"condition"`
	IssueID   string `json:"issueId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Succeeded reports whether the precondition was created.
func (o PreconditionOutcome) Succeeded() bool {
	return o.Error == ""
}

// CreationResult is the terminal artifact of a createTestCase run. It is
// produced only when the test issue itself was created; failures in the
// optional stages show up as reduced counts and retained failure records.
type CreationResult struct {
	IssueID              string                `json:"issueId"`
	Key                  string                `json:"key"`
	URL                  string                `json:"url"`
	StepsCreated         int                   `json:"stepsCreated"`
	PreconditionsCreated int                   `json:"preconditionsCreated"`
	FailedPreconditions  []PreconditionOutcome `json:"failedPreconditions,omitempty"`
	UserStoryLinked      bool                  `json:"userStoryLinked"`
}
