package models

import "encoding/json"

// GraphQLErrorItem is one entry of a GraphQL top-level errors array.
type GraphQLErrorItem struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// GraphQLResponse is the parsed body of a GraphQL call. Per GraphQL
// convention partial data can co-exist with errors, so the client returns
// both and callers decide whether a non-empty Errors array is fatal.
type GraphQLResponse struct {
	Data   json.RawMessage    `json:"data"`
	Errors []GraphQLErrorItem `json:"errors,omitempty"`
}

// HasErrors reports whether the response carries a non-empty top-level
// errors array.
func (r *GraphQLResponse) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// ErrorMessages returns the messages of the errors array.
func (r *GraphQLResponse) ErrorMessages() []string {
	if r == nil {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// ExternalIssueRef is the read projection of the Jira issue embedded in an
// Xray entity's opaque `jira` blob.
type ExternalIssueRef struct {
	IssueID string `json:"id"`
	Key     string `json:"key"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
	URL     string `json:"url"`
}

// JiraBlobResult is the tagged outcome of decoding the opaque `jira` field
// Xray returns on its entities. Ref is set when the blob decoded cleanly;
// otherwise Raw retains the original value so callers can tell "no linked
// issue" apart from "malformed payload".
type JiraBlobResult struct {
	Ref *ExternalIssueRef `json:"ref,omitempty"`
	Raw string            `json:"raw,omitempty"`
}

// Parsed reports whether the blob decoded into an issue reference.
func (b JiraBlobResult) Parsed() bool {
	return b.Ref != nil
}

// XrayStep is a test step as stored on an Xray test entity.
type XrayStep struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Data   string `json:"data"`
	Result string `json:"result"`
}

// XrayTest is a test entity read back from the Xray GraphQL service.
type XrayTest struct {
	IssueID  string         `json:"issueId"`
	TestType string         `json:"testType"`
	Jira     JiraBlobResult `json:"jira"`
	Steps    []XrayStep     `json:"steps,omitempty"`
}

// XrayTestRun is a test run entity read back from the Xray GraphQL service.
type XrayTestRun struct {
	ID         string         `json:"id"`
	Status     string         `json:"status"`
	TestIssue  JiraBlobResult `json:"testIssue"`
	StartedOn  string         `json:"startedOn"`
	FinishedOn string         `json:"finishedOn"`
}

// ArtifactOption is one entry of the fixed menu returned when a retrieval
// request does not say which artifact type it wants.
type ArtifactOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}
