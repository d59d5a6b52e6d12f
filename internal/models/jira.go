package models

// ResolvedIssue is the resolution of a human-facing issue key (or browse
// URL) to the tracker's internal numeric identifier and base URL.
type ResolvedIssue struct {
	NumericID string `json:"numericId"`
	Key       string `json:"key"`
	BaseURL   string `json:"baseUrl"`
}

// FetchedIssue is a Jira issue fetched for use as synthesis input, with
// the description already flattened to plain text.
type FetchedIssue struct {
	Key         string `json:"key"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Status      string `json:"status"`
	IssueType   string `json:"issueType"`
}

// LinkType is a directional issue relationship type discovered from the
// tracker's catalog. Discovered per operation, never cached across
// requests since tracker admins can rename types without notice.
type LinkType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

// IssueComment is a single comment on a Jira issue.
type IssueComment struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Body    string `json:"body"`
	Created string `json:"created"`
}
