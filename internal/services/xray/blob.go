package xray

import (
	"encoding/json"
	"strconv"

	"github.com/ternarybob/probatio/internal/models"
)

// jiraBlobFields is the loose shape of the `jira` field Xray embeds on its
// entities. Status arrives either as a plain string or as an object with a
// name depending on which fields were requested.
type jiraBlobFields struct {
	ID      json.RawMessage `json:"id"`
	Key     string          `json:"key"`
	Summary string          `json:"summary"`
	Status  json.RawMessage `json:"status"`
	Self    string          `json:"self"`
}

// DecodeJiraBlob decodes the opaque `jira` field of an Xray entity into a
// tagged result. A blob that fails to decode keeps its raw value so the
// caller can distinguish a malformed payload from an absent issue link.
func DecodeJiraBlob(raw json.RawMessage) models.JiraBlobResult {
	if len(raw) == 0 || string(raw) == "null" {
		return models.JiraBlobResult{}
	}

	payload := raw

	// The field sometimes arrives double-encoded as a JSON string literal.
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		payload = json.RawMessage(asString)
	}

	var fields jiraBlobFields
	if err := json.Unmarshal(payload, &fields); err != nil {
		return models.JiraBlobResult{Raw: string(raw)}
	}

	if fields.Key == "" && fields.Summary == "" && len(fields.ID) == 0 {
		return models.JiraBlobResult{Raw: string(raw)}
	}

	return models.JiraBlobResult{Ref: &models.ExternalIssueRef{
		IssueID: decodeScalar(fields.ID),
		Key:     fields.Key,
		Summary: fields.Summary,
		Status:  decodeStatus(fields.Status),
		URL:     fields.Self,
	}}
}

// decodeScalar renders a JSON scalar (string or number) as a string.
func decodeScalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return string(raw)
}

// decodeStatus accepts either a bare status string or {"name": ...}.
func decodeStatus(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var named struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &named); err == nil {
		return named.Name
	}
	return ""
}
