package jira

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/ternarybob/arbor"
)

// FlattenDescription flattens a Jira description field to plain text. The
// field arrives as a plain string on API v2 and as an ADF document object
// on newer deployments; anything else degrades to an empty string.
func FlattenDescription(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}
	return FlattenADF(doc)
}

// FlattenADF extracts the plain text of an Atlassian Document Format node
// tree. Block-level nodes contribute line breaks; inline nodes contribute
// their text content.
func FlattenADF(node map[string]any) string {
	var sb strings.Builder
	flattenNode(node, &sb)
	return strings.TrimSpace(sb.String())
}

var blockNodeTypes = map[string]bool{
	"paragraph":   true,
	"heading":     true,
	"listItem":    true,
	"codeBlock":   true,
	"blockquote":  true,
	"tableRow":    true,
	"rule":        true,
	"mediaSingle": true,
}

func flattenNode(node map[string]any, sb *strings.Builder) {
	nodeType, _ := node["type"].(string)

	if text, ok := node["text"].(string); ok && nodeType == "text" {
		sb.WriteString(text)
	}

	if nodeType == "hardBreak" {
		sb.WriteString("\n")
	}

	if content, ok := node["content"].([]any); ok {
		for _, child := range content {
			childNode, ok := child.(map[string]any)
			if !ok {
				continue
			}
			flattenNode(childNode, sb)
		}
	}

	if blockNodeTypes[nodeType] {
		sb.WriteString("\n")
	}
}

// htmlTagRe strips tags for the fallback path when markdown conversion
// fails on a rendered HTML body.
var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ConvertRenderedBody converts a rendered (HTML) Jira field body to
// markdown, falling back to tag stripping when the conversion fails or
// produces empty output.
func ConvertRenderedBody(htmlBody, baseURL string, logger arbor.ILogger) string {
	if htmlBody == "" {
		return ""
	}

	converter := md.NewConverter(baseURL, true, nil)
	converted, err := converter.ConvertString(htmlBody)
	if err != nil {
		logger.Warn().Err(err).Msg("HTML to markdown conversion failed, stripping tags")
		return stripHTMLTags(htmlBody)
	}

	if strings.TrimSpace(converted) == "" {
		return stripHTMLTags(htmlBody)
	}

	return strings.TrimSpace(converted)
}

func stripHTMLTags(in string) string {
	stripped := htmlTagRe.ReplaceAllString(in, " ")
	collapsed := whitespaceRe.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(html.UnescapeString(collapsed))
}
