package jira

import (
	"encoding/json"
	"testing"
)

func TestFlattenDescription(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain string",
			raw:  `"Simple description"`,
			want: "Simple description",
		},
		{
			name: "adf paragraphs",
			raw: `{"type":"doc","version":1,"content":[
				{"type":"paragraph","content":[{"type":"text","text":"First line."}]},
				{"type":"paragraph","content":[{"type":"text","text":"Second line."}]}
			]}`,
			want: "First line.\nSecond line.",
		},
		{
			name: "adf with hard break and nested list",
			raw: `{"type":"doc","content":[
				{"type":"paragraph","content":[
					{"type":"text","text":"before"},
					{"type":"hardBreak"},
					{"type":"text","text":"after"}
				]},
				{"type":"bulletList","content":[
					{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"item one"}]}]}
				]}
			]}`,
			want: "before\nafter\nitem one",
		},
		{
			name: "null",
			raw:  `null`,
			want: "",
		},
		{
			name: "unparseable",
			raw:  `[1,2,3]`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlattenDescription(json.RawMessage(tt.raw))
			if got != tt.want {
				t.Errorf("FlattenDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
