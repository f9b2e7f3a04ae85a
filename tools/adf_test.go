package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestADFToMarkdown(t *testing.T) {
	s := newTestServer()
	RegisterADFTool(s)

	tests := []struct {
		name     string
		document any
		want     string
	}{
		{
			name:     "json string",
			document: `{"version":1,"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hi","marks":[{"type":"strong"}]}]}]}`,
			want:     "**hi**\n\n",
		},
		{
			name: "json object",
			document: map[string]any{
				"version": float64(1),
				"type":    "doc",
				"content": []any{
					map[string]any{"type": "rule"},
				},
			},
			want: "---\n",
		},
		{
			name:     "empty document",
			document: `{"version":1,"type":"doc","content":[]}`,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, s, "adf_to_markdown", map[string]any{"document": tt.document})
			assert.False(t, result.IsError)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestADFToMarkdown_Invalid(t *testing.T) {
	s := newTestServer()
	RegisterADFTool(s)

	result := callTool(t, s, "adf_to_markdown", map[string]any{"document": "{not json"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid ADF document")

	result = callTool(t, s, "adf_to_markdown", map[string]any{})
	assert.True(t, result.IsError)
	assert.Equal(t, "document argument is required", resultText(t, result))
}
