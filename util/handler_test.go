package util

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return content.Text
}

func TestErrorGuard_PassesResultThrough(t *testing.T) {
	handler := ErrorGuard(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("fine"), nil
	})

	result, err := handler(context.Background(), request("ok_tool", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "fine", resultText(t, result))
}

func TestErrorGuard_ErrorBecomesErrorResult(t *testing.T) {
	handler := ErrorGuard(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.Wrap(errors.New("401 Unauthorized"), "failed to get issue")
	})

	result, err := handler(context.Background(), request("failing_tool", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "failed to get issue: 401 Unauthorized", resultText(t, result))
}

func TestErrorGuard_RecoversPanic(t *testing.T) {
	handler := ErrorGuard(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		panic("JIRA_HOST is not set")
	})

	result, err := handler(context.Background(), request("panicking_tool", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "JIRA_HOST is not set")
}

func TestDecodeArguments(t *testing.T) {
	type params struct {
		JQL        string   `json:"jql"`
		StartAt    int      `json:"startAt"`
		MaxResults int      `json:"maxResults,omitempty"`
		Fields     []string `json:"fields"`
		Markdown   bool     `json:"asMarkdown"`
	}

	var p params
	err := DecodeArguments(request("t", map[string]any{
		"jql":        "project = KP",
		"startAt":    float64(10),
		"maxResults": "25",
		"fields":     []any{"summary", "status"},
		"asMarkdown": "true",
	}), &p)
	require.NoError(t, err)

	assert.Equal(t, params{
		JQL:        "project = KP",
		StartAt:    10,
		MaxResults: 25,
		Fields:     []string{"summary", "status"},
		Markdown:   true,
	}, p)
}

func TestDecodeArguments_Invalid(t *testing.T) {
	var p struct {
		StartAt int `json:"startAt"`
	}
	err := DecodeArguments(request("t", map[string]any{"startAt": "ten"}), &p)
	assert.Error(t, err)
}

func TestNewToolResultJSON(t *testing.T) {
	result, err := NewToolResultJSON(map[string]any{"success": true})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"success\": true\n}", resultText(t, result))
}

func TestSetLogLevel(t *testing.T) {
	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, "debug", Logger.GetLevel().String())
	assert.Error(t, SetLogLevel("loud"))
	require.NoError(t, SetLogLevel("info"))
}
