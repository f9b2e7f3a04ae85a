package tools

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEnabled(t *testing.T) {
	t.Setenv("ENABLE_TOOLS", "")
	assert.True(t, IsEnabled("jira"))
	assert.True(t, IsEnabled("readwise"))

	t.Setenv("ENABLE_TOOLS", "adf, date")
	assert.True(t, IsEnabled("adf"))
	assert.True(t, IsEnabled("date"))
	assert.False(t, IsEnabled("jira"))
}

func TestRegisterEnabled(t *testing.T) {
	t.Setenv("ENABLE_TOOLS", "adf,date")
	t.Setenv("TIME_ZONE", "")

	s := newTestServer()
	RegisterEnabled(s)

	assert.NotNil(t, s.GetTool("adf_to_markdown"))
	assert.NotNil(t, s.GetTool("resolve_date"))
	assert.NotNil(t, s.GetTool("date_list_timezones"))
	assert.Nil(t, s.GetTool("jira_get_issue"))
	assert.Nil(t, s.GetTool("readwise_list_documents"))
}

func TestRegisterEnabled_SkipsBrokenGroup(t *testing.T) {
	t.Setenv("ENABLE_TOOLS", "adf,date")
	t.Setenv("TIME_ZONE", "Nowhere/Special")

	s := newTestServer()
	RegisterEnabled(s)

	assert.NotNil(t, s.GetTool("adf_to_markdown"))
	assert.Nil(t, s.GetTool("resolve_date"))
}

func TestToolManager_List(t *testing.T) {
	t.Setenv("ENABLE_TOOLS", "adf")

	s := newTestServer()
	RegisterToolManagerTool(s)

	text := resultText(t, callTool(t, s, "tool_manager", map[string]any{"action": "list"}))
	assert.Contains(t, text, "- adf (ADF to Markdown conversion) [enabled]")
	assert.Contains(t, text, "- jira (Jira issue search, details and comments) [disabled]")
	assert.Contains(t, text, "Currently enabled tools:\n- adf\n")
}

func TestToolManager_EnableDisable(t *testing.T) {
	t.Setenv("ENABLE_TOOLS", "date")
	t.Setenv("TIME_ZONE", "")

	s := newTestServer()
	RegisterToolManagerTool(s)
	RegisterEnabled(s)
	require.Nil(t, s.GetTool("adf_to_markdown"))

	result := callTool(t, s, "tool_manager", map[string]any{"action": "enable", "tool_name": "adf"})
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, "Successfully enabled tool: adf", resultText(t, result))
	assert.Equal(t, "date,adf", os.Getenv("ENABLE_TOOLS"))
	assert.NotNil(t, s.GetTool("adf_to_markdown"))

	// enabling twice is a no-op
	callTool(t, s, "tool_manager", map[string]any{"action": "enable", "tool_name": "adf"})
	assert.Equal(t, "date,adf", os.Getenv("ENABLE_TOOLS"))

	result = callTool(t, s, "tool_manager", map[string]any{"action": "disable", "tool_name": "date"})
	assert.Equal(t, "Successfully disabled tool: date", resultText(t, result))
	assert.Equal(t, "adf", os.Getenv("ENABLE_TOOLS"))
	assert.Nil(t, s.GetTool("resolve_date"))
	assert.NotNil(t, s.GetTool("tool_manager"))
}

func TestToolManager_DisableFromAll(t *testing.T) {
	t.Setenv("ENABLE_TOOLS", "")

	s := newTestServer()
	RegisterToolManagerTool(s)
	RegisterADFTool(s)

	callTool(t, s, "tool_manager", map[string]any{"action": "disable", "tool_name": "adf"})
	assert.Equal(t, "jira,date,readwise", os.Getenv("ENABLE_TOOLS"))
	assert.Nil(t, s.GetTool("adf_to_markdown"))
}

func TestToolManager_Errors(t *testing.T) {
	s := newTestServer()
	RegisterToolManagerTool(s)

	result := callTool(t, s, "tool_manager", map[string]any{"action": "enable"})
	assert.True(t, result.IsError)
	assert.Equal(t, "tool_name is required for enable/disable actions", resultText(t, result))

	result = callTool(t, s, "tool_manager", map[string]any{"action": "enable", "tool_name": "gitlab"})
	assert.True(t, result.IsError)
	assert.Equal(t, "unknown tool group: gitlab", resultText(t, result))

	result = callTool(t, s, "tool_manager", map[string]any{"action": "purge"})
	assert.True(t, result.IsError)
}
