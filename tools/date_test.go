package tools

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/workdesk-mcp/pkg/date"
)

func fixedDateService(tz string) *date.Service {
	now := time.Date(2024, time.January, 31, 15, 0, 0, 0, time.UTC)
	return date.NewService(date.Config{Timezone: tz}, &date.Resolver{Now: func() time.Time { return now }})
}

func TestResolveDate(t *testing.T) {
	s := newTestServer()
	registerDateTools(s, fixedDateService("UTC"))

	tests := []struct {
		args map[string]any
		want date.Result
	}{
		{
			args: map[string]any{"expression": "tomorrow"},
			want: date.Result{Success: true, Date: "2024-02-01", Timezone: "UTC", Confidence: 1},
		},
		{
			args: map[string]any{"expression": "today", "timezone": "Asia/Tokyo"},
			want: date.Result{Success: true, Date: "2024-02-01", Timezone: "Asia/Tokyo", Confidence: 1},
		},
		{
			args: map[string]any{"expression": "next week"},
			want: date.Result{Success: true, Date: "2024-02-05", Timezone: "UTC", Confidence: 1},
		},
	}

	for _, tt := range tests {
		result := callTool(t, s, "resolve_date", tt.args)
		require.False(t, result.IsError)

		var got date.Result
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &got))
		assert.Equal(t, tt.want, got)
	}
}

func TestResolveDate_Failure(t *testing.T) {
	s := newTestServer()
	registerDateTools(s, fixedDateService("UTC"))

	result := callTool(t, s, "resolve_date", map[string]any{"expression": "someday"})
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, `"success": false`)
	assert.Contains(t, text, `"confidence": 0`)
	assert.NotContains(t, text, `"date"`)

	result = callTool(t, s, "resolve_date", map[string]any{"expression": "today", "timezone": "Mars/Olympus"})
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid timezone")

	result = callTool(t, s, "resolve_date", map[string]any{})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "expression: cannot be blank")
}

func TestListTimezones(t *testing.T) {
	s := newTestServer()
	registerDateTools(s, fixedDateService("UTC"))

	result := callTool(t, s, "date_list_timezones", nil)
	zones := strings.Split(resultText(t, result), "\n")
	assert.Equal(t, date.ValidTimezones(), zones)
	assert.Contains(t, zones, "Europe/London")
}

func TestRegisterDateTools_BadTimezone(t *testing.T) {
	t.Setenv("TIME_ZONE", "Nowhere/Special")
	err := RegisterDateTools(newTestServer())
	require.Error(t, err)
	assert.ErrorIs(t, err, date.ErrInvalidTimezone)
}
