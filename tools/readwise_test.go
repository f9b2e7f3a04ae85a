package tools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/workdesk-mcp/pkg/readwise"
)

const readerList = `{"count":1,"nextPageCursor":null,"results":[
 {"id":"doc1","title":"Go proverbs","category":"article","location":"later","html_content":"<h1>Proverbs</h1><p>Clear is better than <em>clever</em>.</p>"}
]}`

func newReadwiseServer(t *testing.T) (*readwiseTools, *url.Values) {
	t.Helper()
	var lastQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token rw-token", r.Header.Get("Authorization"))
		lastQuery = r.URL.Query()
		_, _ = w.Write([]byte(readerList))
	}))
	t.Cleanup(srv.Close)

	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	client := readwise.NewClient(srv.URL, "rw-token", rc)

	return &readwiseTools{
		client: func() (*readwise.Client, error) { return client, nil },
		dates:  fixedDateService("UTC"),
	}, &lastQuery
}

func TestReadwiseListDocuments(t *testing.T) {
	rt, query := newReadwiseServer(t)
	s := newTestServer()
	registerReadwiseTools(s, rt.client, rt.dates)

	result := callTool(t, s, "readwise_list_documents", map[string]any{
		"location":        "later",
		"updatedAfter":    "3 days ago",
		"withHtmlContent": true,
	})
	require.False(t, result.IsError, resultText(t, result))

	assert.Equal(t, "later", query.Get("location"))
	assert.Equal(t, "2024-01-28T00:00:00Z", query.Get("updatedAfter"))
	assert.Equal(t, "true", query.Get("withHtmlContent"))

	var list readwise.DocumentList
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &list))
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Results, 1)
	assert.Equal(t, "doc1", list.Results[0].ID)
}

func TestReadwiseListDocuments_UpdatedAfter(t *testing.T) {
	rt, _ := newReadwiseServer(t)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z"},
		{"2024-01-01", "2024-01-01"},
		{"yesterday", "2024-01-30T00:00:00Z"},
		{"last month", "2023-12-01T00:00:00Z"},
	}
	for _, tt := range tests {
		got, err := rt.normalizeUpdatedAfter(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := rt.normalizeUpdatedAfter("whenever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid updatedAfter")
}

func TestReadwiseListDocuments_InvalidLocation(t *testing.T) {
	rt, _ := newReadwiseServer(t)
	s := newTestServer()
	registerReadwiseTools(s, rt.client, rt.dates)

	result := callTool(t, s, "readwise_list_documents", map[string]any{"location": "inbox"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "location")
}

func TestReadwiseGetDocument(t *testing.T) {
	rt, query := newReadwiseServer(t)
	s := newTestServer()
	registerReadwiseTools(s, rt.client, rt.dates)

	result := callTool(t, s, "readwise_get_document", map[string]any{"documentId": "doc1", "asMarkdown": true})
	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, "doc1", query.Get("id"))

	var doc readwise.Document
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &doc))
	assert.Equal(t, "Go proverbs", doc.Title)
	assert.Contains(t, doc.Markdown, "# Proverbs")
	assert.Contains(t, doc.Markdown, "Clear is better than *clever*.")
	assert.Nil(t, doc.HTMLContent)
}

func TestReadwiseGetDocument_NotFound(t *testing.T) {
	rt, _ := newReadwiseServer(t)
	s := newTestServer()
	registerReadwiseTools(s, rt.client, rt.dates)

	result := callTool(t, s, "readwise_get_document", map[string]any{"documentId": "missing"})
	assert.True(t, result.IsError)
	assert.Equal(t, "document not found", resultText(t, result))

	result = callTool(t, s, "readwise_get_document", map[string]any{})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "documentId: cannot be blank")
}
