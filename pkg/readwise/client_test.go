package readwise

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listBody = `{
  "count": 2,
  "nextPageCursor": "c2",
  "results": [
    {"id": "a1", "title": "First", "category": "article", "location": "later", "tags": null, "site_name": null, "word_count": 120},
    {"id": "b2", "title": "Second", "category": "rss", "location": "new", "html_content": "<p>Hello <strong>world</strong></p>", "reading_progress": 0.5}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	return NewClient(srv.URL+"/", "secret", rc)
}

func TestListDocuments(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list/", r.URL.Path)
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listBody))
	})

	list, err := client.ListDocuments(context.Background(), ListParams{
		UpdatedAfter:    "2024-01-01T00:00:00Z",
		Location:        "later",
		Category:        "article",
		PageCursor:      "c1",
		WithHTMLContent: true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"updatedAfter":    "2024-01-01T00:00:00Z",
		"location":        "later",
		"category":        "article",
		"pageCursor":      "c1",
		"withHtmlContent": "true",
	}, gotQuery)

	assert.Equal(t, 2, list.Count)
	require.NotNil(t, list.NextPageCursor)
	assert.Equal(t, "c2", *list.NextPageCursor)
	require.Len(t, list.Results, 2)
	assert.Equal(t, "First", list.Results[0].Title)
	assert.Nil(t, list.Results[0].SiteName)
	require.NotNil(t, list.Results[1].ReadingProgress)
	assert.InDelta(t, 0.5, *list.Results[1].ReadingProgress, 1e-9)
}

func TestListDocuments_NoParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"count":0,"nextPageCursor":null,"results":[]}`))
	})

	list, err := client.ListDocuments(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Zero(t, list.Count)
	assert.Nil(t, list.NextPageCursor)
	assert.Empty(t, list.Results)
}

func TestListDocuments_InvalidParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})

	_, err := client.ListDocuments(context.Background(), ListParams{Location: "inbox"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid list parameters")
	assert.Contains(t, err.Error(), "location: must be a valid value")

	_, err = client.ListDocuments(context.Background(), ListParams{Category: "podcast"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category: must be a valid value")
}

func TestListDocuments_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListDocuments(context.Background(), ListParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status: 401")
}

func TestListDocuments_BadJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := client.ListDocuments(context.Background(), ListParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode documents")
}

func TestGetDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "b2", r.URL.Query().Get("id"))
		assert.Equal(t, "true", r.URL.Query().Get("withHtmlContent"))
		_, _ = w.Write([]byte(listBody))
	})

	doc, err := client.GetDocument(context.Background(), "b2", true)
	require.NoError(t, err)
	assert.Equal(t, "Second", doc.Title)

	require.NoError(t, doc.ConvertHTML())
	assert.Contains(t, doc.Markdown, "Hello **world**")
}

func TestGetDocument_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listBody))
	})

	_, err := client.GetDocument(context.Background(), "zz", false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = client.GetDocument(context.Background(), "", false)
	require.Error(t, err)
}

func TestConvertHTML_NoContent(t *testing.T) {
	doc := &Document{ID: "x"}
	require.NoError(t, doc.ConvertHTML())
	assert.Empty(t, doc.Markdown)
}
