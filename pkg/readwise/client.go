// Package readwise is a small client for the Readwise Reader document API.
package readwise

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/athapong/workdesk-mcp/pkg/metrics"
)

// DefaultBaseURL is the Reader API root.
const DefaultBaseURL = "https://readwise.io/api/v3"

// ErrNotFound is returned by GetDocument when no document has the given id.
var ErrNotFound = errors.New("document not found")

// ListParams filters the list endpoint. Zero values are omitted.
type ListParams struct {
	ID              string `json:"id"`
	UpdatedAfter    string `json:"updatedAfter"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	PageCursor      string `json:"pageCursor"`
	WithHTMLContent bool   `json:"withHtmlContent"`
}

// Validate checks the enumerated filters.
func (p ListParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Location, validation.In(anySlice(Locations)...)),
		validation.Field(&p.Category, validation.In(anySlice(Categories)...)),
	)
}

// Query encodes the params with the API's parameter names.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("id", p.ID)
	set("updatedAfter", p.UpdatedAfter)
	set("location", p.Location)
	set("category", p.Category)
	set("pageCursor", p.PageCursor)
	if p.WithHTMLContent {
		q.Set("withHtmlContent", strconv.FormatBool(true))
	}
	return q
}

// Client calls the Reader API with token auth.
type Client struct {
	baseURL string
	token   string
	http    *retryablehttp.Client
}

// NewClient creates a client. A nil httpClient gets retryablehttp defaults.
func NewClient(baseURL, token string, httpClient *retryablehttp.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = retryablehttp.NewClient()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

// ListDocuments fetches one page of documents.
func (c *Client) ListDocuments(ctx context.Context, params ListParams) (*DocumentList, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid list parameters")
	}

	endpoint := c.baseURL + "/list/"
	if q := params.Query().Encode(); q != "" {
		endpoint += "?" + q
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("readwise").Inc()
		return nil, errors.Wrap(err, "failed to fetch documents")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamErrors.WithLabelValues("readwise").Inc()
		return nil, errors.Errorf("failed to fetch documents: HTTP error! status: %d (endpoint: %s)", resp.StatusCode, endpoint)
	}

	var list DocumentList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, errors.Wrap(err, "failed to decode documents")
	}
	return &list, nil
}

// GetDocument fetches a single document by id.
func (c *Client) GetDocument(ctx context.Context, id string, withHTML bool) (*Document, error) {
	if id == "" {
		return nil, errors.New("document id is required")
	}
	list, err := c.ListDocuments(ctx, ListParams{ID: id, WithHTMLContent: withHTML})
	if err != nil {
		return nil, err
	}
	for i := range list.Results {
		if list.Results[i].ID == id {
			return &list.Results[i], nil
		}
	}
	return nil, ErrNotFound
}

// ConvertHTML fills Markdown from HTMLContent. Documents without HTML are left
// untouched.
func (d *Document) ConvertHTML() error {
	if d.HTMLContent == nil || *d.HTMLContent == "" {
		return nil
	}
	md, err := htmltomarkdown.ConvertString(*d.HTMLContent)
	if err != nil {
		return errors.Wrap(err, "failed to convert HTML to Markdown")
	}
	d.Markdown = md
	return nil
}

func anySlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
