package tools

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/athapong/workdesk-mcp/pkg/date"
	"github.com/athapong/workdesk-mcp/pkg/readwise"
	"github.com/athapong/workdesk-mcp/services"
	"github.com/athapong/workdesk-mcp/util"
)

var readwiseToolNames = []string{"readwise_list_documents", "readwise_get_document"}

// ReadwiseClientFunc supplies the Reader client used by the tool handlers.
type ReadwiseClientFunc func() (*readwise.Client, error)

type readwiseTools struct {
	client ReadwiseClientFunc
	dates  *date.Service
}

// RegisterReadwiseTools registers the Readwise Reader tools to the server
func RegisterReadwiseTools(s *server.MCPServer) {
	registerReadwiseTools(s, services.ReadwiseClient, date.NewService(date.Config{}, nil))
}

func registerReadwiseTools(s *server.MCPServer, client ReadwiseClientFunc, dates *date.Service) {
	t := &readwiseTools{client: client, dates: dates}

	listTool := mcp.NewTool("readwise_list_documents",
		mcp.WithDescription("List documents from Readwise Reader"),
		mcp.WithString("updatedAfter", mcp.Description("Fetch only documents updated after this date. Accepts an ISO 8601 date or a relative expression such as '7 days ago'")),
		mcp.WithString("location", mcp.Enum(readwise.Locations...), mcp.Description("The document's location, could be one of: "+strings.Join(readwise.Locations, ", "))),
		mcp.WithString("category", mcp.Enum(readwise.Categories...), mcp.Description("The document's category, could be one of: "+strings.Join(readwise.Categories, ", "))),
		mcp.WithString("pageCursor", mcp.Description("A string returned by a previous request to this endpoint. Use it to get the next page of documents if there are too many for one request.")),
		mcp.WithBoolean("withHtmlContent", mcp.Description("Include the html_content field in each document's data. Enabling this may slightly increase request processing time.")),
	)
	s.AddTool(listTool, util.ErrorGuard(t.listHandler))

	getTool := mcp.NewTool("readwise_get_document",
		mcp.WithDescription("Get a specific document by ID from Readwise Reader"),
		mcp.WithString("documentId", mcp.Required(), mcp.Description("The document's unique id")),
		mcp.WithBoolean("asMarkdown", mcp.Description("Fetch the document's HTML content and return it converted to Markdown in a 'markdown' field")),
	)
	s.AddTool(getTool, util.ErrorGuard(t.getHandler))
}

type listDocumentsArgs struct {
	UpdatedAfter    string `json:"updatedAfter"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	PageCursor      string `json:"pageCursor"`
	WithHTMLContent bool   `json:"withHtmlContent"`
}

func (t *readwiseTools) listHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args listDocumentsArgs
	if err := util.DecodeArguments(request, &args); err != nil {
		return nil, err
	}

	updatedAfter, err := t.normalizeUpdatedAfter(args.UpdatedAfter)
	if err != nil {
		return nil, err
	}

	client, err := t.client()
	if err != nil {
		return nil, err
	}

	list, err := client.ListDocuments(ctx, readwise.ListParams{
		UpdatedAfter:    updatedAfter,
		Location:        args.Location,
		Category:        args.Category,
		PageCursor:      args.PageCursor,
		WithHTMLContent: args.WithHTMLContent,
	})
	if err != nil {
		return nil, err
	}
	return util.NewToolResultJSON(list)
}

type getDocumentArgs struct {
	DocumentID string `json:"documentId"`
	AsMarkdown bool   `json:"asMarkdown"`
}

func (a getDocumentArgs) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.DocumentID, validation.Required),
	)
}

func (t *readwiseTools) getHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args getDocumentArgs
	if err := decodeAndValidate(request, &args); err != nil {
		return nil, err
	}

	client, err := t.client()
	if err != nil {
		return nil, err
	}

	doc, err := client.GetDocument(ctx, args.DocumentID, args.AsMarkdown)
	if err != nil {
		return nil, err
	}
	if args.AsMarkdown {
		if err := doc.ConvertHTML(); err != nil {
			return nil, err
		}
		doc.HTMLContent = nil
	}
	return util.NewToolResultJSON(doc)
}

// normalizeUpdatedAfter passes ISO 8601 values through and resolves relative
// expressions to the start of that day in UTC.
func (t *readwiseTools) normalizeUpdatedAfter(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return value, nil
	}
	if _, err := time.Parse(date.Layout, value); err == nil {
		return value, nil
	}
	resolved, err := t.dates.ResolveTime(value, date.DefaultTimezone)
	if err != nil {
		return "", errors.Wrap(err, "invalid updatedAfter")
	}
	return resolved.UTC().Format(time.RFC3339), nil
}
