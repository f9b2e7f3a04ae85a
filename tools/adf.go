package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/athapong/workdesk-mcp/pkg/adf"
	"github.com/athapong/workdesk-mcp/pkg/metrics"
	"github.com/athapong/workdesk-mcp/util"
)

var adfToolNames = []string{"adf_to_markdown"}

// RegisterADFTool registers the standalone ADF conversion tool.
func RegisterADFTool(s *server.MCPServer) {
	tool := mcp.NewTool("adf_to_markdown",
		mcp.WithDescription("Convert an Atlassian Document Format (ADF) document, as used by Jira and Confluence rich text fields, to Markdown"),
		mcp.WithString("document", mcp.Required(), mcp.Description("The ADF document as a JSON string, e.g. {\"type\":\"doc\",\"version\":1,\"content\":[...]}")),
	)
	s.AddTool(tool, util.ErrorGuard(adfToMarkdownHandler))
}

func adfToMarkdownHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := request.GetArguments()["document"]
	if !ok || raw == nil {
		return nil, errors.New("document argument is required")
	}

	var data []byte
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, errors.New("document argument is required")
		}
		data = []byte(v)
	default:
		// Clients that send the document as a JSON object instead of a string.
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "invalid document")
		}
		data = encoded
	}

	doc, err := adf.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ADF document")
	}
	metrics.ADFConversions.WithLabelValues("tool").Inc()
	return mcp.NewToolResultText(adf.Convert(doc)), nil
}
