package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/athapong/workdesk-mcp/tools"
)

const issueURIPrefix = "jira://issue/"

// RegisterJiraResource exposes Jira issues as Markdown documents under
// jira://issue/{key}.
func RegisterJiraResource(s *server.MCPServer) {
	registerJiraResource(s, nil)
}

func registerJiraResource(s *server.MCPServer, client tools.JiraClientFunc) {
	template := mcp.NewResourceTemplate(
		issueURIPrefix+"{key}",
		"Jira issue",
		mcp.WithTemplateDescription("A Jira issue rendered as Markdown: the key, summary and description"),
		mcp.WithTemplateMIMEType("text/markdown"),
	)
	s.AddResourceTemplate(template, issueResourceHandler(client))
}

func issueResourceHandler(client tools.JiraClientFunc) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		key := issueKey(request)
		if key == "" {
			return nil, fmt.Errorf("issue key is required in %q", request.Params.URI)
		}

		md, err := tools.IssueMarkdown(ctx, client, key)
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/markdown",
				Text:     md,
			},
		}, nil
	}
}

// issueKey reads the {key} template variable, falling back to the URI path.
func issueKey(request mcp.ReadResourceRequest) string {
	switch v := request.Params.Arguments["key"].(type) {
	case string:
		return strings.TrimSpace(v)
	case []string:
		if len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
	}
	if rest, ok := strings.CutPrefix(request.Params.URI, issueURIPrefix); ok {
		return strings.TrimSpace(rest)
	}
	return ""
}
