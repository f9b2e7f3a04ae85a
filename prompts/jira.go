package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func RegisterJiraPrompts(s *server.MCPServer) {
	prompt := mcp.NewPrompt("summarize_issue",
		mcp.WithPromptDescription("Summarize a Jira issue and its discussion"),
		mcp.WithArgument("issue_key", mcp.RequiredArgument(), mcp.ArgumentDescription("The Jira issue key, e.g. PROJ-123")),
	)
	s.AddPrompt(prompt, summarizeIssueHandler)
}

func summarizeIssueHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	issueKey := strings.TrimSpace(request.Params.Arguments["issue_key"])
	if issueKey == "" {
		return nil, fmt.Errorf("issue_key argument is required")
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Summary of %s", issueKey),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf("Use jira_get_issue to read %[1]s and jira_get_issue_comments to read its comments. "+
						"Summarize the problem, the current status and any decisions made in the comments, then list open questions.", issueKey),
				},
			},
		},
	}, nil
}
