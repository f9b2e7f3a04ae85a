package tools

import (
	"context"
	"fmt"
	"time"

	v3 "github.com/ctreminiom/go-atlassian/jira/v3"
	"github.com/ctreminiom/go-atlassian/pkg/infra/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/athapong/workdesk-mcp/pkg/jirafmt"
	"github.com/athapong/workdesk-mcp/pkg/metrics"
	"github.com/athapong/workdesk-mcp/services"
	"github.com/athapong/workdesk-mcp/util"
)

const (
	jiraTimeout           = 15 * time.Second
	defaultJiraMaxResults = 50
)

var jiraToolNames = []string{"jira_search_issues", "jira_get_issue", "jira_get_issue_comments"}

// JiraClientFunc supplies the Jira client used by the tool handlers.
type JiraClientFunc func() (*v3.Client, error)

type jiraTools struct {
	client JiraClientFunc
}

// RegisterJiraTool registers the Jira tools to the server
func RegisterJiraTool(s *server.MCPServer) {
	registerJiraTools(s, services.JiraClient)
}

func registerJiraTools(s *server.MCPServer, client JiraClientFunc) {
	t := &jiraTools{client: client}

	searchTool := mcp.NewTool("jira_search_issues",
		mcp.WithDescription("Search Jira issues using JQL. Returns the search response as JSON with ADF descriptions converted to Markdown"),
		mcp.WithString("jql", mcp.Required(), mcp.Description("JQL query string (e.g., 'project = KP AND status = \"In Progress\"')")),
		mcp.WithNumber("startAt", mcp.Description("Starting index of the search results")),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of results to return (default 50)")),
		mcp.WithArray("fields", mcp.WithStringItems(), mcp.Description("List of fields to return")),
	)
	s.AddTool(searchTool, util.ErrorGuard(t.searchHandler))

	issueTool := mcp.NewTool("jira_get_issue",
		mcp.WithDescription("Get Jira issue details by key. The description is returned as Markdown"),
		mcp.WithString("issueKey", mcp.Required(), mcp.Description("Jira issue key (e.g., 'PROJECT-123')")),
		mcp.WithArray("fields", mcp.WithStringItems(), mcp.Description("List of fields to return")),
	)
	s.AddTool(issueTool, util.ErrorGuard(t.issueHandler))

	commentsTool := mcp.NewTool("jira_get_issue_comments",
		mcp.WithDescription("List the comments of a Jira issue with comment bodies converted to Markdown"),
		mcp.WithString("issueIdOrKey", mcp.Required(), mcp.Description("Jira issue id or key (e.g., 'PROJECT-123')")),
		mcp.WithNumber("startAt", mcp.Description("Starting index of the comments")),
		mcp.WithNumber("maxResults", mcp.Description("Maximum number of comments to return (default 50)")),
		mcp.WithString("orderBy", mcp.Description("Order by the created field, 'created' or '-created'")),
		mcp.WithArray("expand", mcp.WithStringItems(), mcp.Description("Extra information to include, e.g. 'renderedBody'")),
	)
	s.AddTool(commentsTool, util.ErrorGuard(t.commentsHandler))
}

type searchIssuesArgs struct {
	JQL        string   `json:"jql"`
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

func (a searchIssuesArgs) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.JQL, validation.Required),
		validation.Field(&a.StartAt, validation.Min(0)),
		validation.Field(&a.MaxResults, validation.Min(0)),
	)
}

func (t *jiraTools) searchHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args searchIssuesArgs
	if err := decodeAndValidate(request, &args); err != nil {
		return nil, err
	}
	if args.MaxResults == 0 {
		args.MaxResults = defaultJiraMaxResults
	}

	client, err := t.client()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, jiraTimeout)
	defer cancel()

	_, response, err := client.Issue.Search.Get(ctx, args.JQL, args.Fields, nil, args.StartAt, args.MaxResults, "")
	if err != nil {
		return nil, jiraError("failed to search issues", response, err)
	}

	out, err := jirafmt.FormatSearch(response.Bytes.Bytes())
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}

type getIssueArgs struct {
	IssueKey string   `json:"issueKey"`
	Fields   []string `json:"fields"`
}

func (a getIssueArgs) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.IssueKey, validation.Required),
	)
}

func (t *jiraTools) issueHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args getIssueArgs
	if err := decodeAndValidate(request, &args); err != nil {
		return nil, err
	}

	client, err := t.client()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, jiraTimeout)
	defer cancel()

	_, response, err := client.Issue.Get(ctx, args.IssueKey, args.Fields, nil)
	if err != nil {
		return nil, jiraError("failed to get issue", response, err)
	}

	out, err := jirafmt.FormatIssue(response.Bytes.Bytes())
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}

type issueCommentsArgs struct {
	IssueIdOrKey string   `json:"issueIdOrKey"`
	StartAt      int      `json:"startAt"`
	MaxResults   int      `json:"maxResults"`
	OrderBy      string   `json:"orderBy"`
	Expand       []string `json:"expand"`
}

func (a issueCommentsArgs) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.IssueIdOrKey, validation.Required),
		validation.Field(&a.StartAt, validation.Min(0)),
		validation.Field(&a.MaxResults, validation.Min(0)),
		validation.Field(&a.OrderBy, validation.In("created", "-created", "+created")),
	)
}

func (t *jiraTools) commentsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args issueCommentsArgs
	if err := decodeAndValidate(request, &args); err != nil {
		return nil, err
	}
	if args.MaxResults == 0 {
		args.MaxResults = defaultJiraMaxResults
	}

	client, err := t.client()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, jiraTimeout)
	defer cancel()

	page, response, err := client.Issue.Comment.Gets(ctx, args.IssueIdOrKey, args.OrderBy, args.Expand, args.StartAt, args.MaxResults)
	if err != nil {
		return nil, jiraError("failed to get comments", response, err)
	}

	return util.NewToolResultJSON(jirafmt.FormatComments(page))
}

// fetchIssueBody returns the raw JSON of an issue. Shared with the issue
// resource.
func fetchIssueBody(ctx context.Context, client *v3.Client, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, jiraTimeout)
	defer cancel()

	_, response, err := client.Issue.Get(ctx, key, []string{"summary", "description"}, nil)
	if err != nil {
		return nil, jiraError("failed to get issue", response, err)
	}
	return response.Bytes.Bytes(), nil
}

// IssueMarkdown fetches an issue and renders it as a Markdown page.
func IssueMarkdown(ctx context.Context, client JiraClientFunc, key string) (string, error) {
	if client == nil {
		client = services.JiraClient
	}
	c, err := client()
	if err != nil {
		return "", err
	}
	body, err := fetchIssueBody(ctx, c, key)
	if err != nil {
		return "", err
	}
	return jirafmt.IssueMarkdown(body)
}

func jiraError(msg string, response *models.ResponseScheme, err error) error {
	metrics.UpstreamErrors.WithLabelValues("jira").Inc()
	if response != nil && response.Bytes.Len() > 0 {
		return fmt.Errorf("%s: %s (endpoint: %s)", msg, response.Bytes.String(), response.Endpoint)
	}
	return fmt.Errorf("%s: %v", msg, err)
}
