package tools

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/athapong/workdesk-mcp/util"
)

// Group is a set of tools switched on and off together through ENABLE_TOOLS.
type Group struct {
	Name        string
	Description string
	Tools       []string
	Register    func(s *server.MCPServer) error
}

// Groups lists every tool group in registration order.
func Groups() []Group {
	return []Group{
		{"jira", "Jira issue search, details and comments", jiraToolNames, func(s *server.MCPServer) error {
			RegisterJiraTool(s)
			return nil
		}},
		{"adf", "ADF to Markdown conversion", adfToolNames, func(s *server.MCPServer) error {
			RegisterADFTool(s)
			return nil
		}},
		{"date", "Relative date resolution", dateToolNames, RegisterDateTools},
		{"readwise", "Readwise Reader documents", readwiseToolNames, func(s *server.MCPServer) error {
			RegisterReadwiseTools(s)
			return nil
		}},
	}
}

func findGroup(name string) (Group, bool) {
	for _, g := range Groups() {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// enabledList returns the ENABLE_TOOLS entries. An empty result means every
// group is enabled.
func enabledList() []string {
	var out []string
	for _, name := range strings.Split(os.Getenv("ENABLE_TOOLS"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// IsEnabled reports whether the named group is enabled.
func IsEnabled(name string) bool {
	list := enabledList()
	return len(list) == 0 || slices.Contains(list, name)
}

// RegisterEnabled registers every enabled group. A group that fails to
// register is logged and skipped.
func RegisterEnabled(s *server.MCPServer) {
	for _, g := range Groups() {
		if !IsEnabled(g.Name) {
			continue
		}
		if err := g.Register(s); err != nil {
			util.Logger.WithError(err).WithField("group", g.Name).Error("failed to register tool group")
			continue
		}
		util.Logger.WithField("group", g.Name).Debug("registered tool group")
	}
}

// RegisterToolManagerTool registers the tool that lists, enables and disables
// tool groups at runtime.
func RegisterToolManagerTool(s *server.MCPServer) {
	tool := mcp.NewTool("tool_manager",
		mcp.WithDescription("Manage MCP tools - list tool groups, or enable or disable one"),
		mcp.WithString("action", mcp.Required(), mcp.Enum("list", "enable", "disable"), mcp.Description("Action to perform: list, enable, disable")),
		mcp.WithString("tool_name", mcp.Description("Tool group to enable/disable")),
	)

	s.AddTool(tool, util.ErrorGuard(toolManagerHandler(s)))
}

func toolManagerHandler(s *server.MCPServer) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		action, _ := args["action"].(string)
		toolName, _ := args["tool_name"].(string)

		switch action {
		case "list":
			return mcp.NewToolResultText(listGroups()), nil

		case "enable", "disable":
			if toolName == "" {
				return mcp.NewToolResultError("tool_name is required for enable/disable actions"), nil
			}
			g, ok := findGroup(toolName)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("unknown tool group: %s", toolName)), nil
			}
			if action == "enable" {
				if err := enableGroup(s, g); err != nil {
					return nil, err
				}
			} else {
				disableGroup(s, g)
			}
			return mcp.NewToolResultText(fmt.Sprintf("Successfully %sd tool: %s", action, toolName)), nil

		default:
			return mcp.NewToolResultError("Invalid action. Use 'list', 'enable', or 'disable'"), nil
		}
	}
}

func listGroups() string {
	var sb strings.Builder
	sb.WriteString("Available tools:\n")
	sb.WriteString("- tool_manager (Tool management) [enabled]\n")
	for _, g := range Groups() {
		status := "disabled"
		if IsEnabled(g.Name) {
			status = "enabled"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s) [%s]\n", g.Name, g.Description, status))
	}
	sb.WriteString("\nCurrently enabled tools:\n")
	list := enabledList()
	if len(list) == 0 {
		sb.WriteString("All tools are enabled (ENABLE_TOOLS is empty)\n")
	}
	for _, name := range list {
		sb.WriteString(fmt.Sprintf("- %s\n", name))
	}
	return sb.String()
}

func enableGroup(s *server.MCPServer, g Group) error {
	list := enabledList()
	if len(list) > 0 && !slices.Contains(list, g.Name) {
		os.Setenv("ENABLE_TOOLS", strings.Join(append(list, g.Name), ","))
	}
	if s.GetTool(g.Tools[0]) != nil {
		return nil
	}
	return errors.Wrapf(g.Register(s), "failed to enable %s", g.Name)
}

func disableGroup(s *server.MCPServer, g Group) {
	list := enabledList()
	if len(list) == 0 {
		for _, other := range Groups() {
			if other.Name != g.Name {
				list = append(list, other.Name)
			}
		}
	} else {
		list = slices.DeleteFunc(list, func(name string) bool { return name == g.Name })
	}
	// An empty ENABLE_TOOLS means everything, so keep at least one entry.
	if len(list) == 0 {
		list = []string{"tool_manager"}
	}
	os.Setenv("ENABLE_TOOLS", strings.Join(list, ","))
	s.DeleteTools(g.Tools...)
}
