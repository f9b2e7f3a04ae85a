package tools

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/athapong/workdesk-mcp/pkg/date"
	"github.com/athapong/workdesk-mcp/util"
)

var dateToolNames = []string{"resolve_date", "date_list_timezones"}

// RegisterDateTools registers the relative date tools. The default timezone
// comes from TIME_ZONE.
func RegisterDateTools(s *server.MCPServer) error {
	cfg, err := date.LoadConfig()
	if err != nil {
		return err
	}
	registerDateTools(s, date.NewService(cfg, nil))
	return nil
}

func registerDateTools(s *server.MCPServer, svc *date.Service) {
	resolveTool := mcp.NewTool("resolve_date",
		mcp.WithDescription("Resolve a relative date expression such as 'tomorrow', 'next week' or '3 days ago' to a YYYY-MM-DD date"),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Relative date expression: today, tomorrow, yesterday, this/next/last week, this/next/last month, 'N days/weeks/months ago' or 'N days/weeks/months later'")),
		mcp.WithString("timezone", mcp.Description("IANA timezone, e.g. 'Asia/Tokyo' (default "+svc.Config().Timezone+")")),
	)
	s.AddTool(resolveTool, util.ErrorGuard(resolveDateHandler(svc)))

	zonesTool := mcp.NewTool("date_list_timezones",
		mcp.WithDescription("List the timezones accepted by resolve_date"),
	)
	s.AddTool(zonesTool, util.ErrorGuard(listTimezonesHandler))
}

type resolveDateArgs struct {
	Expression string `json:"expression"`
	Timezone   string `json:"timezone"`
}

func (a resolveDateArgs) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Expression, validation.Required),
	)
}

// resolveDateHandler reports resolution failures inside the result envelope
// with success=false rather than as a tool error.
func resolveDateHandler(svc *date.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args resolveDateArgs
		if err := decodeAndValidate(request, &args); err != nil {
			return nil, err
		}
		return util.NewToolResultJSON(svc.Resolve(args.Expression, strings.TrimSpace(args.Timezone)))
	}
}

func listTimezonesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.Join(date.ValidTimezones(), "\n")), nil
}
