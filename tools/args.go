package tools

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"

	"github.com/athapong/workdesk-mcp/util"
)

// decodeAndValidate decodes the call arguments into out and runs its
// validation rules.
func decodeAndValidate(request mcp.CallToolRequest, out validation.Validatable) error {
	if err := util.DecodeArguments(request, out); err != nil {
		return err
	}
	if err := out.Validate(); err != nil {
		return errors.Wrap(err, "invalid arguments")
	}
	return nil
}
