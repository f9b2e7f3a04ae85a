package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/athapong/workdesk-mcp/pkg/metrics"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrorGuard turns handler errors and panics into isError tool results, and
// records call metrics.
func ErrorGuard(handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		tool := request.Params.Name
		start := time.Now()
		log := Logger.WithFields(logrus.Fields{
			"tool":    tool,
			"call_id": uuid.NewString(),
		})

		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("tool handler panicked")
				metrics.ToolCalls.WithLabelValues(tool, metrics.StatusPanic).Inc()
				result, err = mcp.NewToolResultError(fmt.Sprintf("%v", r)), nil
			}
			metrics.ToolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
		}()

		log.Debug("tool call")
		result, err = handler(ctx, request)
		if err != nil {
			log.WithError(err).Warn("tool call failed")
			metrics.ToolCalls.WithLabelValues(tool, metrics.StatusError).Inc()
			return mcp.NewToolResultError(err.Error()), nil
		}

		status := metrics.StatusOK
		if result != nil && result.IsError {
			status = metrics.StatusError
		}
		metrics.ToolCalls.WithLabelValues(tool, status).Inc()
		log.WithField("duration", time.Since(start)).Debug("tool call done")
		return result, nil
	}
}

// DecodeArguments decodes the tool call arguments into out, matching on json
// tags. Numbers arriving as strings (and the reverse) are accepted.
func DecodeArguments(request mcp.CallToolRequest, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(request.GetArguments()); err != nil {
		return errors.Wrap(err, "invalid arguments")
	}
	return nil
}

// NewToolResultJSON renders v as indented JSON text.
func NewToolResultJSON(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode result")
	}
	return mcp.NewToolResultText(string(data)), nil
}
