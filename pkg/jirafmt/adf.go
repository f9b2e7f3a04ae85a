// Package jirafmt rewrites Jira REST payloads so that rich text fields carry
// Markdown instead of ADF.
package jirafmt

import (
	"github.com/ctreminiom/go-atlassian/pkg/infra/models"
	"github.com/pkg/errors"

	"github.com/athapong/workdesk-mcp/pkg/adf"
	"github.com/athapong/workdesk-mcp/pkg/metrics"
)

// Conversion sources reported to metrics
const (
	SourceDescription = "description"
	SourceComment     = "comment"
)

// FromCommentNode copies a go-atlassian ADF node into the converter's tree.
func FromCommentNode(node *models.CommentNodeScheme) *adf.Node {
	if node == nil {
		return nil
	}

	out := &adf.Node{
		Type: adf.NodeType(node.Type),
		Text: node.Text,
	}

	if len(node.Attrs) > 0 {
		out.Attrs = make(map[string]any, len(node.Attrs))
		for k, v := range node.Attrs {
			out.Attrs[k] = v
		}
	}

	for _, mark := range node.Marks {
		if mark == nil {
			continue
		}
		m := &adf.Mark{Type: adf.MarkType(mark.Type)}
		if len(mark.Attrs) > 0 {
			m.Attrs = make(map[string]any, len(mark.Attrs))
			for k, v := range mark.Attrs {
				m.Attrs[k] = v
			}
		}
		out.Marks = append(out.Marks, m)
	}

	for _, child := range node.Content {
		if c := FromCommentNode(child); c != nil {
			out.Content = append(out.Content, c)
		}
	}

	return out
}

// NodeMarkdown converts a go-atlassian rich text body. A nil body is "".
func NodeMarkdown(node *models.CommentNodeScheme, source string) string {
	if node == nil {
		return ""
	}
	metrics.ADFConversions.WithLabelValues(source).Inc()
	return adf.ConvertNode(FromCommentNode(node))
}

// RawMarkdown parses raw ADF JSON and converts it.
func RawMarkdown(raw []byte, source string) (string, error) {
	doc, err := adf.Parse(raw)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse ADF")
	}
	metrics.ADFConversions.WithLabelValues(source).Inc()
	return adf.Convert(doc), nil
}
