package adf

import (
	"encoding/json"
	"math"
	"strconv"
)

// NodeType is the discriminant of an ADF node
type NodeType string

const (
	NodeDoc         NodeType = "doc"
	NodeParagraph   NodeType = "paragraph"
	NodeText        NodeType = "text"
	NodeHeading     NodeType = "heading"
	NodeBulletList  NodeType = "bulletList"
	NodeOrderedList NodeType = "orderedList"
	NodeListItem    NodeType = "listItem"
	NodeTable       NodeType = "table"
	NodeTableRow    NodeType = "tableRow"
	NodeTableCell   NodeType = "tableCell"
	NodeBlockquote  NodeType = "blockquote"
	NodeRule        NodeType = "rule"
	NodeHardBreak   NodeType = "hardBreak"
	NodeMention     NodeType = "mention"
	NodeEmoji       NodeType = "emoji"
	NodeInlineCard  NodeType = "inlineCard"
	NodeMediaGroup  NodeType = "mediaGroup"
	NodeMediaSingle NodeType = "mediaSingle"
	NodeMedia       NodeType = "media"
)

// MarkType is the discriminant of an inline mark
type MarkType string

const (
	MarkStrong    MarkType = "strong"
	MarkEm        MarkType = "em"
	MarkStrike    MarkType = "strike"
	MarkCode      MarkType = "code"
	MarkUnderline MarkType = "underline"
	MarkLink      MarkType = "link"
)

// Document is the root of an ADF tree
type Document struct {
	Version int      `json:"version"`
	Type    NodeType `json:"type"`
	Content []*Node  `json:"content,omitempty"`
}

// Node represents an ADF node
type Node struct {
	Type    NodeType       `json:"type"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []*Mark        `json:"marks,omitempty"`
	Content []*Node        `json:"content,omitempty"`
}

// Mark represents formatting marks in ADF
type Mark struct {
	Type  MarkType       `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Parse decodes a JSON encoded ADF document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// intAttr reads a numeric attribute. JSON numbers decode as float64, trees built
// in code usually carry ints.
func intAttr(attrs map[string]any, key string) (int, bool) {
	switch v := attrs[key].(type) {
	case float64:
		return floatToInt(v)
	case float32:
		return floatToInt(float64(v))
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := strconv.Atoi(v.String())
		return n, err == nil
	default:
		return 0, false
	}
}

// floatToInt rejects NaN and values outside the int32 range.
func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || f >= math.MaxInt32 || f <= math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func stringAttr(attrs map[string]any, key string) string {
	s, _ := attrs[key].(string)
	return s
}
