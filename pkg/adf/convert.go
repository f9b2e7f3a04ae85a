// Package adf converts Atlassian Document Format trees to Markdown.
package adf

import "strings"

// DefaultMaxDepth bounds recursion for Convert.
const DefaultMaxDepth = 512

// listKind is the kind of the list enclosing a listItem. Nodes carry no parent
// pointer, so it travels down the recursion instead.
type listKind int

const (
	bulletKind listKind = iota
	orderedKind
)

// Converter renders ADF documents to Markdown. The zero value has no depth limit.
type Converter struct {
	// MaxDepth is the deepest nesting level that is rendered. Deeper subtrees
	// render as the empty string. Zero or negative disables the limit.
	MaxDepth int
}

// Option configures a Converter
type Option func(*Converter)

// WithMaxDepth limits how deep the converter recurses into the tree.
func WithMaxDepth(depth int) Option {
	return func(c *Converter) {
		c.MaxDepth = depth
	}
}

// NewConverter creates a converter using DefaultMaxDepth unless overridden.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = NewConverter()

// Convert converts an ADF document to Markdown. Subtrees nested deeper than
// DefaultMaxDepth are dropped from the output; use
// NewConverter(WithMaxDepth(0)).Convert to render the whole tree.
func Convert(doc *Document) string {
	return defaultConverter.Convert(doc)
}

// ConvertNode converts a single node (and its subtree) to Markdown.
func ConvertNode(node *Node) string {
	return defaultConverter.ConvertNode(node)
}

// Convert converts an ADF document to Markdown
func (c *Converter) Convert(doc *Document) string {
	if doc == nil || len(doc.Content) == 0 {
		return ""
	}
	return c.processContent(doc.Content, bulletKind, 1)
}

// ConvertNode converts a single node (and its subtree) to Markdown.
func (c *Converter) ConvertNode(node *Node) string {
	return c.processNode(node, bulletKind, 1)
}

func (c *Converter) processContent(nodes []*Node, kind listKind, depth int) string {
	var result strings.Builder
	for _, node := range nodes {
		result.WriteString(c.processNode(node, kind, depth))
	}
	return result.String()
}

// children renders node content outside of any list scope.
func (c *Converter) children(node *Node, depth int) string {
	return c.processContent(node.Content, bulletKind, depth+1)
}

func (c *Converter) processNode(node *Node, kind listKind, depth int) string {
	if node == nil {
		return ""
	}
	if c.MaxDepth > 0 && depth > c.MaxDepth {
		return ""
	}

	switch node.Type {
	case NodeDoc:
		return c.children(node, depth)
	case NodeText:
		return applyMarks(node)
	case NodeParagraph:
		return c.convertParagraph(node, depth)
	case NodeHeading:
		return c.convertHeading(node, depth)
	case NodeBulletList:
		return c.convertList(node, bulletKind, depth)
	case NodeOrderedList:
		return c.convertList(node, orderedKind, depth)
	case NodeListItem:
		return c.convertListItem(node, kind, depth)
	case NodeTable:
		return c.convertTable(node, depth)
	case NodeBlockquote:
		return c.convertBlockquote(node, depth)
	case NodeRule:
		return "---\n"
	case NodeHardBreak:
		return "\n"
	default:
		// mention, emoji, inlineCard, media* and anything unknown
		return node.Text
	}
}
