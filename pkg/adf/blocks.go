package adf

import "strings"

// maxHeadingLevel bounds the run of "#" a heading can produce. Larger levels
// render like a missing one.
const maxHeadingLevel = 1 << 16

func (c *Converter) convertParagraph(node *Node, depth int) string {
	return c.children(node, depth) + "\n\n"
}

func (c *Converter) convertHeading(node *Node, depth int) string {
	if len(node.Content) == 0 {
		return ""
	}
	// no upper clamp: level 9 gives nine hashes
	level, ok := intAttr(node.Attrs, "level")
	if !ok || level < 1 || level > maxHeadingLevel {
		level = 1
	}
	return strings.Repeat("#", level) + " " + c.children(node, depth) + "\n\n"
}

func (c *Converter) convertBlockquote(node *Node, depth int) string {
	if len(node.Content) == 0 {
		return ""
	}
	lines := strings.Split(c.children(node, depth), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n") + "\n\n"
}
