package adf

// convertList renders the items of a bullet or ordered list. The list itself
// contributes no text; its kind picks the marker of each item.
func (c *Converter) convertList(node *Node, kind listKind, depth int) string {
	if len(node.Content) == 0 {
		return ""
	}
	return c.processContent(node.Content, kind, depth+1)
}

// convertListItem always numbers ordered items "1. ", list position is not tracked.
func (c *Converter) convertListItem(node *Node, kind listKind, depth int) string {
	if len(node.Content) == 0 {
		return ""
	}
	marker := "- "
	if kind == orderedKind {
		marker = "1. "
	}
	return marker + c.children(node, depth) + "\n"
}
