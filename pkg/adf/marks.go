package adf

// applyMarks wraps the text of a text node in its marks. Marks are folded from
// last to first so the first mark ends up outermost.
func applyMarks(node *Node) string {
	text := node.Text
	if text == "" {
		return ""
	}
	for i := len(node.Marks) - 1; i >= 0; i-- {
		text = applyMark(text, node.Marks[i])
	}
	return text
}

func applyMark(text string, mark *Mark) string {
	if mark == nil {
		return text
	}
	switch mark.Type {
	case MarkStrong:
		return "**" + text + "**"
	case MarkEm:
		return "*" + text + "*"
	case MarkStrike:
		return "~~" + text + "~~"
	case MarkCode:
		return "`" + text + "`"
	case MarkLink:
		if href := stringAttr(mark.Attrs, "href"); href != "" {
			return "[" + text + "](" + href + ")"
		}
		return text
	default:
		// underline has no Markdown form
		return text
	}
}
