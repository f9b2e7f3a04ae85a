package jirafmt

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/ctreminiom/go-atlassian/pkg/infra/models"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var prettyOptions = &pretty.Options{Indent: "  "}

// FormatSearch rewrites a search response so every issue description that is
// an ADF object becomes Markdown. Other fields are kept as returned.
func FormatSearch(body []byte) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid search response")
	}

	out := append([]byte(nil), body...)
	var err error
	i := 0
	gjson.GetBytes(body, "issues").ForEach(func(_, issue gjson.Result) bool {
		path := "issues." + strconv.Itoa(i) + ".fields.description"
		out, err = rewriteDescription(out, path, issue.Get("fields.description"))
		i++
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return indent(out), nil
}

// FormatIssue rewrites a single issue response the same way.
func FormatIssue(body []byte) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid issue response")
	}

	out := append([]byte(nil), body...)
	out, err := rewriteDescription(out, "fields.description", gjson.GetBytes(body, "fields.description"))
	if err != nil {
		return nil, err
	}
	return indent(out), nil
}

// IssueMarkdown renders an issue as a Markdown page: a title line followed by
// the description.
func IssueMarkdown(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", errors.New("invalid issue response")
	}
	issue := gjson.ParseBytes(body)

	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(issue.Get("key").String())
	if summary := issue.Get("fields.summary").String(); summary != "" {
		sb.WriteString(": ")
		sb.WriteString(summary)
	}
	sb.WriteString("\n\n")

	desc := issue.Get("fields.description")
	switch {
	case desc.IsObject():
		md, err := RawMarkdown([]byte(desc.Raw), SourceDescription)
		if err != nil {
			return "", err
		}
		sb.WriteString(md)
	case desc.Type == gjson.String:
		sb.WriteString(desc.String())
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func rewriteDescription(doc []byte, path string, desc gjson.Result) ([]byte, error) {
	if !desc.IsObject() {
		return doc, nil
	}
	md, err := RawMarkdown([]byte(desc.Raw), SourceDescription)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to convert %s", path)
	}
	out, err := sjson.SetBytes(doc, path, md)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set %s", path)
	}
	return out, nil
}

func indent(doc []byte) []byte {
	return bytes.TrimRight(pretty.PrettyOptions(doc, prettyOptions), "\n")
}

// Comment is a Jira comment with its body rendered as Markdown.
type Comment struct {
	ID           string                          `json:"id"`
	Self         string                          `json:"self"`
	Author       *models.UserScheme              `json:"author"`
	Body         string                          `json:"body"`
	UpdateAuthor *models.UserScheme              `json:"updateAuthor"`
	Created      string                          `json:"created"`
	Updated      string                          `json:"updated"`
	Visibility   *models.CommentVisibilityScheme `json:"visibility,omitempty"`
}

// CommentPage is one page of issue comments.
type CommentPage struct {
	StartAt    int       `json:"startAt"`
	MaxResults int       `json:"maxResults"`
	Total      int       `json:"total"`
	Comments   []Comment `json:"comments"`
}

// FormatComments converts every comment body to Markdown. A nil page yields an
// empty one.
func FormatComments(page *models.IssueCommentPageScheme) CommentPage {
	out := CommentPage{Comments: []Comment{}}
	if page == nil {
		return out
	}
	out.StartAt = page.StartAt
	out.MaxResults = page.MaxResults
	out.Total = page.Total

	for _, c := range page.Comments {
		if c == nil {
			continue
		}
		out.Comments = append(out.Comments, Comment{
			ID:           c.ID,
			Self:         c.Self,
			Author:       c.Author,
			Body:         NodeMarkdown(c.Body, SourceComment),
			UpdateAuthor: c.UpdateAuthor,
			Created:      c.Created,
			Updated:      c.Updated,
			Visibility:   c.Visibility,
		})
	}
	return out
}
