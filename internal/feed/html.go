package feed

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	// SummaryLimit is the rune length summaries are cut to.
	SummaryLimit = 200
	// EmptySummary stands in for entries with no usable text.
	EmptySummary = "Click to read more."
)

// StripHTML removes HTML tags and returns plain text with entities decoded
// and whitespace collapsed.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return stripHTMLFallback(s)
	}

	var buf strings.Builder
	extractText(doc, &buf)

	return strings.TrimSpace(collapseWhitespace(buf.String()))
}

// Summarize strips s, keeps at most SummaryLimit runes and appends "...".
// The ellipsis is added whether or not the text was cut.
func Summarize(s string) string {
	text := StripHTML(s)
	if text == "" {
		return EmptySummary
	}
	if utf8.RuneCountInString(text) > SummaryLimit {
		text = strings.TrimSpace(string([]rune(text)[:SummaryLimit]))
	}
	return text + "..."
}

func extractText(n *html.Node, buf *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			buf.WriteString(" ")
		}
	}

	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, buf)
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			buf.WriteString(" ")
		}
	}
}

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

func stripHTMLFallback(s string) string {
	s = htmlTagRegex.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(collapseWhitespace(s))
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(s, " ")
}
