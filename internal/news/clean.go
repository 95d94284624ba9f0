package news

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// CleanHTML strips markup from an HTML fragment and returns its visible
// text with collapsed whitespace. Script and style subtrees are skipped.
// Input that fails to parse degrades to the raw text with tags removed by
// the tolerant parser, never to an error.
func CleanHTML(fragment string) string {
	if fragment == "" {
		return ""
	}

	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(whitespaceRuns.ReplaceAllString(fragment, " "))
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(b.String(), " "))
}
