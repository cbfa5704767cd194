package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// VisibleText extracts the visible text of an HTML document, skipping
// scripts and styles. Block-level boundaries become newlines so the
// line-oriented extraction heuristics still see one term per line.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "br":
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && isBlock(n.Data) {
			buf.WriteString("\n")
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "li", "tr", "td", "th", "table",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"section", "article", "header", "footer", "ul", "ol":
		return true
	}
	return false
}
