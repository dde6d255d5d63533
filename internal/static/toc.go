package static

import (
	"strings"

	"golang.org/x/net/html"
)

// Heading is one table-of-contents entry extracted from rendered markup.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// ExtractHeadings parses rendered page markup and collects h2-h4 headings
// for the table of contents. Markup that fails to parse yields an empty
// list; the TOC is decoration, not correctness.
func ExtractHeadings(markup string) []Heading {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var headings []Heading
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if level, ok := headingLevel(node.Data); ok {
				headings = append(headings, Heading{
					Level: level,
					ID:    attrValue(node, "id"),
					Text:  nodeText(node),
				})
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return headings
}

func headingLevel(tag string) (int, bool) {
	switch tag {
	case "h2":
		return 2, true
	case "h3":
		return 3, true
	case "h4":
		return 4, true
	}
	return 0, false
}

func attrValue(node *html.Node, name string) string {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

func nodeText(node *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return strings.TrimSpace(sb.String())
}
