package enricher

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// metaTitleKeys lists meta tags carrying a page title, in order of preference.
var metaTitleKeys = []string{"og:title", "twitter:title"}

// ParseTitle extracts a display title from an HTML document.
// Open Graph and Twitter card titles win over <title>. Returns "" if none is present.
func ParseTitle(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	meta := make(map[string]string)
	var docTitle string

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "meta":
				// og: tags use property=, twitter: tags use name=; sites mix both
				key := getAttr(n, "property")
				if key == "" {
					key = getAttr(n, "name")
				}
				key = strings.ToLower(strings.TrimSpace(key))
				content := collapseSpace(getAttr(n, "content"))
				if key != "" && content != "" {
					if _, seen := meta[key]; !seen {
						meta[key] = content
					}
				}
				return

			case "title":
				if docTitle == "" {
					docTitle = collapseSpace(getTextContent(n))
				}
				return // Don't recurse into TITLE

			case "svg":
				// Inline SVGs carry their own <title> elements
				return

			case "body":
				// Metadata lives in <head>; the body only matters as a <title> fallback
				if docTitle != "" || hasPreferredMeta(meta) {
					return
				}
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)

	for _, key := range metaTitleKeys {
		if title := meta[key]; title != "" {
			return title, nil
		}
	}
	return docTitle, nil
}

func hasPreferredMeta(meta map[string]string) bool {
	for _, key := range metaTitleKeys {
		if meta[key] != "" {
			return true
		}
	}
	return false
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
