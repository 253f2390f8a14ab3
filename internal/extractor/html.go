package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/chapterd/internal/document"
	"golang.org/x/net/html"
)

// HTMLExtractor handles HTML files. The whole document becomes a single page
// of line-oriented text with headings and block elements on their own lines.
type HTMLExtractor struct{}

func (e *HTMLExtractor) ExtractPages(r io.Reader, filename string) ([]document.PageText, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	text := strings.Join(htmlLines(doc), "\n")
	return []document.PageText{{Page: 0, Text: text}}, nil
}

// htmlLines walks a parsed HTML document and returns its visible text, one
// entry per heading or block element. Script, style, and chrome elements are
// skipped.
func htmlLines(doc *html.Node) []string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if headingLevel(n.Data) > 0 {
				if t := textContent(n); t != "" {
					lines = append(lines, t)
				}
				return // Text already extracted; don't recurse into the heading.
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				if t := textContent(n); t != "" {
					lines = append(lines, t)
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return lines
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
