package extractor

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/chapterd/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Headings become
// standalone lines in the page text and thematic breaks start a new page.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) ExtractPages(r io.Reader, filename string) ([]document.PageText, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var pages []document.PageText
	var current strings.Builder

	flushPage := func() {
		pages = append(pages, document.PageText{Page: len(pages), Text: current.String()})
		current.Reset()
	}
	appendBlock := func(s string) {
		if s == "" {
			return
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(s)
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			appendBlock(string(node.Text(src)))
		case *ast.ThematicBreak:
			flushPage()
		default:
			appendBlock(nodeText(n, src))
		}
	}
	if current.Len() > 0 || len(pages) == 0 {
		flushPage()
	}

	return pages, nil
}

// nodeText gets the text content of a goldmark AST node. Blocks with inline
// children yield their text through the child walk alone; reading Lines as
// well would emit the same source segments twice.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(nodeText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
