package extractor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/chapterd/internal/document"
	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBExtractor handles EPUB files. Each spine item becomes one page, in
// spine order, so chapter boundaries that fall on item boundaries keep
// accurate page ranges.
type EPUBExtractor struct{}

func (e *EPUBExtractor) ExtractPages(r io.Reader, filename string) ([]document.PageText, error) {
	// goreader opens archives by path, so write to a temp file.
	tmp, err := os.CreateTemp("", "chapterd-epub-*.epub")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	rc, err := epub.OpenReader(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}

	book := rc.Rootfiles[0]
	pages := make([]document.PageText, 0, len(book.Spine.Itemrefs))
	for i, ref := range book.Spine.Itemrefs {
		// Unreadable spine items degrade to an empty page.
		text := ""
		if ref.Item != nil {
			if item, err := ref.Item.Open(); err == nil {
				data, readErr := io.ReadAll(item)
				item.Close()
				if readErr == nil {
					text = epubItemText(data)
				}
			}
		}
		pages = append(pages, document.PageText{Page: i, Text: text})
	}
	return pages, nil
}

// epubItemText renders one spine item's XHTML as line-oriented text.
func epubItemText(src []byte) string {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return ""
	}
	return strings.Join(htmlLines(doc), "\n")
}
