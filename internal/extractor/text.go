package extractor

import (
	"io"
	"strings"

	"github.com/dgallion1/chapterd/internal/document"
)

// TextExtractor handles plain text files. Form feeds delimit pages; a file
// without any becomes a single page.
type TextExtractor struct{}

func (e *TextExtractor) ExtractPages(r io.Reader, filename string) ([]document.PageText, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(string(src), "\f")
	pages := make([]document.PageText, len(parts))
	for i, part := range parts {
		pages[i] = document.PageText{Page: i, Text: part}
	}
	return pages, nil
}
