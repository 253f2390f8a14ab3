package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/chapterd/internal/document"
)

// Extractor converts raw document bytes into page-ordered text. Pages whose
// content cannot be decoded come back with empty text rather than failing
// the whole document.
type Extractor interface {
	ExtractPages(r io.Reader, filename string) ([]document.PageText, error)
}

// Options adjust extractor construction.
type Options struct {
	// PDFFallback enables pdfcpu content extraction when the primary PDF
	// reader cannot open a document.
	PDFFallback bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".epub":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, opts Options) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdfcpu: opts.PDFFallback}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".epub":
		return &EPUBExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
