package extractor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/chapterd/internal/document"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFExtractor handles PDF files. It reads pages with the pure-Go reader
// first; when that cannot open the document or decodes no text at all, and
// FallbackPdfcpu is set, it retries with pdfcpu's content extraction.
type PDFExtractor struct {
	FallbackPdfcpu bool
}

func (e *PDFExtractor) ExtractPages(r io.Reader, filename string) ([]document.PageText, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "chapterd-pdf-*.pdf")
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

	pages, err := extractPDFPages(tmpPath)
	if e.FallbackPdfcpu && (err != nil || !hasText(pages)) {
		if fb, fbErr := extractPdfcpuPages(tmpPath); fbErr == nil {
			pages, err = fb, nil
		} else if err != nil {
			err = fbErr
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return pages, nil
}

// hasText reports whether any page decoded to non-blank text.
func hasText(pages []document.PageText) bool {
	for _, p := range pages {
		if strings.TrimSpace(p.Text) != "" {
			return true
		}
	}
	return false
}

func extractPDFPages(path string) ([]document.PageText, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]document.PageText, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		text := ""
		if !page.V.IsNull() {
			// A page that fails to decode contributes an empty entry
			// rather than aborting the document.
			if t, err := page.GetPlainText(nil); err == nil {
				text = t
			}
		}
		pages = append(pages, document.PageText{Page: i - 1, Text: text})
	}
	return pages, nil
}

var pageFileRe = regexp.MustCompile(`page_(\d+)\.txt$`)

// extractPdfcpuPages extracts page content into a scratch directory and
// reads back the per-page text files pdfcpu produces.
func extractPdfcpuPages(path string) ([]document.PageText, error) {
	tmpDir, err := os.MkdirTemp("", "chapterd-pdfcpu-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(path, tmpDir, nil, conf); err != nil {
		return nil, fmt.Errorf("pdfcpu extract: %w", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("read extract dir: %w", err)
	}

	var pages []document.PageText
	for _, entry := range entries {
		m := pageFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(tmpDir, entry.Name()))
		if err != nil {
			continue
		}
		pages = append(pages, document.PageText{Page: num - 1, Text: string(data)})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Page < pages[j].Page })

	if len(pages) == 0 {
		// Files without the expected page suffix: take any text output in
		// directory order.
		for _, entry := range entries {
			if !strings.HasSuffix(entry.Name(), ".txt") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(tmpDir, entry.Name()))
			if err != nil {
				continue
			}
			pages = append(pages, document.PageText{Page: len(pages), Text: string(data)})
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no text content found in pdf")
	}
	return pages, nil
}
