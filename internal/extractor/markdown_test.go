package extractor

import (
	"strings"
	"testing"
)

func TestMarkdownExtractor_HeadingsAsStandaloneLines(t *testing.T) {
	src := "# Chapter 1: Start\n\nOpening prose paragraph.\n\n## Scene One\n\nMore prose follows here."
	pages, err := (&MarkdownExtractor{}).ExtractPages(strings.NewReader(src), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}

	var headingLine bool
	for _, line := range strings.Split(pages[0].Text, "\n") {
		if strings.TrimSpace(line) == "Chapter 1: Start" {
			headingLine = true
		}
	}
	if !headingLine {
		t.Errorf("expected heading on its own line, got %q", pages[0].Text)
	}
	if !strings.Contains(pages[0].Text, "Opening prose paragraph.") {
		t.Errorf("expected paragraph text, got %q", pages[0].Text)
	}
	if strings.Contains(pages[0].Text, "#") {
		t.Errorf("expected heading markers to be stripped, got %q", pages[0].Text)
	}
}

func TestMarkdownExtractor_ThematicBreakStartsNewPage(t *testing.T) {
	src := "first page prose here\n\n---\n\nsecond page prose here"
	pages, err := (&MarkdownExtractor{}).ExtractPages(strings.NewReader(src), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if !strings.Contains(pages[0].Text, "first page prose") {
		t.Errorf("expected first page content, got %q", pages[0].Text)
	}
	if !strings.Contains(pages[1].Text, "second page prose") {
		t.Errorf("expected second page content, got %q", pages[1].Text)
	}
	if pages[0].Page != 0 || pages[1].Page != 1 {
		t.Errorf("expected page indices 0 and 1, got %d and %d", pages[0].Page, pages[1].Page)
	}
}

func TestMarkdownExtractor_TrailingBreakAddsNoEmptyPage(t *testing.T) {
	src := "only real content lives here\n\n---\n"
	pages, err := (&MarkdownExtractor{}).ExtractPages(strings.NewReader(src), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
}

func TestMarkdownExtractor_ParagraphTextNotDuplicated(t *testing.T) {
	src := "one single paragraph sentence"
	pages, err := (&MarkdownExtractor{}).ExtractPages(strings.NewReader(src), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(pages[0].Text, "single paragraph"); got != 1 {
		t.Errorf("expected paragraph text exactly once, found %d times in %q", got, pages[0].Text)
	}
}

func TestMarkdownExtractor_EmptyInput(t *testing.T) {
	pages, err := (&MarkdownExtractor{}).ExtractPages(strings.NewReader(""), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 || pages[0].Text != "" {
		t.Errorf("expected one empty page, got %v", pages)
	}
}
