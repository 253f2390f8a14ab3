package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/chapterd/internal/document"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(docID, hash string) *document.Report {
	return &document.Report{
		DocID:        docID,
		Filename:     "sample.pdf",
		Title:        "Chapter 1: Alpha",
		ContentHash:  hash,
		PageCount:    3,
		ChapterCount: 1,
		TotalWords:   42,
		Chapters: []document.Chapter{
			{Title: "Chapter 1: Alpha", Content: "body text", PageStart: 0, PageEnd: 2, WordCount: 42},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestStore_SaveAndGetReport(t *testing.T) {
	s := openTestStore(t)

	rep := sampleReport("doc-1", "hash-1")
	if err := s.SaveReport(rep); err != nil {
		t.Fatalf("save report: %v", err)
	}

	got, err := s.GetReport("doc-1")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	if got.Filename != rep.Filename || got.TotalWords != rep.TotalWords {
		t.Errorf("expected report %+v, got %+v", rep, got)
	}
	if len(got.Chapters) != 1 || got.Chapters[0].Title != "Chapter 1: Alpha" {
		t.Errorf("expected chapters to round-trip, got %+v", got.Chapters)
	}
}

func TestStore_GetMissingReport(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetReport("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListReports(t *testing.T) {
	s := openTestStore(t)

	for _, id := range []string{"doc-a", "doc-b", "doc-c"} {
		if err := s.SaveReport(sampleReport(id, "hash-"+id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	summaries, err := s.ListReports()
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	for _, sum := range summaries {
		if sum.ChapterCount != 1 || sum.PageCount != 3 {
			t.Errorf("summary %s: expected counts to survive, got %+v", sum.DocID, sum)
		}
	}
}

func TestStore_DeleteReport(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveReport(sampleReport("doc-1", "hash-1")); err != nil {
		t.Fatalf("save report: %v", err)
	}
	if err := s.DeleteReport("doc-1"); err != nil {
		t.Fatalf("delete report: %v", err)
	}

	if _, err := s.GetReport("doc-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected report to be gone, got %v", err)
	}
	if _, found, _ := s.FindByHash("hash-1"); found {
		t.Error("expected hash index entry to be removed")
	}

	if err := s.DeleteReport("doc-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestStore_FindByHash(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveReport(sampleReport("doc-1", "hash-1")); err != nil {
		t.Fatalf("save report: %v", err)
	}

	docID, found, err := s.FindByHash("hash-1")
	if err != nil {
		t.Fatalf("find by hash: %v", err)
	}
	if !found || docID != "doc-1" {
		t.Errorf("expected doc-1, got %q (found=%v)", docID, found)
	}

	if _, found, _ := s.FindByHash("unknown"); found {
		t.Error("expected unknown hash to miss")
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.SaveReport(sampleReport("doc-1", "hash-1")); err != nil {
		t.Fatalf("save report: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s2.Close()

	if _, err := s2.GetReport("doc-1"); err != nil {
		t.Errorf("expected report to survive reopen, got %v", err)
	}
}
