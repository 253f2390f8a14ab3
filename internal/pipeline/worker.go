package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/chapterd/internal/document"
	"github.com/dgallion1/chapterd/internal/extractor"
	"github.com/dgallion1/chapterd/internal/segmenter"
	"github.com/dgallion1/chapterd/internal/store"
)

// Worker processes a single document job.
type Worker struct {
	store       *store.Store
	stats       *ProcessingStats
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(st *store.Store, stats *ProcessingStats, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		store:       st,
		stats:       stats,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full segmentation pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	select {
	case <-ctx.Done():
		job.AddError("canceled before processing")
		job.SetStatus(StatusFailed, "canceled")
		return
	default:
	}

	// Phase 1: Extract pages.
	job.SetStatus(StatusExtracting, "extracting")
	ex, err := extractor.ForFile(job.Filename, extractor.Options{PDFFallback: w.pdfFallback})
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	pages, err := ex.ExtractPages(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetPages(len(pages))

	// Compute content hash from the extracted text.
	hash := ContentHashHex([]byte(joinPages(pages)))
	docID := job.DocID
	if docID == "" {
		docID = DocIDFromHash(hash)
	}
	job.SetDigest(docID, hash)

	// Dedup check.
	if !job.Force {
		existingID, found, err := w.store.FindByHash(hash)
		if err != nil {
			log.Warn("dedup check failed, proceeding", "error", err)
		} else if found {
			log.Info("duplicate document, skipping", "existing_doc_id", existingID)
			job.SetDigest(existingID, hash)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 2: Segment into chapters.
	job.SetStatus(StatusSegmenting, "segmenting")
	chapters := segmenter.Segment(pages)
	if len(chapters) == 0 {
		log.Warn("no chapters produced")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "segmenting")
		return
	}

	totalWords := 0
	for _, ch := range chapters {
		totalWords += ch.WordCount
	}
	job.SetResult(len(chapters), totalWords)
	log.Info("segmented document", "chapters", len(chapters), "words", totalWords)

	// Phase 3: Store the report.
	job.SetStatus(StatusStoring, "storing")
	report := &document.Report{
		DocID:        docID,
		Filename:     job.Filename,
		Title:        reportTitle(job.Title, chapters, job.Filename),
		ContentHash:  hash,
		PageCount:    len(pages),
		ChapterCount: len(chapters),
		TotalWords:   totalWords,
		Chapters:     chapters,
		CreatedAt:    job.CreatedAt,
	}
	if err := w.store.SaveReport(report); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	w.stats.Record(time.Since(start), len(pages), len(chapters), totalWords)
	job.SetStatus(StatusCompleted, "done")
	log.Info("segmentation complete", "doc_id", docID, "pages", len(pages), "chapters", len(chapters))
}

// joinPages flattens extracted pages into a single string for hashing.
// Pages are joined with form feeds so page boundaries stay significant.
func joinPages(pages []document.PageText) string {
	var sb strings.Builder
	for i, p := range pages {
		if i > 0 {
			sb.WriteString("\f")
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// reportTitle picks a display title: the caller's override, the first
// detected chapter title, or the filename stem as a last resort.
func reportTitle(override string, chapters []document.Chapter, filename string) string {
	if override != "" {
		return override
	}
	if len(chapters) > 0 && chapters[0].Title != "Complete Document" {
		return chapters[0].Title
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
