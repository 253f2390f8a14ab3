package pipeline

import (
	"testing"
	"time"
)

func TestProcessingStatsSnapshotPercentiles(t *testing.T) {
	stats := NewProcessingStats(time.Hour)
	stats.Record(100*time.Millisecond, 10, 2, 1000)
	stats.Record(200*time.Millisecond, 10, 2, 1000)
	stats.Record(300*time.Millisecond, 10, 2, 1000)
	stats.Record(400*time.Millisecond, 10, 2, 1000)
	stats.Record(500*time.Millisecond, 10, 2, 1000)

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestProcessingStatsLifetimeTotals(t *testing.T) {
	stats := NewProcessingStats(time.Hour)
	stats.Record(100*time.Millisecond, 10, 2, 1000)
	stats.Record(200*time.Millisecond, 20, 3, 2500)

	snap := stats.Snapshot()
	if snap.TotalDocuments != 2 {
		t.Fatalf("expected 2 documents, got %d", snap.TotalDocuments)
	}
	if snap.TotalPages != 30 {
		t.Fatalf("expected 30 pages, got %d", snap.TotalPages)
	}
	if snap.TotalChapters != 5 {
		t.Fatalf("expected 5 chapters, got %d", snap.TotalChapters)
	}
	if snap.TotalWords != 3500 {
		t.Fatalf("expected 3500 words, got %d", snap.TotalWords)
	}
}

func TestProcessingStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewProcessingStats(10 * time.Millisecond)
	stats.Record(100*time.Millisecond, 3, 1, 42)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}
	// Lifetime totals survive the rolling window.
	if snap.TotalDocuments != 1 {
		t.Fatalf("expected 1 lifetime document, got %d", snap.TotalDocuments)
	}
	if snap.TotalPages != 3 {
		t.Fatalf("expected 3 lifetime pages, got %d", snap.TotalPages)
	}

	stats.Record(200*time.Millisecond, 1, 1, 5)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestProcessingStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewProcessingStats(time.Hour)
	stats.Record(-10*time.Millisecond, 1, 1, 1)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
