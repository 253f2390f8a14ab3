package pipeline

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/chapterd/internal/config"
	"github.com/dgallion1/chapterd/internal/store"
)

func newTestOrchestrator(t *testing.T, cfg config.Config) *Orchestrator {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "chapterd.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(cfg, st, log)
}

func TestOrchestratorSubmit_QueueFull(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	o := newTestOrchestrator(t, cfg)
	// Not started, so nothing drains the queue.

	first := newTestJob("q-1", "a.txt", []byte("text"))
	if err := o.Submit(first); err != nil {
		t.Fatalf("expected first submit to succeed: %v", err)
	}

	second := newTestJob("q-2", "b.txt", []byte("text"))
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue-full error")
	}
	if second.Snapshot().Status != StatusFailed {
		t.Errorf("expected rejected job to be failed, got %q", second.Snapshot().Status)
	}
	if second.Snapshot().Phase != "queue_full" {
		t.Errorf("expected phase %q, got %q", "queue_full", second.Snapshot().Phase)
	}

	// The rejected job is still visible for status polling.
	if o.GetJob("q-2") == nil {
		t.Error("expected rejected job to remain in the job store")
	}
}

func TestOrchestrator_ProcessesSubmittedJob(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 10, JobTTL: time.Hour}
	o := newTestOrchestrator(t, cfg)

	o.Start(context.Background())
	defer o.Stop()

	job := newTestJob("e2e-1", "book.txt", []byte(twoChapterText))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		snap := o.GetJob("e2e-1").Snapshot()
		if snap.Status == StatusCompleted {
			break
		}
		if snap.Status == StatusFailed {
			t.Fatalf("job failed: %v", snap.Progress.Errors)
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for job, status %q", snap.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}

	snap := o.GetJob("e2e-1").Snapshot()
	if _, err := o.Store().GetReport(snap.DocID); err != nil {
		t.Errorf("expected stored report for %q: %v", snap.DocID, err)
	}
	if o.Stats().TotalDocuments != 1 {
		t.Errorf("expected 1 processed document, got %d", o.Stats().TotalDocuments)
	}
}

func TestOrchestrator_GetJobMissing(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	o := newTestOrchestrator(t, cfg)
	if o.GetJob("nope") != nil {
		t.Error("expected nil for unknown job ID")
	}
}

func TestOrchestrator_QueueDepth(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 5, JobTTL: time.Hour}
	o := newTestOrchestrator(t, cfg)

	if o.QueueDepth() != 0 {
		t.Errorf("expected empty queue, got %d", o.QueueDepth())
	}
	if err := o.Submit(newTestJob("d-1", "a.txt", []byte("text"))); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
