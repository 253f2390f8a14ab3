package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/chapterd/internal/document"
	"github.com/dgallion1/chapterd/internal/segmenter"
)

type segmentRequest struct {
	Pages []document.PageText `json:"pages"`
}

// handleSegment runs chapter detection synchronously on caller-supplied
// page text, without touching the store.
func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Pages) == 0 {
		jsonError(w, "pages is required", http.StatusBadRequest)
		return
	}

	chapters := segmenter.Segment(req.Pages)
	if chapters == nil {
		chapters = []document.Chapter{}
	}

	totalWords := 0
	for _, ch := range chapters {
		totalWords += ch.WordCount
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"chapters":      chapters,
		"chapter_count": len(chapters),
		"total_words":   totalWords,
	})
}
