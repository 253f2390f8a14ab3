package document

import "time"

// PageText is one page of extracted plain text.
type PageText struct {
	Page int    `json:"page"` // Page index as supplied by the extractor (0-based, non-decreasing)
	Text string `json:"text"` // Raw extracted text; empty when extraction failed for this page
}

// Chapter is a finished, immutable segment of a document.
type Chapter struct {
	Title     string `json:"title"`
	Content   string `json:"content"` // Cleaned and markdown-formatted body text
	PageStart int    `json:"page_start"`
	PageEnd   int    `json:"page_end"` // Always >= PageStart
	WordCount int    `json:"word_count"`
}

// Report is the stored result of processing one document.
type Report struct {
	DocID        string    `json:"doc_id"`
	Filename     string    `json:"filename"`
	Title        string    `json:"title,omitempty"`
	ContentHash  string    `json:"content_hash"`
	PageCount    int       `json:"page_count"`
	ChapterCount int       `json:"chapter_count"`
	TotalWords   int       `json:"total_words"`
	Chapters     []Chapter `json:"chapters"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary is a Report with chapter contents stripped, for list endpoints.
type Summary struct {
	DocID        string    `json:"doc_id"`
	Filename     string    `json:"filename"`
	Title        string    `json:"title,omitempty"`
	PageCount    int       `json:"page_count"`
	ChapterCount int       `json:"chapter_count"`
	TotalWords   int       `json:"total_words"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summarize strips chapter contents from a report.
func (r *Report) Summarize() Summary {
	return Summary{
		DocID:        r.DocID,
		Filename:     r.Filename,
		Title:        r.Title,
		PageCount:    r.PageCount,
		ChapterCount: r.ChapterCount,
		TotalWords:   r.TotalWords,
		CreatedAt:    r.CreatedAt,
	}
}
