package segmenter

import (
	"strings"

	"github.com/dgallion1/chapterd/internal/document"
)

// accumulator holds the chapter being assembled between one detected title
// and the next. It never escapes Segment.
type accumulator struct {
	title     string
	content   strings.Builder
	pageStart int
}

// finalize closes the accumulator at pageEnd, cleaning and counting its
// buffered content. pageEnd is clamped so a chapter never ends before it
// starts; two titles on the same page would otherwise invert the range.
func (a *accumulator) finalize(pageEnd int) document.Chapter {
	if pageEnd < a.pageStart {
		pageEnd = a.pageStart
	}
	content := Clean(a.content.String())
	return document.Chapter{
		Title:     a.title,
		Content:   content,
		PageStart: a.pageStart,
		PageEnd:   pageEnd,
		WordCount: WordCount(content),
	}
}

// Segment partitions page-ordered text into titled chapters. Each line that
// classifies as a title closes the chapter in progress and opens a new one;
// other lines accumulate into the open chapter. Lines seen before the first
// title are front matter and are discarded. A non-empty page sequence with
// no detected titles collapses to a single "Complete Document" chapter
// spanning the whole page range.
//
// Pages must arrive in non-decreasing page order. The result is a pure
// function of the input; empty input yields nil.
func Segment(pages []document.PageText) []document.Chapter {
	var chapters []document.Chapter
	var current *accumulator

	for _, page := range pages {
		for _, line := range strings.Split(page.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			if IsTitle(line) {
				if current != nil {
					chapters = append(chapters, current.finalize(page.Page-1))
				}
				current = &accumulator{title: line, pageStart: page.Page}
				continue
			}
			if current != nil {
				current.content.WriteString(line)
				current.content.WriteString("\n")
			}
		}
	}

	if current != nil {
		chapters = append(chapters, current.finalize(pages[len(pages)-1].Page))
	}

	if len(chapters) == 0 && len(pages) > 0 {
		texts := make([]string, len(pages))
		for i, page := range pages {
			texts[i] = page.Text
		}
		full := strings.Join(texts, "\n")
		chapters = append(chapters, document.Chapter{
			Title:     "Complete Document",
			Content:   Clean(full),
			PageStart: pages[0].Page,
			PageEnd:   pages[len(pages)-1].Page,
			// The fallback counts words over the raw text, before cleaning.
			WordCount: WordCount(full),
		})
	}

	return chapters
}

// WordCount returns the number of whitespace-delimited tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
