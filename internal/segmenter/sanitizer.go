package segmenter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	blankRunRe = regexp.MustCompile(`\n\s*\n\s*\n`)
	pageNumRe  = regexp.MustCompile(`^\d+$`)
)

// Clean strips extraction artifacts from raw text: runs of blank lines, bare
// page numbers, fragments under three characters, and lines dominated by
// punctuation or symbols. Survivors are re-rendered through FormatMarkdown
// and the result is trimmed.
func Clean(raw string) string {
	// Collapse each run of three or more newlines (with interleaved
	// whitespace) down to a single blank line.
	content := blankRunRe.ReplaceAllString(raw, "\n\n")

	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		// Bare page numbers.
		if pageNumRe.MatchString(line) {
			continue
		}
		// Fragments too short to carry content. Drops blank lines too.
		if utf8.RuneCountInString(line) < 3 {
			continue
		}
		// Lines that are mostly special characters.
		if symbolDominated(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(FormatMarkdown(strings.Join(cleaned, "\n")))
}

// symbolDominated reports whether fewer than half of the line's runes are
// ASCII alphanumerics or whitespace. A line that is exactly half symbols
// survives.
func symbolDominated(line string) bool {
	total := 0
	kept := 0
	for _, r := range line {
		total++
		if isASCIIAlnum(r) || unicode.IsSpace(r) {
			kept++
		}
	}
	return kept*2 < total
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
