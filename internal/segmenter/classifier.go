package segmenter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// titlePatterns is the ordered set of chapter-title shapes. The patterns are
// independent accept conditions: first match wins but order never changes the
// outcome. All match case-insensitively except the all-caps pattern, which
// requires genuine uppercase.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Chapter\s+\d+[:\-\s]`),
	regexp.MustCompile(`(?i)^\d+\.\s+[A-Z]`),
	regexp.MustCompile(`^[A-Z][A-Z\s]{10,}$`), // all-caps titles, open-ended length
	regexp.MustCompile(`(?i)^\d+\s+[A-Z]`),
	regexp.MustCompile(`(?i)^Part\s+[IVX]+[:\-\s]`),
}

// numberedLineRe duplicates the fourth pattern case-sensitively. Redundant,
// but removing it could shift classification at the boundaries; keep both.
var numberedLineRe = regexp.MustCompile(`^\d+\s+[A-Z]`)

// IsTitle reports whether a single line of text looks like a chapter title.
// Pure: no state, no side effects, total over any string.
func IsTitle(line string) bool {
	line = strings.TrimSpace(line)

	// Skip very short or very long lines.
	n := utf8.RuneCountInString(line)
	if n < 5 || n > 100 {
		return false
	}

	for _, re := range titlePatterns {
		if re.MatchString(line) {
			return true
		}
	}

	// Lines that are entirely uppercase and not too long. Overlaps the
	// all-caps pattern above for lengths 11-50; intentionally kept separate.
	if isUpper(line) && n >= 10 && n <= 50 {
		return true
	}

	// Lines that start with a number, whitespace, then a capital letter.
	return numberedLineRe.MatchString(line)
}

// isUpper reports whether s contains at least one cased letter and no
// lowercase letters. Digits, spaces, and punctuation are neutral.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
