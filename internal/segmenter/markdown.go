package segmenter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var sectionNumRe = regexp.MustCompile(`^\d+\.\d+`)

// FormatMarkdown re-renders plain text with lightweight headings. Short
// all-uppercase lines become "## " headings in title case; short title-case
// or section-numbered ("1.2 ...") lines become "### " headings unchanged.
// Everything else, including blank lines, passes through as-is.
func FormatMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	formatted := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			formatted = append(formatted, "")
			continue
		}

		if utf8.RuneCountInString(line) < 80 &&
			(isUpper(line) || isTitleCase(line) || sectionNumRe.MatchString(line)) {
			if isUpper(line) {
				formatted = append(formatted, "## "+titleCase(line))
			} else {
				formatted = append(formatted, "### "+line)
			}
		} else {
			formatted = append(formatted, line)
		}
	}

	return strings.Join(formatted, "\n")
}

// isTitleCase reports whether s reads as title case: uppercase letters only
// at word starts, lowercase letters only following another letter, and at
// least one letter overall. Digits and punctuation break words.
func isTitleCase(s string) bool {
	cased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			cased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			cased = true
			prevCased = true
		default:
			prevCased = false
		}
	}
	return cased
}

// titleCase uppercases the first letter of every word and lowercases the
// rest. Word boundaries are any non-letter rune, so "O'BRIEN" becomes
// "O'Brien".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
