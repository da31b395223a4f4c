package parser

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// invisible characters OCR and PDF extraction tend to leave behind
var invisibleReplacer = strings.NewReplacer(
	" ", " ", // non-breaking space
	" ", " ", // figure space
	" ", " ", // narrow no-break space
	"​", "", // zero-width space
	"‌", "",
	"‍", "",
	"\uFEFF", "",
)

// NormalizeText collapses noisy whitespace across a whole extracted document.
// Conservative: keeps line breaks; collapses >2 newlines into a single blank line.
func NormalizeText(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = invisibleReplacer.Replace(s)
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// NormalizeLine canonicalizes a single line: strips invisible characters,
// collapses runs of whitespace, trims. Idempotent.
func NormalizeLine(s string) string {
	s = invisibleReplacer.Replace(s)
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SplitLines normalizes a document and returns its non-empty lines.
func SplitLines(text string) []string {
	raw := strings.Split(NormalizeText(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = NormalizeLine(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
