package parser

import (
	"regexp"
)

// SequenceMatch is a recognized scene line: its raw number token and the
// sanitized title.
type SequenceMatch struct {
	ID    string
	Title string
}

var (
	reSequenceLine = regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,2})?[A-Z]?)(?:\s+|:\s*)(.+)$`)
	reLeadingTime  = regexp.MustCompile(`^\d{1,2}[:.,]\d{2}`)
	reDayWordEn    = regexp.MustCompile(`(?i)\bDAY\s+\d`)

	// trailing production metadata that never belongs in a scene title
	reTitleMeta = regexp.MustCompile(`(?i)\s*\b(?:gui[oó]n|p[aá]gs?\.?|df|personajes?|figuraci[oó]n|veh(?:[ií]culos)?\.?|luz|making(?:\s+of)?|fotos?|atrezzo|vestuario|maquillaje)\b.*$`)
	reTitleTrim = regexp.MustCompile(`[\s\-–,;:.]+$`)
)

// ExtractSequenceLine recognizes a numbered scene line such as
// "12A Int. Despacho - Pedro entra" or "4.2: Cocina". Lines that look like
// day headers, carry a leading clock time, or mention page counts are not
// scenes.
func ExtractSequenceLine(line string) *SequenceMatch {
	if reDiaMarker.MatchString(line) || reDayWordEn.MatchString(line) {
		return nil
	}
	if reLeadingTime.MatchString(line) {
		return nil
	}
	if rePageKeyword.MatchString(line) {
		return nil
	}
	m := reSequenceLine.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	title := SanitizeSequenceTitle(m[2])
	if title == "" {
		return nil
	}
	return &SequenceMatch{ID: m[1], Title: title}
}

// SanitizeSequenceTitle strips trailing metadata markers, embedded time
// ranges and page fractions from a scene title.
func SanitizeSequenceTitle(title string) string {
	title = reTitleMeta.ReplaceAllString(title, "")
	title = reTimeRange.ReplaceAllString(title, " ")
	title = rePageFraction.ReplaceAllString(title, " ")
	title = NormalizeLine(title)
	return reTitleTrim.ReplaceAllString(title, "")
}

// SequenceLabel renders the display label for a scene: the raw number token
// plus the sanitized title.
func SequenceLabel(id, title string) string {
	if title == "" {
		return id
	}
	return id + " " + title
}

// looksLikeSequence is the cheap pre-check used by the location heuristics.
func looksLikeSequence(line string) bool {
	return reSequenceLine.MatchString(line)
}
