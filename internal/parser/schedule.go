package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeRange is a crew schedule window, already normalized to HH:MM.
type TimeRange struct {
	Start string
	End   string
}

// Schedule kinds, as returned by ExtractScheduleLine.
const (
	ScheduleKindLabeled = "labeled"
	ScheduleKindBare    = "bare"
)

// ScheduleMatch is a line recognized as a standalone schedule line.
type ScheduleMatch struct {
	Ranges []TimeRange
	Kind   string
}

var (
	reScheduleLabel = regexp.MustCompile(`(?i)\b(?:HORARIO|SHOOTING\s+TIME|UNIT\s+CALL|CALL\s+TIME|H)\b\s*[:.]?\s*`)

	// "9:00 a 18:30", "9h30-19h", "9.30/18", "8 to 17"
	// groups: 1 start hour, 2 start minutes, 3 separator, 4 end hour,
	// 5 end minutes, 6 trailing h marker
	reTimeRange = regexp.MustCompile(`\b(\d{1,2})(?:[:.,hH](\d{2}))?\s*([-–/]|\s[aA]\s|\s[tT][oO]\s)\s*(\d{1,2})(?:[:.,hH](\d{2}))?([hH])?\b`)

	reParenthetical = regexp.MustCompile(`\([^)]*\)`)

	reMealBreak = regexp.MustCompile(`(?i)\b(?:lunch|dinner|break|comida|cena|descanso)\b`)
)

// Words that may surround a schedule range without making the line something
// other than a schedule line.
var scheduleNoiseWords = map[string]struct{}{
	"tbc": {}, "aprox": {}, "approx": {}, "lunch": {}, "dinner": {},
	"break": {}, "prep": {}, "shooting": {}, "horario": {}, "unit": {},
	"call": {}, "time": {}, "h": {}, "hs": {}, "hrs": {}, "am": {}, "pm": {},
	"a": {}, "to": {}, "de": {},
}

// normalizeClock renders an hour/minute fragment as HH:MM. Fragments like
// "9h30", "9.30" and "9,30" all normalize the same way.
func normalizeClock(hour, minute string) (string, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return "", false
	}
	m := 0
	if minute != "" {
		m, err = strconv.Atoi(minute)
		if err != nil || m < 0 || m > 59 {
			return "", false
		}
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

func rangeFromMatch(m []string) (TimeRange, bool) {
	start, ok := normalizeClock(m[1], m[2])
	if !ok {
		return TimeRange{}, false
	}
	end, ok := normalizeClock(m[4], m[5])
	if !ok {
		return TimeRange{}, false
	}
	return TimeRange{Start: start, End: end}, true
}

// ambiguousWithDate reports whether a matched pair like "1/2" is just as
// plausibly a dd/mm token: slash separator, no minutes, no h marker.
func ambiguousWithDate(m []string) bool {
	return m[3] == "/" && m[2] == "" && m[5] == "" && m[6] == ""
}

// findTimeRanges returns every parseable range on the line, in order.
// Slash pairs without minutes are skipped; they collide with dd/mm dates.
func findTimeRanges(line string) []TimeRange {
	var out []TimeRange
	for _, m := range reTimeRange.FindAllStringSubmatch(line, -1) {
		if ambiguousWithDate(m) {
			continue
		}
		if r, ok := rangeFromMatch(m); ok {
			out = append(out, r)
		}
	}
	return out
}

// findLabeledRange returns the first range following a HORARIO-class label.
// After a label the date ambiguity is gone, so "HORARIO 9/18" counts.
func findLabeledRange(line string) *TimeRange {
	loc := reScheduleLabel.FindStringIndex(line)
	if loc == nil {
		return nil
	}
	if m := reTimeRange.FindStringSubmatch(line[loc[1]:]); m != nil {
		if r, ok := rangeFromMatch(m); ok {
			return &r
		}
	}
	return nil
}

// findExplicitRanges matches ranges that are unambiguously time ranges:
// minutes on at least one side, or a trailing "h" marker. A bare "1 - 5"
// never qualifies.
func findExplicitRanges(s string) []TimeRange {
	var out []TimeRange
	for _, m := range reTimeRange.FindAllStringSubmatch(s, -1) {
		if m[2] == "" && m[5] == "" && m[6] == "" {
			continue
		}
		if r, ok := rangeFromMatch(m); ok {
			out = append(out, r)
		}
	}
	return out
}

func findExplicitRange(s string) *TimeRange {
	if rs := findExplicitRanges(s); len(rs) > 0 {
		return &rs[0]
	}
	return nil
}

// ExtractScheduleLine decides whether a whole line is a schedule line.
// After stripping the matched ranges, parenthetical asides and known noise
// words, no other token may remain: a range quoted inside an unrelated
// sentence is rejected.
func ExtractScheduleLine(line string) *ScheduleMatch {
	ranges := findTimeRanges(line)
	if len(ranges) == 0 {
		return nil
	}
	kind := ScheduleKindBare
	if reScheduleLabel.MatchString(line) {
		kind = ScheduleKindLabeled
	}
	residual := reParenthetical.ReplaceAllString(line, " ")
	residual = reTimeRange.ReplaceAllString(residual, " ")
	residual = reScheduleLabel.ReplaceAllString(residual, " ")
	for _, tok := range strings.Fields(residual) {
		tok = strings.Trim(strings.ToLower(tok), ".,;:()[]")
		if tok == "" {
			continue
		}
		if _, ok := scheduleNoiseWords[tok]; ok {
			continue
		}
		return nil
	}
	return &ScheduleMatch{Ranges: ranges, Kind: kind}
}

// IsMealBreakLine reports whether a schedule fragment belongs to a meal or
// rest break rather than the crew call.
func IsMealBreakLine(line string) bool {
	return reMealBreak.MatchString(line)
}
