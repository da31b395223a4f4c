package parser

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reIntExtMarker = regexp.MustCompile(`(?i)\b(?:INT\.?\s*/\s*EXT\.?|I\s*/\s*E|INT|EXT)\b\.?,?\s*`)
	reBareNumber   = regexp.MustCompile(`^\d+[.,]?$`)
	reLocationCut  = regexp.MustCompile(`\s[-–]\s`)
)

// tokens that an INT/EXT extraction must not degenerate into
var locationStopTokens = map[string]struct{}{
	"int": {}, "ext": {}, "i/e": {}, "int/ext": {},
	"dia": {}, "noche": {}, "day": {}, "night": {},
	"amanecer": {}, "atardecer": {}, "nit": {},
}

func isStopToken(s string) bool {
	_, ok := locationStopTokens[foldKey(strings.TrimRight(s, "."))]
	return ok
}

// IsLocationCandidate filters lines/fragments that could plausibly name a
// shooting location. Pagination, bare numbers, time ranges, "TBC" and long
// lowercase prose without separators are all rejected.
func IsLocationCandidate(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if IsPaginationLine(s) || reBareNumber.MatchString(s) {
		return false
	}
	if len(findTimeRanges(s)) > 0 {
		return false
	}
	if foldKey(s) == "tbc" {
		return false
	}
	words := strings.Fields(s)
	if len(words) > 6 && !strings.ContainsAny(s, "-–/·") && isMostlyLower(s) {
		return false
	}
	return true
}

func isMostlyLower(s string) bool {
	var lower, upper int
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower++
		case unicode.IsUpper(r):
			upper++
		}
	}
	return lower > upper*3
}

// ExtractLocationFromTitle pulls the location out of a scene title carrying
// an INT/EXT marker: "Int. Despacho - Pedro entra" yields "Despacho".
func ExtractLocationFromTitle(title string) string {
	loc := reIntExtMarker.FindStringIndex(title)
	if loc == nil {
		return ""
	}
	rest := title[loc[1]:]
	if cut := reLocationCut.FindStringIndex(rest); cut != nil {
		rest = rest[:cut[0]]
	}
	rest = strings.TrimSpace(strings.Trim(rest, "-–,;:"))
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || isStopToken(rest) {
		return ""
	}
	if !IsLocationCandidate(rest) {
		return ""
	}
	return rest
}

// IsCityOverride flags a short all-caps line as a trailing city name that
// belongs to the location captured just before it.
func IsCityOverride(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || line != strings.ToUpper(line) {
		return false
	}
	if !strings.ContainsFunc(line, unicode.IsLetter) {
		return false
	}
	if strings.ContainsFunc(line, unicode.IsDigit) {
		return false
	}
	if len(strings.Fields(line)) > 3 {
		return false
	}
	if isStopToken(line) {
		return false
	}
	return IsLocationCandidate(line)
}

// CombineLocationWithCity merges a trailing city line into an existing
// location. A bare INT/EXT placeholder is replaced outright; a city already
// contained in the location is a no-op; anything else concatenates.
func CombineLocationWithCity(location, city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return location
	}
	location = strings.TrimSpace(location)
	if location == "" || isStopToken(location) {
		return city
	}
	if strings.Contains(foldKey(location), foldKey(city)) {
		return location
	}
	return location + " - " + city
}
