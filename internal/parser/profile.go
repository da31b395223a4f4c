package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmercade/shotplan/constants"
)

var (
	reProfileCalendar = regexp.MustCompile(`\bCALENDARI?O?\b`)
	reProfilePlan     = regexp.MustCompile(`\bPLAN?\s+(?:DE\s+)?(?:RODAJE|RODATGE)\b`)

	reFullYear  = regexp.MustCompile(`\b(20\d{2})\b`)
	reShortYear = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-](\d{2})\b`)
)

// DetectProfile classifies the document family from its joined uppercased
// text. Calendar keywords win over plan keywords.
func DetectProfile(lines []string) constants.Profile {
	joined := strings.ToUpper(strings.Join(lines, "\n"))
	switch {
	case reProfileCalendar.MatchString(joined):
		return constants.ProfileCalendar
	case reProfilePlan.MatchString(joined):
		return constants.ProfilePlan
	default:
		return constants.ProfileGeneric
	}
}

// ExtractYear resolves the document's default year: first 4-digit 20xx token,
// else a 2-digit year suffix on a dd/mm/yy token, else the current year.
// The current-year fallback is the only environmental read in the parser.
func ExtractYear(lines []string) int {
	joined := strings.Join(lines, "\n")
	if m := reFullYear.FindStringSubmatch(joined); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	if m := reShortYear.FindStringSubmatch(joined); m != nil {
		y, _ := strconv.Atoi(m[1])
		return 2000 + y
	}
	return time.Now().Year()
}
