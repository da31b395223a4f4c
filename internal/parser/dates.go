package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Month names accepted in dates: Spanish, Catalan, English (plus common
// English abbreviations). Keys are lowercased and accent-stripped.
var monthNums = map[string]time.Month{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4, "mayo": 5, "junio": 6,
	"julio": 7, "agosto": 8, "septiembre": 9, "setiembre": 9, "octubre": 10,
	"noviembre": 11, "diciembre": 12,
	"gener": 1, "febrer": 2, "marc": 3, "maig": 5, "juny": 6, "juliol": 7,
	"agost": 8, "setembre": 9, "novembre": 11, "desembre": 12,
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11,
	"december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7, "aug": 8,
	"sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
}

var weekdayNames = []string{
	"lunes", "martes", "miercoles", "jueves", "viernes", "sabado", "domingo",
	"dilluns", "dimarts", "dimecres", "dijous", "divendres", "dissabte", "diumenge",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "é", "e", "è", "e", "í", "i", "ï", "i",
	"ó", "o", "ò", "o", "ú", "u", "ü", "u", "ç", "c",
	"Á", "a", "À", "a", "É", "e", "È", "e", "Í", "i", "Ï", "i",
	"Ó", "o", "Ò", "o", "Ú", "u", "Ü", "u", "Ç", "c",
)

// foldKey lowercases and strips accents so "MIÉRCOLES" and "miercoles" compare equal.
func foldKey(s string) string {
	return strings.ToLower(accentReplacer.Replace(s))
}

func monthByName(word string) (time.Month, bool) {
	m, ok := monthNums[foldKey(word)]
	return m, ok
}

var weekdayAlt = func() string {
	alts := make([]string, 0, len(weekdayNames)*2)
	for _, w := range weekdayNames {
		alts = append(alts, w)
	}
	// accented spellings appear verbatim in documents
	alts = append(alts, "miércoles", "sábado", "sabat")
	return strings.Join(alts, "|")
}()

var (
	reNamedDate = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(?:de\s+|d['’]\s?)?([a-zA-ZÁÉÍÓÚáéíóúàèòç]+)(?:\s+(?:de[l]?\s+)?(\d{4}))?`)
	reDiaDotted = regexp.MustCompile(`(?i)^D[IÍ]A\s+\d{1,3}\.\s*(.*)$`)
	reDiaMarker = regexp.MustCompile(`(?i)\bD[IÍ]A\s+\d{1,3}\b`)
	reWeekday   = regexp.MustCompile(`(?i)\b(` + weekdayAlt + `)\b`)
	reNumDate   = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})(?:[/\-.](\d{2,4}))?\b`)
	reEnMonthDay = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?\b`)
	reDayDash    = regexp.MustCompile(`(?i)^DAY\s+\d{1,3}\s*[-–]\s*[a-z]+\s+([a-z]+)\s+(\d{1,2})(?:,?\s*(\d{4}))?`)

	rePageFraction = regexp.MustCompile(`\d+\s*/\s*\d+`)
	rePageKeyword  = regexp.MustCompile(`(?i)\bp(?:[aá])?gs?\b\.?|\bpag\b\.?`)

	reCalendarDate = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})\b`)
)

// DayStart is a matched day-header line: a concrete date plus an optional
// inline crew schedule found on the same line.
type DayStart struct {
	Date  time.Time
	Start string
	End   string
}

// ExtractDayStart tries the known date-line shapes in fixed priority order;
// the first shape that yields a valid date wins. A pure numeric dd/mm/yy is
// accepted only when the line also carries a day/date keyword, so unrelated
// number pairs never open a day.
func ExtractDayStart(line string, year int) *DayStart {
	for _, shape := range []func(string, int) (time.Time, int, bool){
		matchNamedMonthDate,
		matchDiaDottedDate,
		matchWeekdayDate,
		matchEnglishMonthDate,
		matchDayDashDate,
		matchGuardedNumericDate,
	} {
		if d, end, ok := shape(line, year); ok {
			ds := &DayStart{Date: d}
			ds.Start, ds.End = inlineSchedule(line, end)
			return ds
		}
	}
	return nil
}

// shape 1: "5 de enero 2024", "12 d'agost", "3 de març de 2025"
func matchNamedMonthDate(line string, year int) (time.Time, int, bool) {
	for _, idx := range reNamedDate.FindAllStringSubmatchIndex(line, -1) {
		m := submatches(line, idx)
		month, ok := monthByName(m[2])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		y := year
		if m[3] != "" {
			y, _ = strconv.Atoi(m[3])
		}
		if d, ok := makeDate(y, int(month), day); ok {
			return d, idx[1], true
		}
	}
	return time.Time{}, 0, false
}

// shape 2: "DÍA 3. 15/01" or "DÍA 3. MIÉRCOLES 15 de enero"
func matchDiaDottedDate(line string, year int) (time.Time, int, bool) {
	m := reDiaDotted.FindStringSubmatchIndex(line)
	if m == nil {
		return time.Time{}, 0, false
	}
	rest := line[m[2]:m[3]]
	if d, end, ok := matchNamedMonthDate(rest, year); ok {
		return d, m[2] + end, true
	}
	if nm := reNumDate.FindStringSubmatchIndex(rest); nm != nil {
		if d, ok := numericDate(rest, nm, year); ok {
			return d, m[2] + nm[1], true
		}
	}
	return time.Time{}, 0, false
}

// shape 3: "VIERNES 5/1" / "Dimarts, 14-01-2025"
func matchWeekdayDate(line string, year int) (time.Time, int, bool) {
	wd := reWeekday.FindStringIndex(line)
	if wd == nil {
		return time.Time{}, 0, false
	}
	rest := line[wd[1]:]
	if nm := reNumDate.FindStringSubmatchIndex(rest); nm != nil {
		if d, ok := numericDate(rest, nm, year); ok {
			return d, wd[1] + nm[1], true
		}
	}
	return time.Time{}, 0, false
}

// shape 4: "January 15" / "March 3rd, 2025"
func matchEnglishMonthDate(line string, year int) (time.Time, int, bool) {
	for _, idx := range reEnMonthDay.FindAllStringSubmatchIndex(line, -1) {
		m := submatches(line, idx)
		month, ok := monthByName(m[1])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[2])
		y := year
		if m[3] != "" {
			y, _ = strconv.Atoi(m[3])
		}
		if d, ok := makeDate(y, int(month), day); ok {
			return d, idx[1], true
		}
	}
	return time.Time{}, 0, false
}

// shape 5: "DAY 4 - Tuesday March 12"
func matchDayDashDate(line string, year int) (time.Time, int, bool) {
	idx := reDayDash.FindStringSubmatchIndex(line)
	if idx == nil {
		return time.Time{}, 0, false
	}
	m := submatches(line, idx)
	month, ok := monthByName(m[1])
	if !ok {
		return time.Time{}, 0, false
	}
	day, _ := strconv.Atoi(m[2])
	y := year
	if m[3] != "" {
		y, _ = strconv.Atoi(m[3])
	}
	if d, ok := makeDate(y, int(month), day); ok {
		return d, idx[1], true
	}
	return time.Time{}, 0, false
}

// numeric fallback, gated on a DIA/DAY marker or a weekday name
func matchGuardedNumericDate(line string, year int) (time.Time, int, bool) {
	if !reDiaMarker.MatchString(line) && !reWeekday.MatchString(line) &&
		!reDayWordEn.MatchString(line) {
		return time.Time{}, 0, false
	}
	if nm := reNumDate.FindStringSubmatchIndex(line); nm != nil {
		if d, ok := numericDate(line, nm, year); ok {
			return d, nm[1], true
		}
	}
	return time.Time{}, 0, false
}

func numericDate(s string, idx []int, year int) (time.Time, bool) {
	m := submatches(s, idx)
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	y := year
	if m[3] != "" {
		y, _ = strconv.Atoi(m[3])
		if y < 100 {
			y += 2000
		}
	}
	return makeDateOK(y, month, day)
}

func makeDate(y, month, day int) (time.Time, bool) {
	return makeDateOK(y, month, day)
}

func makeDateOK(y, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || y < 2000 || y > 2099 {
		return time.Time{}, false
	}
	d := time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, false // overflowed, e.g. 31/02
	}
	return d, true
}

// submatches maps a FindStringSubmatchIndex result to captured strings
// ("" for non-participating groups).
func submatches(s string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		if idx[2*i] >= 0 {
			out[i] = s[idx[2*i]:idx[2*i+1]]
		}
	}
	return out
}

// inlineSchedule captures a crew schedule following the date on the same
// line. Only a HORARIO-class label or an explicit range (minutes or an "h"
// suffix on at least one side) qualifies; a bare "1 - 5" never does.
func inlineSchedule(line string, dateEnd int) (string, string) {
	if r := findLabeledRange(line); r != nil {
		return r.Start, r.End
	}
	if dateEnd >= len(line) {
		return "", ""
	}
	if r := findExplicitRange(line[dateEnd:]); r != nil {
		return r.Start, r.End
	}
	return "", ""
}

// IsPaginationLine reports whether a line is a page marker such as
// "pg 3/12" or "2/8 pgs"; those must never be read as calendar dates.
func IsPaginationLine(line string) bool {
	return rePageFraction.MatchString(line) && rePageKeyword.MatchString(line)
}

// ExtractCalendarDates pulls every dd/mm or dd-mm token off a grid line.
// Pagination lines yield nothing.
func ExtractCalendarDates(line string, year int) []time.Time {
	if IsPaginationLine(line) {
		return nil
	}
	var out []time.Time
	for _, idx := range reCalendarDate.FindAllStringSubmatchIndex(line, -1) {
		m := submatches(line, idx)
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if d, ok := makeDateOK(year, month, day); ok {
			out = append(out, d)
		}
	}
	return out
}

// StripCalendarDates removes the dd/mm tokens from a line, leaving any
// adjoining text.
func StripCalendarDates(line string) string {
	return NormalizeLine(reCalendarDate.ReplaceAllString(line, " "))
}

// ISOMonday returns the Monday of the ISO week containing d.
func ISOMonday(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
