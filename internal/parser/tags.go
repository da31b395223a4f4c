package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reWeekLabel = regexp.MustCompile(`(?i)\b(SEMANA|SETMANA|WEEK)\s+(-?\d+)(?:\s*-\s*(.+))?`)

	reTransport = regexp.MustCompile(`(?i)\btraslado\b|\btrasllat\b|\bcompany\s+move\b`)
	rePrelight  = regexp.MustCompile(`(?i)\bpre-?light\b\D*(\d+)\s*(min(?:utos)?|h(?:oras?)?|hours?)?`)

	reNoiseHeader = regexp.MustCompile(`(?i)^(?:gui[oó]n|df|personajes|figuraci[oó]n|veh[ií]culos|luz|sonido|c[aá]mara|horario|making(?:\s+of)?|fotos?|atrezzo|vestuario|maquillaje|observaciones|notas?|total(?:es)?)\b[:.]?\s*$`)
	reRuleLine    = regexp.MustCompile(`^[\s_\-–=.·*]+$`)
)

// WeekLabelMatch is a recognized week header. Label keeps the suffix joined
// with a plain space: the dash-based scope rule must key only off negative
// week numbers.
type WeekLabelMatch struct {
	Label  string
	Number int
}

// ExtractWeekLabel matches "SEMANA 1", "Week -2 - prep", "SETMANA 3".
func ExtractWeekLabel(line string) *WeekLabelMatch {
	m := reWeekLabel.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	n, _ := strconv.Atoi(m[2])
	keyword := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
	label := keyword + " " + m[2]
	if suffix := strings.TrimSpace(m[3]); suffix != "" {
		label += " " + suffix
	}
	return &WeekLabelMatch{Label: label, Number: n}
}

// observation phrases carried by real plans; extended via Lexicon
var observationPhrases = []string{
	"equipo reducido",
	"equip reduit",
	"jornada reducida",
	"media jornada",
	"dia libre",
	"descanso",
	"festivo",
	"fiesta local",
	"segunda unidad",
	"2a unidad",
	"viaje a",
	"viatge a",
}

// ExtractObservation returns the line when it carries a known observation
// phrase ("equipo reducido", "viaje a madrid", ...).
func ExtractObservation(line string, lex *Lexicon) (string, bool) {
	folded := foldKey(line)
	for _, p := range observationPhrases {
		if strings.Contains(folded, p) {
			return line, true
		}
	}
	if lex != nil {
		for _, p := range lex.ObservationPhrases {
			if strings.Contains(folded, foldKey(p)) {
				return line, true
			}
		}
	}
	return "", false
}

// IsTransportLine matches "traslado"/"trasllat"/"company move" lines.
func IsTransportLine(line string) bool {
	return reTransport.MatchString(line)
}

// ExtractPrelight parses "prelight 30 min" / "prelight 1h" into an HH:MM
// duration used as the precall.
func ExtractPrelight(line string) (string, bool) {
	m := rePrelight.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return "", false
	}
	unit := foldKey(m[2])
	minutes := n
	if strings.HasPrefix(unit, "h") {
		minutes = n * 60
	}
	if minutes >= 24*60 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), true
}

// IsNoiseLine is the catch-all filter for lines that carry no schedule
// content: pagination, section headers, ruler lines, lone numbers.
func IsNoiseLine(line string, lex *Lexicon) bool {
	if IsPaginationLine(line) {
		return true
	}
	if reNoiseHeader.MatchString(line) || reRuleLine.MatchString(line) {
		return true
	}
	if reBareNumber.MatchString(line) {
		return true
	}
	if lex != nil {
		folded := foldKey(line)
		for _, w := range lex.NoiseWords {
			if folded == foldKey(w) {
				return true
			}
		}
	}
	return false
}
