// Package parser turns loosely-structured, OCR/text-extracted shooting-plan
// documents into a normalized weekly schedule. It recognizes two document
// families (narrative day-by-day plans and tabular calendar grids) through a
// fixed-precedence heuristic cascade; unrecognized lines are noise, never
// errors.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmercade/shotplan/constants"
	"github.com/mmercade/shotplan/internal/entity"
)

// Parser is the text-to-schedule extraction engine. Stateless across calls;
// each Parse owns its own accumulator and queues.
type Parser struct {
	lex    *Lexicon
	year   int // 0 means: detect from the document
	logger *slog.Logger
}

func New(lex *Lexicon, defaultYear int, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{lex: lex, year: defaultYear, logger: logger}
}

// Parse runs the full pipeline: normalize, detect profile and year, line
// cascade, day finalization, schedule backfill, week aggregation. It never
// fails; the worst case is an empty result plus warnings.
func (p *Parser) Parse(text string) *entity.Result {
	if strings.TrimSpace(text) == "" {
		return &entity.Result{Weeks: []*entity.Week{}, Warnings: []string{constants.WarnNoText}}
	}

	lines := SplitLines(text)
	profile := DetectProfile(lines)
	year := p.year
	if year == 0 {
		year = ExtractYear(lines)
	}
	p.logger.Debug("parser.start", "profile", string(profile), "year", year, "lines", len(lines))

	proc := newProcessor(profile, year, p.lex, p.logger)
	for _, line := range lines {
		proc.processLine(line)
	}
	proc.finalizeCurrent()
	if len(proc.pendingDates) > 0 {
		// trailing bare dates with no schedule line after them
		proc.drainPendingDates(nil)
	}

	if backfillSchedules(proc.days, proc.rangesSeen) {
		p.logger.Debug("parser.backfill.applied", "ranges", len(proc.rangesSeen))
	}

	warnings := make([]string, 0, 3)
	if len(proc.days) == 0 {
		warnings = append(warnings, constants.WarnNoDays)
	}
	if len(proc.rangesSeen) == 0 {
		warnings = append(warnings, constants.WarnNoSchedule)
	}
	if proc.orphanLines > 0 {
		warnings = append(warnings, fmt.Sprintf("%s: %d", constants.WarnOrphanSchedulesPrefix, proc.orphanLines))
	}

	weeks := AggregateWeeks(proc.days)
	p.logger.Info("parser.done",
		"profile", string(profile),
		"days", len(proc.days),
		"weeks", len(weeks),
		"warnings", len(warnings))
	return &entity.Result{Weeks: weeks, Warnings: warnings}
}
