package parser

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmercade/shotplan/constants"
	"github.com/mmercade/shotplan/internal/entity"
)

var reColMarker = regexp.MustCompile(`^\[COL:(\d+)\]\s*`)

// dayBuilder accumulates everything seen between one day trigger and the
// next. It is owned by the processor, replaced (never aliased) on every
// open/finalize transition.
type dayBuilder struct {
	date            time.Time
	weekLabel       string
	columnIndex     int // -1 when no grid column marker applied
	start, end      string
	precall         string
	defaultLocation string
	locationContext string
	sequences       []entity.Sequence
	observations    []string
	transports      []string
}

// processor drives the per-line decision cascade. The order of the cascade
// steps is the priority between competing interpretations of an ambiguous
// line; changing it changes the language the parser accepts.
type processor struct {
	profile constants.Profile
	year    int
	lex     *Lexicon
	logger  *slog.Logger

	cur           *dayBuilder
	weekLabel     string
	pendingRanges []TimeRange
	pendingDates  []time.Time
	lastSeqID     string

	days        []*entity.Day
	rangesSeen  []TimeRange // every observed range, in source order
	orphanLines int         // schedule lines seen while no day was active
}

func newProcessor(profile constants.Profile, year int, lex *Lexicon, logger *slog.Logger) *processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &processor{profile: profile, year: year, lex: lex, logger: logger}
}

// processLine splits dense multi-day lines into segments and runs the
// cascade on each.
func (p *processor) processLine(line string) {
	for _, seg := range splitMultiDay(line) {
		p.processSegment(seg)
	}
}

// splitMultiDay cuts a line holding more than one "DÍA n" marker into
// independent segments, one per marker (plus any prefix before the first).
func splitMultiDay(line string) []string {
	marks := reDiaMarker.FindAllStringIndex(line, -1)
	if len(marks) < 2 {
		return []string{line}
	}
	var segs []string
	if prefix := strings.TrimSpace(line[:marks[0][0]]); prefix != "" {
		segs = append(segs, prefix)
	}
	for i, m := range marks {
		end := len(line)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		segs = append(segs, strings.TrimSpace(line[m[0]:end]))
	}
	return segs
}

func (p *processor) processSegment(seg string) {
	// 1. grid column marker
	col := -1
	if m := reColMarker.FindStringSubmatch(seg); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 && n <= 6 {
			col = n
		}
		seg = seg[len(m[0]):]
	}
	if seg == "" {
		return
	}

	// 2. standalone schedule line
	if sm := ExtractScheduleLine(seg); sm != nil {
		p.consumeScheduleLine(sm)
		return
	}

	// 3. week label
	if wl := ExtractWeekLabel(seg); wl != nil {
		p.weekLabel = wl.Label
		return
	}

	// 4. day-start line
	if ds := ExtractDayStart(seg, p.year); ds != nil {
		p.openDay(ds, col)
		return
	}

	// 5. calendar grid sub-cascade
	if p.profile == constants.ProfileCalendar {
		if p.processGridSegment(seg, col) {
			return
		}
	}

	// 6. nothing matched and no day is open
	if p.cur == nil {
		p.logger.Debug("parser.cascade.drop", "line", seg)
		return
	}

	// 7. in-day handlers
	if p.processInDay(seg) {
		return
	}

	// 8. noise
	if IsNoiseLine(seg, p.lex) {
		return
	}
	p.logger.Debug("parser.cascade.unmatched", "line", seg)
}

// consumeScheduleLine routes a recognized schedule line: into the open day,
// into queued calendar dates, or onto the pending queue.
func (p *processor) consumeScheduleLine(sm *ScheduleMatch) {
	p.rangesSeen = append(p.rangesSeen, sm.Ranges...)
	switch {
	case p.cur != nil:
		ranges := sm.Ranges
		if p.cur.start == "" && p.cur.end == "" && len(ranges) > 0 {
			p.cur.start, p.cur.end = ranges[0].Start, ranges[0].End
			ranges = ranges[1:]
		}
		p.pendingRanges = append(p.pendingRanges, ranges...)
	case len(p.pendingDates) > 0:
		p.drainPendingDates(sm.Ranges)
	default:
		p.orphanLines++
		p.pendingRanges = append(p.pendingRanges, sm.Ranges...)
	}
}

// drainPendingDates pairs queued calendar dates with ranges, finalizing one
// day per date. With fewer ranges than dates the last range repeats.
func (p *processor) drainPendingDates(ranges []TimeRange) {
	pool := append(append([]TimeRange{}, p.pendingRanges...), ranges...)
	p.pendingRanges = nil
	for i, d := range p.pendingDates {
		b := &dayBuilder{date: d, weekLabel: p.weekLabel, columnIndex: -1}
		if len(pool) > 0 {
			r := pool[min(i, len(pool)-1)]
			b.start, b.end = r.Start, r.End
		}
		p.days = append(p.days, finalizeDay(b))
	}
	p.pendingDates = nil
}

// openDay finalizes the current accumulator and starts a new one seeded
// from the day header and any queued schedule range.
func (p *processor) openDay(ds *DayStart, col int) {
	p.finalizeCurrent()
	b := &dayBuilder{
		date:        ds.Date,
		weekLabel:   p.weekLabel,
		columnIndex: col,
		start:       ds.Start,
		end:         ds.End,
	}
	if b.start == "" && b.end == "" && len(p.pendingRanges) > 0 {
		b.start, b.end = p.pendingRanges[0].Start, p.pendingRanges[0].End
		p.pendingRanges = p.pendingRanges[1:]
	}
	p.cur = b
	p.lastSeqID = ""
}

// processGridSegment handles calendar-profile lines: bare date runs enqueue,
// date+schedule combos spawn finalized days, a single date opens a day.
func (p *processor) processGridSegment(seg string, col int) bool {
	dates := ExtractCalendarDates(seg, p.year)
	if len(dates) == 0 {
		return false
	}
	rest := StripCalendarDates(seg)

	if len(dates) >= 2 && rest == "" {
		p.pendingDates = append(p.pendingDates, dates...)
		return true
	}

	if inline := findExplicitRanges(seg); len(inline) > 0 {
		pool := append(append([]TimeRange{}, p.pendingRanges...), inline...)
		p.pendingRanges = nil
		p.rangesSeen = append(p.rangesSeen, inline...)
		for i, d := range dates {
			b := &dayBuilder{date: d, weekLabel: p.weekLabel, columnIndex: -1}
			tr := pool[min(i, len(pool)-1)]
			b.start, b.end = tr.Start, tr.End
			p.days = append(p.days, finalizeDay(b))
		}
		return true
	}

	if len(dates) == 1 {
		p.openDay(&DayStart{Date: dates[0]}, col)
		if rest != "" {
			p.processInDay(rest)
		}
		return true
	}
	return false
}

// processInDay runs the fixed in-day handler order against the open
// accumulator. Returns true when a handler consumed the segment.
func (p *processor) processInDay(seg string) bool {
	if p.cur == nil {
		return false
	}
	b := p.cur

	// a. inline horario embedded in a longer line
	if r := findLabeledRange(seg); r != nil && !IsMealBreakLine(seg) {
		if b.start == "" && b.end == "" {
			b.start, b.end = r.Start, r.End
		}
		p.rangesSeen = append(p.rangesSeen, *r)
		return true
	}

	// b. observation tag
	if obs, ok := ExtractObservation(seg, p.lex); ok {
		b.observations = append(b.observations, obs)
		return true
	}

	// c. prelight duration
	if pre, ok := ExtractPrelight(seg); ok {
		if b.precall == "" {
			b.precall = pre
		}
		return true
	}

	// d. transport line, labeled with the last scene seen
	if IsTransportLine(seg) {
		entry := seg
		if p.lastSeqID != "" {
			entry += " (tras sec. " + p.lastSeqID + ")"
		} else {
			entry += " (inicio de jornada)"
		}
		b.transports = append(b.transports, entry)
		return true
	}

	// e. numbered scene line
	if sq := ExtractSequenceLine(seg); sq != nil {
		loc := ExtractLocationFromTitle(sq.Title)
		if loc == "" {
			loc = b.locationContext
		}
		b.sequences = append(b.sequences, entity.Sequence{
			ID:       sq.ID,
			Label:    SequenceLabel(sq.ID, sq.Title),
			Location: loc,
		})
		p.lastSeqID = sq.ID
		return true
	}

	// f. default location, only before any scene
	if len(b.sequences) == 0 && b.defaultLocation == "" {
		if loc, ok := defaultLocationFrom(seg); ok {
			b.defaultLocation = loc
			return true
		}
	}

	// g. trailing city merged into the prior location
	if IsCityOverride(seg) {
		if n := len(b.sequences); n > 0 {
			b.sequences[n-1].Location = CombineLocationWithCity(b.sequences[n-1].Location, seg)
			return true
		}
		if b.defaultLocation != "" {
			b.defaultLocation = CombineLocationWithCity(b.defaultLocation, seg)
			return true
		}
	}

	// h. fill the most recent scene lacking a location
	if IsLocationCandidate(seg) && !looksLikeSequence(seg) {
		if loc := locationFromLine(seg); loc != "" {
			for i := len(b.sequences) - 1; i >= 0; i-- {
				if b.sequences[i].Location == "" {
					b.sequences[i].Location = loc
					return true
				}
			}
			// i. ambient location context for scenes still to come
			b.locationContext = loc
			return true
		}
	}
	return false
}

// defaultLocationFrom accepts all-caps or parenthesized, non-INT/EXT lines
// as a day-wide default location.
func defaultLocationFrom(seg string) (string, bool) {
	s := strings.TrimSpace(seg)
	parenthesized := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if parenthesized {
		s = strings.TrimSpace(strings.Trim(s, "()"))
	}
	if s == "" || reIntExtMarker.MatchString(s) {
		return "", false
	}
	if !parenthesized && s != strings.ToUpper(s) {
		return "", false
	}
	if !IsLocationCandidate(s) || reBareNumber.MatchString(s) {
		return "", false
	}
	return s, true
}

// locationFromLine prefers the INT/EXT extraction, falling back to the raw
// candidate text.
func locationFromLine(seg string) string {
	if loc := ExtractLocationFromTitle(seg); loc != "" {
		return loc
	}
	s := strings.TrimSpace(seg)
	if isStopToken(s) {
		return ""
	}
	return s
}

func (p *processor) finalizeCurrent() {
	if p.cur == nil {
		return
	}
	p.days = append(p.days, finalizeDay(p.cur))
	p.cur = nil
}
