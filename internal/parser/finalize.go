package parser

import (
	"strings"

	"github.com/mmercade/shotplan/constants"
	"github.com/mmercade/shotplan/internal/entity"
)

// finalizeDay converts an accumulator into an immutable day record.
// Unresolved scene locations fall back to the day default; the week start is
// pinned by the grid column when one was present, otherwise it is the ISO
// Monday of the date.
func finalizeDay(b *dayBuilder) *entity.Day {
	seqs := make([]entity.Sequence, len(b.sequences))
	copy(seqs, b.sequences)
	for i := range seqs {
		if seqs[i].Location == "" {
			seqs[i].Location = b.defaultLocation
		}
	}

	var weekStart string
	var dayIndex int
	if b.columnIndex >= 0 && b.columnIndex <= 6 {
		dayIndex = b.columnIndex
		weekStart = b.date.AddDate(0, 0, -b.columnIndex).Format("2006-01-02")
	} else {
		monday := ISOMonday(b.date)
		weekStart = monday.Format("2006-01-02")
		dayIndex = int(b.date.Sub(monday).Hours() / 24)
	}

	tipo := constants.CrewTipoGeneral
	if b.start != "" || b.end != "" {
		tipo = constants.CrewTipoPersonalizado
	}

	return &entity.Day{
		DateISO:               b.date.Format("2006-01-02"),
		WeekStart:             weekStart,
		DayIndex:              dayIndex,
		WeekLabel:             b.weekLabel,
		Sequences:             seqs,
		LocationSequencesText: renderLocationSequences(seqs),
		TransportText:         strings.Join(b.transports, "\n"),
		ObservationsText:      strings.Join(b.observations, "\n"),
		Precall:               b.precall,
		CrewStart:             b.start,
		CrewEnd:               b.end,
		CrewTipo:              tipo,
	}
}

// renderLocationSequences groups consecutive scenes sharing a location under
// one heading. When no scene has any location the list renders flat.
func renderLocationSequences(seqs []entity.Sequence) string {
	if len(seqs) == 0 {
		return ""
	}
	anyLocation := false
	for _, s := range seqs {
		if s.Location != "" {
			anyLocation = true
			break
		}
	}

	var sb strings.Builder
	if !anyLocation {
		for _, s := range seqs {
			sb.WriteString("- " + s.Label + "\n")
		}
		return strings.TrimRight(sb.String(), "\n")
	}

	prev := "\x00" // sentinel distinct from any real location
	for _, s := range seqs {
		if s.Location != prev {
			heading := s.Location
			if heading == "" {
				heading = "Sin localización"
			}
			sb.WriteString(heading + ":\n")
			prev = s.Location
		}
		sb.WriteString("- " + s.Label + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
