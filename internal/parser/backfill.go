package parser

import (
	"github.com/mmercade/shotplan/constants"
	"github.com/mmercade/shotplan/internal/entity"
)

// backfillSchedules is the best-effort recovery pass for documents whose
// schedule lines never attached to a day. It runs only when fewer than
// min(3, rangesObserved) finalized days ended up with a schedule; that
// empirical threshold signals that structured attachment clearly failed,
// and it is deliberately kept as-is. When triggered, observed ranges are
// assigned in source order to the days lacking one, each range used once.
//
// Returns whether the pass ran.
func backfillSchedules(days []*entity.Day, ranges []TimeRange) bool {
	withSchedule := 0
	for _, d := range days {
		if d.HasSchedule() {
			withSchedule++
		}
	}
	threshold := min(3, len(ranges))
	if withSchedule >= threshold {
		return false
	}

	i := 0
	for _, d := range days {
		if i >= len(ranges) {
			break
		}
		if d.HasSchedule() {
			continue
		}
		d.CrewStart = ranges[i].Start
		d.CrewEnd = ranges[i].End
		d.CrewTipo = constants.CrewTipoPersonalizado
		i++
	}
	return true
}
