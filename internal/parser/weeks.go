package parser

import (
	"sort"
	"strings"

	"github.com/mmercade/shotplan/constants"
	"github.com/mmercade/shotplan/internal/entity"
)

// ScopeForLabel derives the week scope from its label: a dash marks the
// pre-production numbering convention ("Semana -1"). Fragile but tied to the
// upstream label contract; do not generalize.
func ScopeForLabel(label string) constants.Scope {
	if strings.Contains(label, "-") {
		return constants.ScopePre
	}
	return constants.ScopePro
}

// ResolveSlotConflict picks the richer of two days competing for the same
// week slot: a day with a crew schedule beats one without, then any
// populated day beats a fully empty one. Ties keep the first.
func ResolveSlotConflict(a, b *entity.Day) *entity.Day {
	switch {
	case a.HasSchedule() && !b.HasSchedule():
		return a
	case b.HasSchedule() && !a.HasSchedule():
		return b
	case !a.IsEmpty() && b.IsEmpty():
		return a
	case !b.IsEmpty() && a.IsEmpty():
		return b
	default:
		return a
	}
}

type weekKey struct {
	scope constants.Scope
	start string
}

// AggregateWeeks groups finalized days into weeks by (scope, week start),
// resolving slot conflicts. Both the grid-date and day-start passes can
// produce a day for the same slot; only one survives.
func AggregateWeeks(days []*entity.Day) []*entity.Week {
	byKey := make(map[weekKey]*entity.Week)
	var order []weekKey
	for _, d := range days {
		key := weekKey{scope: ScopeForLabel(d.WeekLabel), start: d.WeekStart}
		w, ok := byKey[key]
		if !ok {
			w = &entity.Week{
				StartDate: d.WeekStart,
				Scope:     key.scope,
				Days:      make(map[int]*entity.Day),
			}
			byKey[key] = w
			order = append(order, key)
		}
		if w.Label == "" {
			w.Label = d.WeekLabel
		}
		if existing, ok := w.Days[d.DayIndex]; ok {
			w.Days[d.DayIndex] = ResolveSlotConflict(existing, d)
		} else {
			w.Days[d.DayIndex] = d
		}
	}

	weeks := make([]*entity.Week, 0, len(order))
	for _, k := range order {
		weeks = append(weeks, byKey[k])
	}
	sort.SliceStable(weeks, func(i, j int) bool {
		if weeks[i].StartDate != weeks[j].StartDate {
			return weeks[i].StartDate < weeks[j].StartDate
		}
		return weeks[i].Scope < weeks[j].Scope
	})
	return weeks
}
