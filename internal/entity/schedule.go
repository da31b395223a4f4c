package entity

import (
	"github.com/mmercade/shotplan/constants"
)

// Sequence is a numbered shooting scene within a day. The ID is the raw scene
// number token from the document ("12", "12A", "4.2B"); Label is the ID plus
// the sanitized title; Location is optional and resolved at day finalization.
type Sequence struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Location string `json:"location,omitempty"`
}

// Day is a finalized shooting day. Immutable once built, except that the
// schedule backfill pass may fill CrewStart/CrewEnd on days lacking one.
//
// WeekStart is always a Monday (ISO week); DayIndex is the offset in days
// from WeekStart to DateISO, in [0..6]. When the upstream extractor tagged
// the source line with a grid column marker, DayIndex is taken directly from
// the column and WeekStart derived from it.
type Day struct {
	DateISO               string     `json:"date"`
	WeekStart             string     `json:"week_start"`
	DayIndex              int        `json:"day_index"`
	WeekLabel             string     `json:"week_label,omitempty"`
	Sequences             []Sequence `json:"sequences"`
	LocationSequencesText string     `json:"location_sequences_text,omitempty"`
	TransportText         string     `json:"transport_text,omitempty"`
	ObservationsText      string     `json:"observations_text,omitempty"`
	Precall               string     `json:"precall,omitempty"`
	CrewStart             string     `json:"crew_start,omitempty"`
	CrewEnd               string     `json:"crew_end,omitempty"`
	CrewTipo              string     `json:"crew_tipo"`
}

// HasSchedule reports whether the day carries an explicit crew schedule.
func (d *Day) HasSchedule() bool {
	return d.CrewStart != "" || d.CrewEnd != ""
}

// IsEmpty reports whether the day carries no content beyond its date.
func (d *Day) IsEmpty() bool {
	return !d.HasSchedule() &&
		len(d.Sequences) == 0 &&
		d.LocationSequencesText == "" &&
		d.TransportText == "" &&
		d.ObservationsText == "" &&
		d.Precall == ""
}

// Week groups finalized days by (scope, week start). Days is keyed by
// DayIndex; at most one day per slot.
type Week struct {
	StartDate string          `json:"start_date"`
	Label     string          `json:"label,omitempty"`
	Scope     constants.Scope `json:"scope"`
	Days      map[int]*Day    `json:"days"`
}

// Result is the parser output: extracted weeks plus advisory warnings.
type Result struct {
	Weeks    []*Week  `json:"weeks"`
	Warnings []string `json:"warnings"`
}
