package parser

import (
	"testing"

	"github.com/mmercade/shotplan/constants"
	"github.com/mmercade/shotplan/internal/entity"
)

func TestScopeForLabel(t *testing.T) {
	tests := []struct {
		label string
		want  constants.Scope
	}{
		{"Semana 1", constants.ScopePro},
		{"Semana -1", constants.ScopePre},
		{"Week -2 prep", constants.ScopePre},
		{"", constants.ScopePro},
	}
	for _, tt := range tests {
		if got := ScopeForLabel(tt.label); got != tt.want {
			t.Errorf("ScopeForLabel(%q) = %s, want %s", tt.label, got, tt.want)
		}
	}
}

func TestResolveSlotConflict(t *testing.T) {
	scheduled := &entity.Day{DateISO: "2024-01-05", CrewStart: "08:00", CrewEnd: "20:00"}
	populated := &entity.Day{DateISO: "2024-01-05", Sequences: []entity.Sequence{{ID: "1", Label: "1 Int. Casa"}}}
	empty := &entity.Day{DateISO: "2024-01-05"}

	if got := ResolveSlotConflict(populated, scheduled); got != scheduled {
		t.Error("schedule must beat sequences alone")
	}
	if got := ResolveSlotConflict(empty, populated); got != populated {
		t.Error("populated must beat empty")
	}
	if got := ResolveSlotConflict(empty, empty); got != empty {
		t.Error("tie must keep the first")
	}
	first := &entity.Day{DateISO: "2024-01-05", Sequences: []entity.Sequence{{ID: "1"}}}
	second := &entity.Day{DateISO: "2024-01-05", Sequences: []entity.Sequence{{ID: "2"}}}
	if got := ResolveSlotConflict(first, second); got != first {
		t.Error("equal richness must keep the first")
	}
}

func TestAggregateWeeks(t *testing.T) {
	days := []*entity.Day{
		{DateISO: "2024-01-05", WeekStart: "2024-01-01", DayIndex: 4, WeekLabel: "Semana 1"},
		{DateISO: "2024-01-02", WeekStart: "2024-01-01", DayIndex: 1, WeekLabel: "Semana 1"},
		{DateISO: "2024-01-09", WeekStart: "2024-01-08", DayIndex: 1, WeekLabel: "Semana 2"},
		{DateISO: "2023-12-28", WeekStart: "2023-12-25", DayIndex: 3, WeekLabel: "Semana -1"},
	}
	weeks := AggregateWeeks(days)
	if len(weeks) != 3 {
		t.Fatalf("got %d weeks, want 3", len(weeks))
	}
	if weeks[0].StartDate != "2023-12-25" || weeks[0].Scope != constants.ScopePre {
		t.Errorf("weeks[0] = %s/%s, want 2023-12-25/pre", weeks[0].StartDate, weeks[0].Scope)
	}
	if weeks[1].StartDate != "2024-01-01" || len(weeks[1].Days) != 2 {
		t.Errorf("weeks[1] = %s with %d days, want 2024-01-01 with 2", weeks[1].StartDate, len(weeks[1].Days))
	}
	if weeks[2].Label != "Semana 2" {
		t.Errorf("weeks[2].Label = %q, want Semana 2", weeks[2].Label)
	}
}

func TestAggregateWeeks_SlotConflict(t *testing.T) {
	bare := &entity.Day{DateISO: "2024-01-05", WeekStart: "2024-01-01", DayIndex: 4, WeekLabel: "Semana 1"}
	rich := &entity.Day{DateISO: "2024-01-05", WeekStart: "2024-01-01", DayIndex: 4, WeekLabel: "Semana 1",
		CrewStart: "09:00", CrewEnd: "18:00"}
	weeks := AggregateWeeks([]*entity.Day{bare, rich})
	if len(weeks) != 1 {
		t.Fatalf("got %d weeks, want 1", len(weeks))
	}
	if got := weeks[0].Days[4]; got != rich {
		t.Error("scheduled day must win the slot")
	}
}

func TestAggregateWeeks_ScopeSplitsSameStart(t *testing.T) {
	pre := &entity.Day{DateISO: "2024-01-01", WeekStart: "2024-01-01", DayIndex: 0, WeekLabel: "Semana -1"}
	pro := &entity.Day{DateISO: "2024-01-02", WeekStart: "2024-01-01", DayIndex: 1, WeekLabel: "Semana 1"}
	weeks := AggregateWeeks([]*entity.Day{pro, pre})
	if len(weeks) != 2 {
		t.Fatalf("got %d weeks, want 2", len(weeks))
	}
	// same start date: pre sorts before pro
	if weeks[0].Scope != constants.ScopePre || weeks[1].Scope != constants.ScopePro {
		t.Errorf("scopes = %s,%s, want pre,pro", weeks[0].Scope, weeks[1].Scope)
	}
}
