package parser

import (
	"testing"

	"github.com/mmercade/shotplan/constants"
	"github.com/mmercade/shotplan/internal/entity"
)

func TestBackfillSchedules_Activates(t *testing.T) {
	days := []*entity.Day{
		{DateISO: "2024-02-01"},
		{DateISO: "2024-02-02"},
		{DateISO: "2024-02-03"},
	}
	ranges := []TimeRange{
		{Start: "09:00", End: "18:00"},
		{Start: "10:00", End: "19:00"},
	}
	if !backfillSchedules(days, ranges) {
		t.Fatal("expected the pass to run")
	}
	if days[0].CrewStart != "09:00" || days[0].CrewEnd != "18:00" {
		t.Errorf("days[0] = %s..%s", days[0].CrewStart, days[0].CrewEnd)
	}
	if days[1].CrewStart != "10:00" || days[1].CrewEnd != "19:00" {
		t.Errorf("days[1] = %s..%s", days[1].CrewStart, days[1].CrewEnd)
	}
	if days[2].HasSchedule() {
		t.Error("ranges exhausted, days[2] must stay unscheduled")
	}
	if days[0].CrewTipo != constants.CrewTipoPersonalizado {
		t.Errorf("crew tipo = %s", days[0].CrewTipo)
	}
}

func TestBackfillSchedules_SkipsScheduledDays(t *testing.T) {
	days := []*entity.Day{
		{DateISO: "2024-02-01", CrewStart: "07:00", CrewEnd: "15:00"},
		{DateISO: "2024-02-02"},
	}
	ranges := []TimeRange{
		{Start: "09:00", End: "18:00"},
		{Start: "10:00", End: "19:00"},
		{Start: "11:00", End: "20:00"},
	}
	if !backfillSchedules(days, ranges) {
		t.Fatal("expected the pass to run")
	}
	if days[0].CrewStart != "07:00" {
		t.Error("existing schedule overwritten")
	}
	if days[1].CrewStart != "09:00" {
		t.Errorf("days[1].CrewStart = %s, want first unused range", days[1].CrewStart)
	}
}

func TestBackfillSchedules_NotTriggered(t *testing.T) {
	days := []*entity.Day{
		{DateISO: "2024-02-01", CrewStart: "09:00", CrewEnd: "18:00"},
		{DateISO: "2024-02-02", CrewStart: "09:00", CrewEnd: "18:00"},
		{DateISO: "2024-02-03", CrewStart: "09:00", CrewEnd: "18:00"},
		{DateISO: "2024-02-04"},
	}
	ranges := []TimeRange{
		{Start: "09:00", End: "18:00"},
		{Start: "09:00", End: "18:00"},
		{Start: "09:00", End: "18:00"},
	}
	if backfillSchedules(days, ranges) {
		t.Fatal("threshold met, pass must not run")
	}
	if days[3].HasSchedule() {
		t.Error("unscheduled day was touched")
	}
}

func TestBackfillSchedules_FewRangesLowerThreshold(t *testing.T) {
	// one range observed: a single scheduled day already satisfies min(3, 1)
	days := []*entity.Day{
		{DateISO: "2024-02-01", CrewStart: "09:00", CrewEnd: "18:00"},
		{DateISO: "2024-02-02"},
	}
	ranges := []TimeRange{{Start: "09:00", End: "18:00"}}
	if backfillSchedules(days, ranges) {
		t.Fatal("pass must not run when the only range is already attached")
	}
}
