package contract

import (
	"encoding/json"
	"testing"

	"github.com/mmercade/shotplan/internal/entity"
	"github.com/mmercade/shotplan/internal/parser"
)

func TestValidateResult_ParserOutput(t *testing.T) {
	input := "SEMANA 1\n" +
		"DÍA 1 - 5 de enero 2024\n" +
		"HORARIO: 8:00 a 20:00\n" +
		"12 Int. Oficina\n"
	res := parser.New(nil, 0, nil).Parse(input)
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateResult(data); err != nil {
		t.Fatalf("parser output rejected: %v", err)
	}
}

func TestValidateResult_EmptyResult(t *testing.T) {
	res := parser.New(nil, 0, nil).Parse("")
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateResult(data); err != nil {
		t.Fatalf("empty result rejected: %v", err)
	}
}

func TestValidateResult_RejectsBadClock(t *testing.T) {
	res := &entity.Result{
		Weeks: []*entity.Week{{
			StartDate: "2024-01-01",
			Scope:     "pro",
			Days: map[int]*entity.Day{
				4: {
					DateISO:   "2024-01-05",
					WeekStart: "2024-01-01",
					DayIndex:  4,
					Sequences: []entity.Sequence{},
					CrewStart: "8am",
					CrewTipo:  "personalizado",
				},
			},
		}},
		Warnings: []string{},
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateResult(data); err == nil {
		t.Fatal("malformed crew_start accepted")
	}
}

func TestValidateResult_RejectsUnknownField(t *testing.T) {
	if err := ValidateResult([]byte(`{"weeks": [], "warnings": [], "extra": 1}`)); err == nil {
		t.Fatal("unknown top-level field accepted")
	}
}
