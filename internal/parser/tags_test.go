package parser

import "testing"

func TestExtractWeekLabel(t *testing.T) {
	tests := []struct {
		line   string
		label  string
		number int
	}{
		{"SEMANA 1", "Semana 1", 1},
		{"Semana -1", "Semana -1", -1},
		{"SETMANA 3", "Setmana 3", 3},
		{"WEEK -2 - prep exteriors", "Week -2 prep exteriors", -2},
		{"SEMANA 4 - Madrid", "Semana 4 Madrid", 4},
	}
	for _, tt := range tests {
		got := ExtractWeekLabel(tt.line)
		if got == nil {
			t.Errorf("ExtractWeekLabel(%q) = nil", tt.line)
			continue
		}
		if got.Label != tt.label || got.Number != tt.number {
			t.Errorf("ExtractWeekLabel(%q) = %q/%d, want %q/%d",
				tt.line, got.Label, got.Number, tt.label, tt.number)
		}
	}
	if ExtractWeekLabel("la semana que viene") != nil {
		t.Error("prose without a number matched")
	}
}

func TestExtractObservation(t *testing.T) {
	if _, ok := ExtractObservation("EQUIPO REDUCIDO", nil); !ok {
		t.Error("built-in phrase not matched")
	}
	if _, ok := ExtractObservation("Viaje a Madrid", nil); !ok {
		t.Error("phrase prefix not matched")
	}
	if _, ok := ExtractObservation("Int. Oficina", nil); ok {
		t.Error("plain line matched")
	}
	lex := &Lexicon{ObservationPhrases: []string{"unidad acuática"}}
	if _, ok := ExtractObservation("UNIDAD ACUATICA en puerto", lex); !ok {
		t.Error("lexicon phrase not matched accent-folded")
	}
}

func TestIsTransportLine(t *testing.T) {
	for _, line := range []string{"TRASLADO a plato 2", "Trasllat equip", "Company move to stage B"} {
		if !IsTransportLine(line) {
			t.Errorf("%q not detected", line)
		}
	}
	if IsTransportLine("Int. Oficina") {
		t.Error("plain line detected as transport")
	}
}

func TestExtractPrelight(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"PRELIGHT 30 min", "00:30", true},
		{"Pre-light 1h", "01:00", true},
		{"prelight 45", "00:45", true},
		{"prelight equipo", "", false},
		{"Int. Oficina", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractPrelight(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ExtractPrelight(%q) = %q/%v, want %q/%v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsNoiseLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"pg 3/12", true},
		{"GUION:", true},
		{"----------------", true},
		{"42", true},
		{"Int. Oficina", false},
		{"DÍA 1 - 5 de enero", false},
	}
	for _, tt := range tests {
		if got := IsNoiseLine(tt.line, nil); got != tt.want {
			t.Errorf("IsNoiseLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
	lex := &Lexicon{NoiseWords: []string{"produccions blau"}}
	if !IsNoiseLine("PRODUCCIONS BLAU", lex) {
		t.Error("lexicon noise word not matched")
	}
}
