package parser

import (
	"testing"
)

func TestNormalizeLine_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"DÍA 1 - 5 de enero",
		"a b​c",
		"  tabs\tand   spaces  ",
		"already clean",
		"\uFEFFBOM at start",
	}
	for _, in := range inputs {
		once := NormalizeLine(in)
		twice := NormalizeLine(once)
		if once != twice {
			t.Errorf("NormalizeLine not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeLine_StripsInvisibles(t *testing.T) {
	got := NormalizeLine("HORARIO: 9:00​ a  18:00")
	want := "HORARIO: 9:00 a 18:00"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	in := "line one\r\n\r\n\r\n\r\nline\ttwo   end  \r\n"
	once := NormalizeText(in)
	if NormalizeText(once) != once {
		t.Errorf("NormalizeText not idempotent: %q", once)
	}
}

func TestSplitLines_DropsEmpty(t *testing.T) {
	lines := SplitLines("a\n\n\n  \nb\r\nc")
	if len(lines) != 3 || lines[0] != "a" || lines[1] != "b" || lines[2] != "c" {
		t.Errorf("unexpected lines: %#v", lines)
	}
}
