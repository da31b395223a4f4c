package parser

import (
	"testing"
	"time"
)

func TestExtractDayStart_Shapes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string // ISO date, "" for no match
	}{
		{"named month with year", "DÍA 1 - 5 de enero 2024", "2024-01-05"},
		{"named month default year", "3 de marzo", "2023-03-03"},
		{"catalan apostrophe", "12 d'agost 2024", "2024-08-12"},
		{"dia dotted numeric", "DÍA 3. 15/01", "2023-01-15"},
		{"weekday numeric", "VIERNES 5/1", "2023-01-05"},
		{"weekday numeric full year", "Dimarts 14-01-2025", "2025-01-14"},
		{"english month day", "Friday, March 3rd 2025", "2025-03-03"},
		{"day dash english", "DAY 4 - Tuesday March 12", "2023-03-12"},
		{"guarded numeric with dia", "DÍA 7 15/01/24", "2024-01-15"},
		{"numeric without keyword rejected", "Total 15/01", ""},
		{"ratio not a date", "escenas 3 y 4", ""},
		{"invalid month", "DÍA 2 15/13", ""},
		{"overflow day", "31 de febrero 2024", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := ExtractDayStart(tt.line, 2023)
			if tt.want == "" {
				if ds != nil {
					t.Fatalf("expected no match, got %v", ds.Date)
				}
				return
			}
			if ds == nil {
				t.Fatalf("expected %s, got no match", tt.want)
			}
			if got := ds.Date.Format("2006-01-02"); got != tt.want {
				t.Errorf("date = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExtractDayStart_NamedShapeWinsOverNumeric(t *testing.T) {
	// "1 - 5" must not be read as anything; the month-word date wins.
	ds := ExtractDayStart("DÍA 1 - 5 de enero 2024", 2030)
	if ds == nil {
		t.Fatal("expected a match")
	}
	if got := ds.Date.Format("2006-01-02"); got != "2024-01-05" {
		t.Errorf("date = %s, want 2024-01-05", got)
	}
}

func TestExtractDayStart_InlineSchedule(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		start, end string
	}{
		{"labeled after date", "DÍA 2 - 6 de enero 2024 HORARIO 9:00 a 14:00", "09:00", "14:00"},
		{"explicit range after date", "VIERNES 5/1 9:00-18:30", "09:00", "18:30"},
		{"vague range ignored", "DAY 2 - Tuesday March 12", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := ExtractDayStart(tt.line, 2024)
			if ds == nil {
				t.Fatal("expected a match")
			}
			if ds.Start != tt.start || ds.End != tt.end {
				t.Errorf("schedule = %q..%q, want %q..%q", ds.Start, ds.End, tt.start, tt.end)
			}
		})
	}
}

func TestExtractCalendarDates(t *testing.T) {
	dates := ExtractCalendarDates("1/2 3/2 4/2 5/2", 2024)
	if len(dates) != 4 {
		t.Fatalf("got %d dates, want 4", len(dates))
	}
	if got := dates[0].Format("2006-01-02"); got != "2024-02-01" {
		t.Errorf("first date = %s, want 2024-02-01", got)
	}
}

func TestExtractCalendarDates_RejectsPagination(t *testing.T) {
	if got := ExtractCalendarDates("pg 3/12", 2024); got != nil {
		t.Errorf("pagination line yielded dates: %v", got)
	}
	if got := ExtractCalendarDates("2/8 pgs", 2024); got != nil {
		t.Errorf("pagination line yielded dates: %v", got)
	}
}

func TestISOMonday(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-05", "2024-01-01"}, // Friday -> Monday
		{"2024-01-01", "2024-01-01"}, // Monday -> itself
		{"2024-01-07", "2024-01-01"}, // Sunday -> preceding Monday
	}
	for _, tt := range tests {
		d, _ := time.Parse("2006-01-02", tt.date)
		if got := ISOMonday(d).Format("2006-01-02"); got != tt.want {
			t.Errorf("ISOMonday(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}
