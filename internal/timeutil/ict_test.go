package timeutil

import (
	"testing"
	"time"
)

func TestToICT(t *testing.T) {
	utc := time.Date(2025, 1, 3, 20, 0, 0, 0, time.UTC)
	got := ToICT(utc)
	if got.Hour() != 3 || got.Day() != 4 {
		t.Errorf("20:00 UTC should be 03:00 next day ICT, got %v", got)
	}
}

func TestParseInICT(t *testing.T) {
	got, err := ParseInICT(DateLayout, "2025-01-03")
	if err != nil {
		t.Fatalf("ParseInICT: %v", err)
	}
	if got.Location() != ICT {
		t.Errorf("parsed location = %v, want ICT", got.Location())
	}
	if FormatICT(got, DateLayout) != "2025-01-03" {
		t.Errorf("round trip = %q", FormatICT(got, DateLayout))
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	ts := time.Date(2025, 1, 3, 15, 30, 45, 0, ICT)

	start := StartOfDay(ts)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Day() != 3 {
		t.Errorf("StartOfDay = %v", start)
	}

	end := EndOfDay(ts)
	if end.Hour() != 23 || end.Minute() != 59 || end.Day() != 3 {
		t.Errorf("EndOfDay = %v", end)
	}
}
