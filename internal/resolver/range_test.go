package resolver

import (
	"testing"
	"time"

	"github.com/Amato21/nldates-revived-sub000/internal/types"
)

func TestResolveRangeWeekdaySpan(t *testing.T) {
	e := newTestEngine(t, []string{"en", "fr"})

	tests := []struct {
		input string
		start time.Time
		end   time.Time
		days  int
	}{
		// Reference is Monday 2024-01-01.
		{"from monday to friday", date(2024, 1, 1), date(2024, 1, 5), 5},
		{"de lundi à vendredi", date(2024, 1, 1), date(2024, 1, 5), 5},
		{"from wednesday to friday", date(2024, 1, 3), date(2024, 1, 5), 3},

		// End weekday earlier in the week wraps forward.
		{"from friday to monday", date(2024, 1, 5), date(2024, 1, 8), 4},
		{"from monday to monday", date(2024, 1, 1), date(2024, 1, 1), 1},
	}
	for _, tt := range tests {
		got := e.ResolveRange(tt.input, types.WeekStartDefault)
		if got == nil {
			t.Errorf("ResolveRange(%q) = nil", tt.input)
			continue
		}
		if !got.Start.Equal(tt.start) || !got.End.Equal(tt.end) {
			t.Errorf("ResolveRange(%q) = %v..%v, want %v..%v",
				tt.input, got.Start, got.End, tt.start, tt.end)
		}
		if got.DayCount() != tt.days {
			t.Errorf("ResolveRange(%q).DayCount = %d, want %d", tt.input, got.DayCount(), tt.days)
		}
		if len(got.Days) != tt.days {
			t.Errorf("ResolveRange(%q) has %d Days entries, want %d", tt.input, len(got.Days), tt.days)
		}
	}
}

func TestResolveRangeNextWeek(t *testing.T) {
	e := newTestEngine(t, []string{"en"})

	// Default week start is Sunday; the current week began 2023-12-31.
	got := e.ResolveRange("next week", types.WeekStartDefault)
	if got == nil {
		t.Fatal("ResolveRange(next week) = nil")
	}
	if !got.Start.Equal(date(2024, 1, 7)) || !got.End.Equal(date(2024, 1, 13)) {
		t.Errorf("range = %v..%v, want 2024-01-07..2024-01-13", got.Start, got.End)
	}
	if got.DayCount() != 7 {
		t.Errorf("DayCount = %d, want 7", got.DayCount())
	}

	got = e.ResolveRange("next week", types.ParseWeekStart("monday"))
	if got == nil {
		t.Fatal("ResolveRange(next week, monday) = nil")
	}
	if !got.Start.Equal(date(2024, 1, 8)) || !got.End.Equal(date(2024, 1, 14)) {
		t.Errorf("range = %v..%v, want 2024-01-08..2024-01-14", got.Start, got.End)
	}
}

func TestResolveRangeFormatted(t *testing.T) {
	e := newTestEngine(t, []string{"en"})

	got := e.ResolveRange("from monday to friday", types.WeekStartDefault)
	if got == nil {
		t.Fatal("ResolveRange = nil")
	}
	if got.Formatted != "2024-01-01 - 2024-01-05" {
		t.Errorf("Formatted = %q", got.Formatted)
	}
}

func TestResolveRangeRejectsNonRanges(t *testing.T) {
	e := newTestEngine(t, []string{"en"})

	for _, input := range []string{
		"tomorrow",
		"next monday",
		"in 2 weeks",
		"next month",
		"from here to there and back",
		"",
	} {
		if got := e.ResolveRange(input, types.WeekStartDefault); got != nil {
			t.Errorf("ResolveRange(%q) = %v, want nil", input, got)
		}
	}
}
