package resolver

import "testing"

func TestHasTime(t *testing.T) {
	e := newTestEngine(t, []string{"en", "fr"})

	tests := []struct {
		input string
		want  bool
	}{
		{"now", true},
		{"maintenant", true},
		{"today", false},
		{"tomorrow", false},
		{"yesterday", false},

		// Minutes and hours carry a clock; days and coarser do not.
		{"in 30 minutes", true},
		{"in 2 hours", true},
		{"in 2 days", false},
		{"in 3 weeks", false},
		{"in 2 months", false},
		{"in 1 hour and 30 minutes", true},
		{"in 2 weeks and 3 days", false},
		{"dans 2 heures", true},
		{"dans 2 jours", false},

		{"next monday at 3pm", true},
		{"next monday", false},
		{"last friday", false},

		{"tomorrow at 5pm", true},
		{"2024-03-15 14:30", true},
		{"2024-03-15", false},
		{"xyzzy plugh", false},
	}
	for _, tt := range tests {
		if got := e.HasTime(tt.input); got != tt.want {
			t.Errorf("HasTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
