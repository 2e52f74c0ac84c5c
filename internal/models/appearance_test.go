package models

import "testing"

func TestDefaultIconKeywords(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Read 20 pages", "📖"},
		{"Drink water", "💧"},
		{"Meditate 10 min", "🧘"},
		{"No screens after 10", "💤"},
		{"Eat clean", "🍎"},
		{"Exercise", "💪"},
	}
	for _, tc := range tests {
		if got := DefaultIcon(tc.title, 0); got != tc.want {
			t.Errorf("DefaultIcon(%q) = %s, want %s", tc.title, got, tc.want)
		}
	}
}

func TestDefaultIconPositionalFallback(t *testing.T) {
	// No keyword match: the list position decides, deterministically.
	a := DefaultIcon("Journaling", 1)
	b := DefaultIcon("Journaling", 1)
	if a != b {
		t.Error("fallback icon must be deterministic")
	}
	if DefaultIcon("Journaling", 0) == DefaultIcon("Journaling", 1) {
		t.Error("different positions should map to different fallback icons")
	}
	if DefaultIcon("Journaling", 0) != DefaultIcon("Journaling", 8) {
		t.Error("fallback mapping should wrap around")
	}
}

func TestDisplayIconPrefersExplicit(t *testing.T) {
	h := Habit{Title: "Read", Icon: "🎯"}
	if got := h.DisplayIcon(0); got != "🎯" {
		t.Errorf("DisplayIcon = %s, explicit icon must win", got)
	}
	h.Icon = ""
	if got := h.DisplayIcon(0); got != "📖" {
		t.Errorf("DisplayIcon = %s, want keyword fallback", got)
	}
}

func TestDefaultColorStable(t *testing.T) {
	if DefaultColor(2) != DefaultColor(2) {
		t.Error("color fallback must be deterministic")
	}
	if DefaultColor(0) != DefaultColor(7) {
		t.Error("color fallback should wrap around")
	}
}
