package models

import "strings"

var fallbackIcons = []string{"📖", "💧", "🧘", "💤", "🍎", "💪", "📝", "🚶"}

// iconKeywords maps title substrings to a glyph. Checked in order; first
// match wins.
var iconKeywords = []struct {
	substrings []string
	icon       string
}{
	{[]string{"read", "book", "leer", "lectura"}, "📖"},
	{[]string{"water", "agua", "hydrate"}, "💧"},
	{[]string{"meditat", "breath", "respir"}, "🧘"},
	{[]string{"sleep", "screen", "dormir", "pantalla"}, "💤"},
	{[]string{"eat", "diet", "comer", "dieta"}, "🍎"},
	{[]string{"exercis", "run", "workout", "ejercicio", "flexion", "correr"}, "💪"},
}

var fallbackColors = []string{"33", "45", "42", "129", "205", "208", "214"}

// DefaultIcon derives a display glyph from title keywords, falling back to a
// stable position-based mapping. Pure and deterministic: the same (title,
// index) always yields the same icon.
func DefaultIcon(title string, index int) string {
	lower := strings.ToLower(title)
	for _, kw := range iconKeywords {
		for _, sub := range kw.substrings {
			if strings.Contains(lower, sub) {
				return kw.icon
			}
		}
	}
	if index < 0 {
		index = 0
	}
	return fallbackIcons[index%len(fallbackIcons)]
}

// DefaultColor returns a stable terminal color token for a list position.
func DefaultColor(index int) string {
	if index < 0 {
		index = 0
	}
	return fallbackColors[index%len(fallbackColors)]
}

// DisplayIcon returns the habit's icon, deriving a default when unset.
func (h Habit) DisplayIcon(index int) string {
	if h.Icon != "" {
		return h.Icon
	}
	return DefaultIcon(h.Title, index)
}

// DisplayColor returns the habit's color token, deriving a default when unset.
func (h Habit) DisplayColor(index int) string {
	if h.Color != "" {
		return h.Color
	}
	return DefaultColor(index)
}
