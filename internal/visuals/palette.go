package visuals

import "produce-mcp/internal/calendar"

// Hex values for each base colour at the 100/300/500/700 steps.
var palette = map[calendar.BaseColor][4]string{
	calendar.Red:     {"#fee2e2", "#fca5a5", "#ef4444", "#b91c1c"},
	calendar.Pink:    {"#fce7f3", "#f9a8d4", "#ec4899", "#be185d"},
	calendar.Purple:  {"#f3e8ff", "#d8b4fe", "#a855f7", "#7e22ce"},
	calendar.Orange:  {"#ffedd5", "#fdba74", "#f97316", "#c2410c"},
	calendar.Green:   {"#dcfce7", "#86efac", "#22c55e", "#15803d"},
	calendar.Emerald: {"#d1fae5", "#6ee7b7", "#10b981", "#047857"},
	calendar.Yellow:  {"#fef9c3", "#fde047", "#eab308", "#a16207"},
	calendar.Gray:    {"#f3f4f6", "#d1d5db", "#6b7280", "#374151"},
}

// Hex resolves a base colour and intensity to a CSS hex colour. Unknown
// colours fall back to the default palette family.
func Hex(c calendar.BaseColor, i calendar.Intensity) string {
	shades, ok := palette[c]
	if !ok {
		shades = palette[calendar.DefaultColor]
	}
	idx := int(i)
	if idx < 0 || idx >= len(shades) {
		idx = len(shades) - 1
	}
	return shades[idx]
}
