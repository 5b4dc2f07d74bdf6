package theme

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// InterpolateColor blends two hex colors in RGB space; pos runs from 0 to 1.
// Unparseable input yields colorA unchanged.
func InterpolateColor(colorA, colorB string, pos float64) string {
	a, err := colorful.Hex(colorA)
	if err != nil {
		return colorA
	}
	b, err := colorful.Hex(colorB)
	if err != nil {
		return colorA
	}
	return a.BlendRgb(b, pos).Clamped().Hex()
}

// ApplyGradient colors each rune of text along a gradient from colorA to colorB.
func ApplyGradient(text, colorA, colorB string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range runes {
		pos := 0.0
		if len(runes) > 1 {
			pos = float64(i) / float64(len(runes)-1)
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(InterpolateColor(colorA, colorB, pos)))
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}
