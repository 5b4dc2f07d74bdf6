package bookingwizard

import (
	"charm.land/lipgloss/v2"
	"github.com/smartreno/smartreno/internal/tui/theme"
)

// Modal layout constants
const (
	modalWidth        = 72                                                       // Total modal width including border
	modalPadding      = 2                                                        // Horizontal padding on each side
	modalBorderWidth  = 1                                                        // Border width on each side
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2) // 66
)

func sectionTitle(s string) string {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Secondary)).
		Bold(true).
		Render(s)
}

func instruction(s string) string {
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		MarginBottom(1).
		Render(s)
}

// field renders an input box, highlighted when focused.
func field(content string, focused bool, width int) string {
	t := theme.Current()
	border := t.BorderDefault
	if focused {
		border = t.BorderFocused
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Render(content)
}

// row renders a "Label: value" line.
func row(label, value string) string {
	s := theme.Current().S()
	return s.Label.Render(label+": ") + s.Value.Render(value)
}
