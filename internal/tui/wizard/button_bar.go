package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/smartreno/smartreno/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// ButtonID is the position of a button inside its bar.
// Two-button bars use ButtonBack and ButtonNext.
type ButtonID int

const (
	ButtonNone ButtonID = -1
	ButtonBack ButtonID = 0
	ButtonNext ButtonID = 1
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling and focus tracking.
type ButtonBar struct {
	buttons []Button
	width   int
	focused int // index of focused button, -1 when blurred
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
		focused: -1,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Len returns the number of buttons.
func (b *ButtonBar) Len() int {
	return len(b.buttons)
}

// SetEnabled enables or disables the button at id.
func (b *ButtonBar) SetEnabled(id ButtonID, enabled bool) {
	i := int(id)
	if i < 0 || i >= len(b.buttons) {
		return
	}
	if enabled {
		b.buttons[i].State = ButtonNormal
	} else {
		b.buttons[i].State = ButtonDisabled
	}
	if !enabled && b.focused == i {
		b.focused = -1
	}
}

// IsFocused reports whether any button has focus.
func (b *ButtonBar) IsFocused() bool {
	return b.focused >= 0
}

// FocusedButton returns the focused button, or ButtonNone.
func (b *ButtonBar) FocusedButton() ButtonID {
	if b.focused < 0 {
		return ButtonNone
	}
	return ButtonID(b.focused)
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() {
	b.focused = b.nextEnabled(-1, 1)
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() {
	b.focused = b.nextEnabled(len(b.buttons), -1)
}

// FocusNext moves focus right. It returns false when focus would move past
// the last button, leaving focus unchanged.
func (b *ButtonBar) FocusNext() bool {
	next := b.nextEnabled(b.focused, 1)
	if next < 0 {
		return false
	}
	b.focused = next
	return true
}

// FocusPrev moves focus left. It returns false when focus would move past
// the first button, leaving focus unchanged.
func (b *ButtonBar) FocusPrev() bool {
	start := b.focused
	if start < 0 {
		start = len(b.buttons)
	}
	prev := b.nextEnabled(start, -1)
	if prev < 0 {
		return false
	}
	b.focused = prev
	return true
}

// Blur removes focus from all buttons.
func (b *ButtonBar) Blur() {
	b.focused = -1
}

func (b *ButtonBar) nextEnabled(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(b.buttons); i += dir {
		if b.buttons[i].State != ButtonDisabled {
			return i
		}
	}
	return -1
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()

	base := lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	normalStyle := base.
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0))

	disabledStyle := base.
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgMantle))

	focusedStyle := base.
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Tertiary)).
		Bold(true)

	rendered := make([]string, 0, len(b.buttons))
	for i, btn := range b.buttons {
		state := btn.State
		if i == b.focused && state != ButtonDisabled {
			state = ButtonFocused
		}
		switch state {
		case ButtonDisabled:
			rendered = append(rendered, disabledStyle.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, focusedStyle.Render(btn.Label))
		default:
			rendered = append(rendered, normalStyle.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// CreateBackNextButtons creates standard Back/Next button set.
// nextLabel is the label for the forward button (e.g. "Next →", "Review").
func CreateBackNextButtons(backEnabled, nextEnabled bool, nextLabel string) []Button {
	backState := ButtonNormal
	if !backEnabled {
		backState = ButtonDisabled
	}
	nextState := ButtonNormal
	if !nextEnabled {
		nextState = ButtonDisabled
	}
	return []Button{
		{Label: "← Back", State: backState},
		{Label: nextLabel, State: nextState},
	}
}

// CreateCancelNextButtons creates Cancel/Next button set (for the first step).
func CreateCancelNextButtons(nextEnabled bool, nextLabel string) []Button {
	nextState := ButtonNormal
	if !nextEnabled {
		nextState = ButtonDisabled
	}
	return []Button{
		{Label: "Cancel", State: ButtonNormal},
		{Label: nextLabel, State: nextState},
	}
}
