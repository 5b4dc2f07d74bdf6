package wizard

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/smartreno/smartreno/internal/tui/theme"
)

// DefaultToastDuration is how long a toast stays on screen.
const DefaultToastDuration = 3 * time.Second

// ShowToastMsg asks the wizard to show a toast notification.
type ShowToastMsg struct {
	Text string
}

// ToastDismissMsg is sent when toast id should be dismissed.
type ToastDismissMsg struct {
	ID int
}

// Toast is a minimal notification line that auto-dismisses.
type Toast struct {
	Duration time.Duration

	message string
	visible bool
	id      int // bumped on every Show so stale dismissals are ignored
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{Duration: DefaultToastDuration}
}

// Show displays msg and returns the command that dismisses it.
func (t *Toast) Show(msg string) tea.Cmd {
	t.id++
	t.message = msg
	t.visible = true
	id := t.id
	return tea.Tick(t.Duration, func(time.Time) tea.Msg {
		return ToastDismissMsg{ID: id}
	})
}

// Update handles messages for the toast component.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(ToastDismissMsg); ok && m.ID == t.id {
		t.visible = false
		t.message = ""
	}
	return nil
}

// View renders the toast right-aligned within width, or "" when hidden.
func (t *Toast) View(width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	th := theme.Current()
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.BgBase)).
		Background(lipgloss.Color(th.Success)).
		Padding(0, 1).
		Bold(true)

	content := style.Render(t.message)
	if lipgloss.Width(content) > width-2 {
		content = style.Width(width - 2).Render(t.message)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		Render(content)
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// Message returns the current toast message (empty if not visible).
func (t *Toast) Message() string {
	if !t.visible {
		return ""
	}
	return t.message
}
