package bookingwizard

import (
	_ "embed"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/glamour/v2"
	"github.com/smartreno/smartreno/internal/logger"
	"github.com/smartreno/smartreno/internal/tui/wizard"
)

//go:embed timeline.md
var timelineMarkdown string

// TimelineStep shows the development timeline in a scrollable viewport.
type TimelineStep struct {
	viewport viewport.Model
	width    int
	height   int
}

// NewTimelineStep creates the timeline view.
func NewTimelineStep() *TimelineStep {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(10),
	)
	vp.MouseWheelEnabled = true
	s := &TimelineStep{viewport: vp, width: 60}
	s.viewport.SetContent(renderMarkdown(timelineMarkdown, s.width))
	return s
}

// renderMarkdown renders markdown with glamour, falling back to the raw text.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = 60
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logger.Warn("Failed to create markdown renderer: %v", err)
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		logger.Warn("Failed to render markdown: %v", err)
		return content
	}
	return strings.TrimSpace(out)
}

// Init initializes the timeline step.
func (s *TimelineStep) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size and re-renders for the new width.
func (s *TimelineStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	vpHeight := height - 2 // hint bar
	if vpHeight < 5 {
		vpHeight = 5
	}
	s.viewport.SetWidth(width)
	s.viewport.SetHeight(vpHeight)
	s.viewport.SetContent(renderMarkdown(timelineMarkdown, width))
}

// Update handles messages for the timeline step.
func (s *TimelineStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
		return func() tea.Msg { return StartBookingMsg{} }
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

// View renders the timeline step.
func (s *TimelineStep) View() string {
	return s.viewport.View() + "\n" + wizard.RenderHintBar(
		"↑↓", "scroll",
		"enter", "book an estimate",
		"esc", "quit",
	)
}
