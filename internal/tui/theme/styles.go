package theme

import "charm.land/lipgloss/v2"

// Styles contains the pre-built lipgloss styles shared by the wizard screens.
type Styles struct {
	HeaderTitle lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Badge       lipgloss.Style
	Modal       lipgloss.Style
}
