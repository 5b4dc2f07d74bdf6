package wizard

// TabExitForwardMsg is sent when Tab is pressed on the last input.
// Signals the wizard to move focus to the button bar.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is sent when Shift+Tab is pressed on the first input.
// Signals the wizard to move focus to the button bar from the end.
type TabExitBackwardMsg struct{}
