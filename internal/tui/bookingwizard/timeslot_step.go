package bookingwizard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/smartreno/smartreno/internal/booking"
	"github.com/smartreno/smartreno/internal/tui/theme"
	"github.com/smartreno/smartreno/internal/tui/wizard"
)

// noSlotsMessage is shown when every slot in the pool is booked.
const noSlotsMessage = "We're sorry, there are no available times in your area. Please contact support to schedule manually."

// TimeslotStep lets the user pick one of the generated appointment slots.
// Days without a free slot are not listed.
type TimeslotStep struct {
	zipCode  string
	slots    []booking.TimeSlot // slots of listed days, in display order
	groups   []booking.DayGroup
	cursor   int // index into slots
	selected *booking.TimeSlot
	focused  bool
	errs     booking.FieldErrors
	width    int
	height   int
}

// NewTimeslotStep creates the timeslot step for appointments in zipCode.
// The current selection is kept when it is still one of slots.
func NewTimeslotStep(slots []booking.TimeSlot, selected *booking.TimeSlot, zipCode string) *TimeslotStep {
	s := &TimeslotStep{
		zipCode: zipCode,
		focused: true,
		errs:    booking.FieldErrors{},
	}
	for _, g := range booking.GroupByDate(slots) {
		if len(g.Available()) == 0 {
			continue
		}
		s.groups = append(s.groups, g)
		s.slots = append(s.slots, g.Slots...)
	}
	if selected != nil {
		if slot, ok := booking.FindSlot(s.slots, selected.ID); ok {
			s.selected = booking.SelectSlot(nil, slot)
		}
	}
	s.cursor = s.initialCursor()
	return s
}

// initialCursor places the cursor on the selection or the first free slot.
func (s *TimeslotStep) initialCursor() int {
	for i, slot := range s.slots {
		if s.selected != nil && slot.ID == s.selected.ID {
			return i
		}
	}
	for i, slot := range s.slots {
		if slot.Available {
			return i
		}
	}
	return 0
}

// Init initializes the timeslot step.
func (s *TimeslotStep) Init() tea.Cmd {
	return nil
}

// Update handles messages for the timeslot step.
func (s *TimeslotStep) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return nil
	}

	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.slots)-1 {
			s.cursor++
		}
	case "pgup", "[":
		s.jumpDay(-1)
	case "pgdown", "]":
		s.jumpDay(1)
	case "enter", "space", " ":
		return s.selectCursor()
	case "ctrl+d":
		return s.Submit()
	case "tab":
		return func() tea.Msg { return wizard.TabExitForwardMsg{} }
	case "shift+tab":
		return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
	}
	return nil
}

// selectCursor selects the slot under the cursor if it is free.
func (s *TimeslotStep) selectCursor() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.slots) {
		return nil
	}
	prev := s.selected
	s.selected = booking.SelectSlot(s.selected, s.slots[s.cursor])
	if s.selected == nil {
		return nil
	}
	s.errs.Clear(booking.FieldSlot)
	if prev != nil && prev.ID == s.selected.ID {
		return nil
	}
	return toast("Held " + s.selected.Date + ", " + s.selected.Time)
}

// jumpDay moves the cursor to the first slot of the previous or next day.
func (s *TimeslotStep) jumpDay(dir int) {
	if len(s.slots) == 0 {
		return
	}
	day := s.slots[s.cursor].Date
	i := s.cursor
	for i >= 0 && i < len(s.slots) && s.slots[i].Date == day {
		i += dir
	}
	if i < 0 || i >= len(s.slots) {
		return
	}
	if dir < 0 {
		// walk back to the start of that day
		prev := s.slots[i].Date
		for i > 0 && s.slots[i-1].Date == prev {
			i--
		}
	}
	s.cursor = i
}

// Submit validates the selection and sends SlotSubmittedMsg.
func (s *TimeslotStep) Submit() tea.Cmd {
	payload, errs := booking.ValidateTimeslot(s.selected)
	if errs != nil {
		s.errs = errs
		return nil
	}
	s.errs = booking.FieldErrors{}
	return func() tea.Msg {
		return SlotSubmittedMsg{Payload: payload}
	}
}

// Selected returns the selected slot, or nil.
func (s *TimeslotStep) Selected() *booking.TimeSlot {
	return s.selected
}

// Errors returns the current validation errors.
func (s *TimeslotStep) Errors() booking.FieldErrors {
	return s.errs
}

// Focus gives the slot list keyboard focus.
func (s *TimeslotStep) Focus() {
	s.focused = true
}

// Blur removes keyboard focus from the slot list.
func (s *TimeslotStep) Blur() {
	s.focused = false
}

// SetSize updates the size of the timeslot step.
func (s *TimeslotStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the timeslot step content.
func (s *TimeslotStep) View() string {
	st := theme.Current().S()
	var b strings.Builder

	header := "Available 1-hour estimate appointments"
	if s.zipCode != "" {
		header += " in ZIP " + s.zipCode
	}
	b.WriteString(sectionTitle(header))
	b.WriteString("\n")

	if len(s.slots) == 0 {
		b.WriteString(wizard.RenderError(noSlotsMessage))
		b.WriteString("\n")
	} else {
		free := len(booking.AvailableSlots(s.slots))
		b.WriteString(instruction(fmt.Sprintf("Pick a time for your free on-site estimate. %d slots open this week.", free)))
		b.WriteString("\n")
		b.WriteString(s.renderList())
	}

	b.WriteString("\n")
	if s.selected != nil {
		b.WriteString(row("Selected", fmt.Sprintf("%s, %s with %s", s.selected.Date, s.selected.Time, s.selected.EstimatorName)))
		b.WriteString("\n")
		b.WriteString(st.Muted.Render("This slot is held for 5 minutes."))
		b.WriteString("\n")
	}
	if e := wizard.RenderError(s.errs.Get(booking.FieldSlot)); e != "" {
		b.WriteString(e + "\n")
	}

	b.WriteString("\n")
	b.WriteString(wizard.RenderHintBar(
		"↑↓", "move",
		"[ ]", "day",
		"enter", "select",
		"tab", "buttons",
		"esc", "back",
	))
	return b.String()
}

// renderList renders the day headers and slot rows, windowed around the cursor.
func (s *TimeslotStep) renderList() string {
	st := theme.Current().S()

	var lines []string
	cursorLine := 0
	i := 0
	for _, g := range s.groups {
		lines = append(lines, sectionTitle(fmt.Sprintf("%s (%d open)", g.Date, len(g.Available()))))
		for _, slot := range g.Slots {
			prefix := "  "
			if i == s.cursor && s.focused {
				prefix = "▸ "
				cursorLine = len(lines)
			}
			mark := "○"
			if s.selected != nil && s.selected.ID == slot.ID {
				mark = "●"
			}
			text := fmt.Sprintf("%s%s %s  %s", prefix, mark, slot.Time, slot.EstimatorName)
			switch {
			case !slot.Available:
				lines = append(lines, st.Muted.Render(prefix+"  "+slot.Time+"  booked"))
			case i == s.cursor && s.focused:
				lines = append(lines, st.HeaderTitle.Render(text))
			default:
				lines = append(lines, st.Value.Render(text))
			}
			i++
		}
	}

	window := s.height - 10
	if window < 6 {
		window = 6
	}
	if len(lines) <= window {
		return strings.Join(lines, "\n") + "\n"
	}
	start := cursorLine - window/2
	if start < 0 {
		start = 0
	}
	if start+window > len(lines) {
		start = len(lines) - window
	}
	return strings.Join(lines[start:start+window], "\n") + "\n"
}
