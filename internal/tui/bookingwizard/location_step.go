package bookingwizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/smartreno/smartreno/internal/booking"
	"github.com/smartreno/smartreno/internal/tui/wizard"
)

// Location input indices
const (
	inputStreet = iota
	inputApt
	inputZIP
	inputCount
)

// LocationStep collects the property address.
type LocationStep struct {
	inputs  []textinput.Model
	focused int
	area    booking.ServiceArea
	errs    booking.FieldErrors
	width   int
	height  int
}

// NewLocationStep creates the location step prefilled from state.
func NewLocationStep(state booking.State, area booking.ServiceArea) *LocationStep {
	inputs := make([]textinput.Model, inputCount)

	inputs[inputStreet] = textinput.New()
	inputs[inputStreet].Placeholder = "123 Main Street"
	inputs[inputStreet].CharLimit = 120
	inputs[inputStreet].SetValue(state.Street)

	inputs[inputApt] = textinput.New()
	inputs[inputApt].Placeholder = "Apt, suite, unit (optional)"
	inputs[inputApt].CharLimit = 40
	inputs[inputApt].SetValue(state.AptSuite)

	inputs[inputZIP] = textinput.New()
	inputs[inputZIP].Placeholder = "94102"
	inputs[inputZIP].CharLimit = 10
	inputs[inputZIP].SetValue(state.ZIPCode)

	s := &LocationStep{
		inputs: inputs,
		area:   area,
		errs:   booking.FieldErrors{},
	}
	s.focusInput(inputStreet)
	return s
}

// Init initializes the location step.
func (s *LocationStep) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the location step.
func (s *LocationStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "tab", "down":
			if s.focused == inputCount-1 {
				return func() tea.Msg { return wizard.TabExitForwardMsg{} }
			}
			s.focusInput(s.focused + 1)
			return nil
		case "shift+tab", "up":
			if s.focused == 0 {
				return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
			}
			s.focusInput(s.focused - 1)
			return nil
		case "enter":
			if s.focused == inputCount-1 {
				return s.Submit()
			}
			s.focusInput(s.focused + 1)
			return nil
		}
	}

	if s.focused < 0 {
		return nil
	}

	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(wizard.SanitizePasteMsg(msg, true))

	switch s.focused {
	case inputStreet:
		if strings.TrimSpace(s.inputs[inputStreet].Value()) != "" {
			s.errs.Clear(booking.FieldStreet)
		}
	case inputZIP:
		s.checkZIP()
	}
	return cmd
}

// checkZIP keeps the ZIP field digits-only and re-validates it as it is typed.
func (s *LocationStep) checkZIP() {
	raw := s.inputs[inputZIP].Value()
	zip := booking.NormalizeZIP(raw)
	if zip != raw {
		s.inputs[inputZIP].SetValue(zip)
		s.inputs[inputZIP].CursorEnd()
	}
	if msg, decided := booking.LiveZIPCheck(zip, s.area); decided {
		s.errs.Set(booking.FieldZIPCode, msg)
	}
}

// Submit validates the step and sends LocationSubmittedMsg.
func (s *LocationStep) Submit() tea.Cmd {
	payload, errs := booking.ValidateLocation(
		s.inputs[inputStreet].Value(),
		s.inputs[inputApt].Value(),
		s.inputs[inputZIP].Value(),
		s.area,
	)
	if errs != nil {
		s.errs = errs
		if errs.Has(booking.FieldStreet) {
			s.focusInput(inputStreet)
		} else {
			s.focusInput(inputZIP)
		}
		return nil
	}
	s.errs = booking.FieldErrors{}
	return func() tea.Msg {
		return LocationSubmittedMsg{Payload: payload}
	}
}

// Errors returns the current validation errors.
func (s *LocationStep) Errors() booking.FieldErrors {
	return s.errs
}

func (s *LocationStep) focusInput(i int) {
	for j := range s.inputs {
		if j == i {
			s.inputs[j].Focus()
		} else {
			s.inputs[j].Blur()
		}
	}
	s.focused = i
}

// Focus focuses the first input.
func (s *LocationStep) Focus() {
	s.focusInput(inputStreet)
}

// FocusLast focuses the ZIP input.
func (s *LocationStep) FocusLast() {
	s.focusInput(inputZIP)
}

// Blur blurs all inputs.
func (s *LocationStep) Blur() {
	s.focusInput(-1)
}

// SetSize updates the size of the location step.
func (s *LocationStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	for i := range s.inputs {
		s.inputs[i].SetWidth(width - 6)
	}
}

// View renders the location step content.
func (s *LocationStep) View() string {
	var b strings.Builder

	b.WriteString(instruction("Where is the project? We currently serve select San Francisco and New York ZIP codes."))
	b.WriteString("\n")

	s.writeInput(&b, "Street address", inputStreet, booking.FieldStreet)
	s.writeInput(&b, "Apt / Suite", inputApt, "")
	s.writeInput(&b, "ZIP code", inputZIP, booking.FieldZIPCode)

	b.WriteString("\n")
	b.WriteString(wizard.RenderHintBar(
		"↑↓", "fields",
		"enter", "next",
		"tab", "buttons",
		"esc", "back",
	))
	return b.String()
}

func (s *LocationStep) writeInput(b *strings.Builder, label string, i int, f booking.Field) {
	b.WriteString(sectionTitle(label))
	b.WriteString("\n")
	b.WriteString(field(s.inputs[i].View(), s.focused == i, s.width-2))
	b.WriteString("\n")
	if f != "" {
		if e := wizard.RenderError(s.errs.Get(f)); e != "" {
			b.WriteString(e + "\n")
		}
	}
}
