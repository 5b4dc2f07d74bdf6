package bookingwizard

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"
	"github.com/smartreno/smartreno/internal/booking"
	"github.com/smartreno/smartreno/internal/logger"
	"github.com/smartreno/smartreno/internal/tui/theme"
	"github.com/smartreno/smartreno/internal/tui/wizard"
)

// ProjectStep collects project photos and the description.
type ProjectStep struct {
	ctx      context.Context
	api      booking.API
	photos   []booking.PhotoRef
	textarea textarea.Model
	spinner  Spinner
	errs     booking.FieldErrors
	tmpFile  string
	width    int
	height   int
}

// NewProjectStep creates the project step prefilled from state.
func NewProjectStep(ctx context.Context, api booking.API, state booking.State) *ProjectStep {
	ta := textarea.New()
	ta.Placeholder = "Describe what you'd like done, e.g. kitchen remodel with new cabinets and countertops..."
	ta.CharLimit = booking.MaxDescriptionLength
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	ta.SetWidth(60)
	ta.SetValue(state.Description)
	ta.Focus()

	return &ProjectStep{
		ctx:      ctx,
		api:      api,
		photos:   state.Photos,
		textarea: ta,
		spinner:  NewSpinner(),
		errs:     booking.FieldErrors{},
	}
}

// Init initializes the project step.
func (s *ProjectStep) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the project step.
func (s *ProjectStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PhotoUploadedMsg:
		s.spinner.Stop()
		if !booking.CanAddPhoto(len(s.photos)) {
			s.errs.Set(booking.FieldPhotos, booking.MsgPhotosMax)
			return nil
		}
		s.photos = append(s.photos, msg.Photo)
		s.errs.Clear(booking.FieldPhotos)
		return toast(fmt.Sprintf("Photo %d of %d uploaded", len(s.photos), booking.MaxPhotos))

	case PhotoUploadFailedMsg:
		s.spinner.Stop()
		s.errs.Set(booking.FieldPhotos, fmt.Sprintf("Photo upload failed: %v", msg.Err))
		return nil

	case DescriptionEditedMsg:
		s.setDescription(msg.Content)
		if s.tmpFile != "" {
			_ = os.Remove(s.tmpFile)
			s.tmpFile = ""
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+p":
			return s.addPhoto()
		case "ctrl+x":
			if s.removeLastPhoto() {
				return toast("Photo removed")
			}
			return nil
		case "ctrl+e":
			if os.Getenv("EDITOR") != "" {
				return s.openEditor()
			}
			return nil
		case "ctrl+d":
			return s.Submit()
		case "tab":
			return func() tea.Msg { return wizard.TabExitForwardMsg{} }
		case "shift+tab":
			return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
		}
	}

	if cmd := s.spinner.Update(msg); cmd != nil {
		return cmd
	}

	var cmd tea.Cmd
	s.textarea, cmd = s.textarea.Update(wizard.SanitizePasteMsg(msg, false))
	if s.errs.Has(booking.FieldDescription) && booking.DescriptionValid(s.textarea.Value()) {
		s.errs.Clear(booking.FieldDescription)
	}
	return cmd
}

// addPhoto starts a mock upload unless the photo limit is reached.
func (s *ProjectStep) addPhoto() tea.Cmd {
	if s.spinner.Active() {
		return nil
	}
	if !booking.CanAddPhoto(len(s.photos)) {
		s.errs.Set(booking.FieldPhotos, booking.MsgPhotosMax)
		return nil
	}
	return tea.Batch(s.spinner.Start(), s.uploadPhoto())
}

// uploadPhoto returns the command that performs the upload off the main loop.
func (s *ProjectStep) uploadPhoto() tea.Cmd {
	ctx, api := s.ctx, s.api
	return func() tea.Msg {
		photo, err := api.UploadPhoto(ctx)
		if err != nil {
			logger.Error("Photo upload failed: %v", err)
			return PhotoUploadFailedMsg{Err: err}
		}
		logger.Debug("Photo uploaded: %s", photo.ID)
		return PhotoUploadedMsg{Photo: photo}
	}
}

func (s *ProjectStep) removeLastPhoto() bool {
	if len(s.photos) == 0 {
		return false
	}
	s.photos = s.photos[:len(s.photos)-1]
	if s.errs.Get(booking.FieldPhotos) == booking.MsgPhotosMax {
		s.errs.Clear(booking.FieldPhotos)
	}
	return true
}

// setDescription replaces the description, cut to the character limit.
func (s *ProjectStep) setDescription(content string) {
	content = wizard.SanitizePaste(content)
	if utf8.RuneCountInString(content) > booking.MaxDescriptionLength {
		content = string([]rune(content)[:booking.MaxDescriptionLength])
	}
	s.textarea.SetValue(content)
	if booking.DescriptionValid(content) {
		s.errs.Clear(booking.FieldDescription)
	}
}

// openEditor launches $EDITOR on the current description.
func (s *ProjectStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "smartreno_description_*.txt")
	if err != nil {
		logger.Warn("Failed to create temp file for editor: %v", err)
		return nil
	}
	if _, err := tmpfile.WriteString(s.textarea.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()
	s.tmpFile = tmpfile.Name()

	cmd, err := editor.Command("smartreno", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		s.tmpFile = ""
		return nil
	}

	path := tmpfile.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			logger.Warn("Editor exited with error: %v", err)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		return DescriptionEditedMsg{Content: string(content)}
	})
}

// Submit validates the step and sends ProjectSubmittedMsg.
func (s *ProjectStep) Submit() tea.Cmd {
	payload, errs := booking.ValidateProject(s.photos, s.textarea.Value())
	if errs != nil {
		s.errs = errs
		return nil
	}
	s.errs = booking.FieldErrors{}
	return func() tea.Msg {
		return ProjectSubmittedMsg{Payload: payload}
	}
}

// Photos returns the photos added so far.
func (s *ProjectStep) Photos() []booking.PhotoRef {
	return s.photos
}

// Errors returns the current validation errors.
func (s *ProjectStep) Errors() booking.FieldErrors {
	return s.errs
}

// SetSize updates the size of the project step.
func (s *ProjectStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.textarea.SetWidth(width - 4)
	taHeight := height - 16
	if taHeight < 3 {
		taHeight = 3
	}
	if taHeight > 8 {
		taHeight = 8
	}
	s.textarea.SetHeight(taHeight)
}

// Focus focuses the description textarea.
func (s *ProjectStep) Focus() {
	s.textarea.Focus()
}

// Blur blurs the description textarea.
func (s *ProjectStep) Blur() {
	s.textarea.Blur()
}

// View renders the project step content.
func (s *ProjectStep) View() string {
	st := theme.Current().S()
	var b strings.Builder

	b.WriteString(instruction("Show us what you'd like renovated and tell us about it."))
	b.WriteString("\n")

	b.WriteString(sectionTitle(fmt.Sprintf("Photos (%d/%d)", len(s.photos), booking.MaxPhotos)))
	b.WriteString("\n")
	if len(s.photos) == 0 {
		b.WriteString(st.Muted.Render("No photos yet. Press ctrl+p to upload one."))
		b.WriteString("\n")
	}
	for i, p := range s.photos {
		b.WriteString(st.Value.Render(fmt.Sprintf("  %d. photo %s", i+1, shortID(p.ID))))
		b.WriteString("\n")
	}
	if s.spinner.Active() {
		b.WriteString(s.spinner.View() + st.Muted.Render(" Uploading..."))
		b.WriteString("\n")
	}
	if e := wizard.RenderError(s.errs.Get(booking.FieldPhotos)); e != "" {
		b.WriteString(e + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionTitle("Project description"))
	b.WriteString("\n")
	b.WriteString(field(s.textarea.View(), s.textarea.Focused(), s.width-2))
	b.WriteString("\n")
	b.WriteString(s.descriptionCounter())
	if e := wizard.RenderError(s.errs.Get(booking.FieldDescription)); e != "" {
		b.WriteString("\n" + e)
	}
	b.WriteString("\n\n")

	pairs := []string{"ctrl+p", "add photo", "ctrl+x", "remove photo", "ctrl+d", "continue"}
	if os.Getenv("EDITOR") != "" {
		pairs = append(pairs, "ctrl+e", "edit")
	}
	b.WriteString(wizard.RenderHintBar(pairs...))
	return b.String()
}

// descriptionCounter renders "N more characters needed" or the used length.
func (s *ProjectStep) descriptionCounter() string {
	st := theme.Current().S()
	value := strings.TrimSpace(s.textarea.Value())
	if n := booking.DescriptionRemaining(value); n > 0 {
		return st.Muted.Render(fmt.Sprintf("%d more characters needed", n))
	}
	return st.Success.Render(fmt.Sprintf("%d/%d", utf8.RuneCountInString(s.textarea.Value()), booking.MaxDescriptionLength))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
