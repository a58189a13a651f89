package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studykit/studykit/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with studykit styling.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	saved    bool
}

// NewTextInput creates a new focused text input prefilled with value.
func NewTextInput(placeholder, value string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	ti.SetValue(value)
	ti.Focus()

	return TextInput{
		Model:    ti,
		MaxWidth: maxWidth,
		saved:    value != "",
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Any edit clears the saved marker.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.saved = false
	}
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.saved {
		view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓ saved")
	}
	return view
}

// Value returns the input value exactly as typed.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Blank reports whether the input holds only whitespace.
func (t TextInput) Blank() bool {
	return strings.TrimSpace(t.Model.Value()) == ""
}

// MarkSaved shows the saved marker until the next edit.
func (t *TextInput) MarkSaved() {
	t.saved = true
}

// Saved reports whether the current value has been recorded.
func (t TextInput) Saved() bool {
	return t.saved
}
