package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studykit/studykit/internal/ui/theme"
)

// OptionList is a lettered multiple-choice selector. The cursor moves freely;
// Chosen marks the option currently recorded as the answer.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen
}

// NewOptionList creates an option list with the cursor on the chosen option,
// or on the first one when chosen is not among options.
func NewOptionList(options []string, chosen string) OptionList {
	o := OptionList{Options: options, Chosen: -1}
	for i, opt := range options {
		if opt == chosen {
			o.Chosen = i
			o.Cursor = i
			break
		}
	}
	return o
}

// Label returns the letter shown for the option at i.
func Label(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}

// Update moves the cursor. Picking is left to the caller so it can record
// the answer first.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	}
	return o, nil
}

// Pick marks the option at i as chosen and returns its text.
func (o *OptionList) Pick(i int) (string, bool) {
	if i < 0 || i >= len(o.Options) {
		return "", false
	}
	o.Cursor = i
	o.Chosen = i
	return o.Options[i], true
}

// PickCursor marks the option under the cursor as chosen.
func (o *OptionList) PickCursor() (string, bool) {
	return o.Pick(o.Cursor)
}

// View renders the options.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}
		mark := " "
		if i == o.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, Label(i), opt)

		switch {
		case i == o.Cursor:
			b.WriteString(theme.Selected.Render(line))
		case i == o.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
