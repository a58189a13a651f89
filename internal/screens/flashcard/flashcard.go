// Package flashcard is the card-by-card study screen.
package flashcard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	fc "github.com/studykit/studykit/internal/flashcard"
	"github.com/studykit/studykit/internal/questionset"
	"github.com/studykit/studykit/internal/screen"
	"github.com/studykit/studykit/internal/ui/components"
	"github.com/studykit/studykit/internal/ui/layout"
	"github.com/studykit/studykit/internal/ui/theme"
)

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Reveal key.Binding
}

var keys = keyMap{
	Next:   key.NewBinding(key.WithKeys("right", "l", "n")),
	Prev:   key.NewBinding(key.WithKeys("left", "h", "p")),
	Reveal: key.NewBinding(key.WithKeys("space", "enter")),
}

// FlashcardScreen shows one card at a time with its answer hidden until
// revealed.
type FlashcardScreen struct {
	title string
	nav   *fc.Navigator
}

var _ screen.Screen = (*FlashcardScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardScreen)(nil)

// New creates a FlashcardScreen over set.
func New(set *questionset.Model) *FlashcardScreen {
	return &FlashcardScreen{title: set.Title(), nav: fc.New(set)}
}

func (s *FlashcardScreen) Init() tea.Cmd {
	return nil
}

func (s *FlashcardScreen) Title() string {
	return "Flashcards · " + s.title
}

func (s *FlashcardScreen) KeyHints() []layout.KeyHint {
	reveal := "Show answer"
	if s.nav.Revealed() {
		reveal = "Hide answer"
	}
	return []layout.KeyHint{
		{Key: "Space", Description: reveal},
		{Key: "←→", Description: "Card"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FlashcardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, keys.Next):
		s.nav.Next()
	case key.Matches(kmsg, keys.Prev):
		s.nav.Previous()
	case key.Matches(kmsg, keys.Reveal):
		s.nav.ToggleReveal()
	}
	return s, nil
}

func (s *FlashcardScreen) View(width, height int) string {
	if s.nav.Len() == 0 {
		return "\n\n" + layout.Centered(theme.Hint.Render("This set has no cards."), width)
	}

	q := s.nav.Current()
	cardWidth := min(layout.TextWidth(width), 70)

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Width(cardWidth - 6).Foreground(theme.Text).Bold(true).Render(q.Text))
	if q.Kind == questionset.KindMCQ {
		card.WriteString("\n\n")
		for i, opt := range q.Options {
			card.WriteString(theme.Body.Render(fmt.Sprintf("%s)  %s", components.Label(i), opt)))
			card.WriteString("\n")
		}
	} else {
		card.WriteString("\n")
	}
	card.WriteString("\n")
	if s.nav.Revealed() {
		card.WriteString(theme.Correct.Render("Answer: " + q.Answer))
	} else {
		card.WriteString(theme.Hint.Render("Press space to reveal"))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Subtitle.Render(fmt.Sprintf("Card %d of %d", s.nav.Index()+1, s.nav.Len())), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Card.Width(cardWidth).Render(card.String()), width))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", float64(s.nav.Index()+1)/float64(s.nav.Len()), false, cardWidth)
	b.WriteString(layout.Centered(bar.View(), width))
	return b.String()
}
