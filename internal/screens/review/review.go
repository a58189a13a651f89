// Package review shows a scored attempt question by question.
package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/studykit/studykit/internal/review"
	"github.com/studykit/studykit/internal/router"
	"github.com/studykit/studykit/internal/screen"
	"github.com/studykit/studykit/internal/ui/components"
	"github.com/studykit/studykit/internal/ui/layout"
	"github.com/studykit/studykit/internal/ui/theme"
)

// ReviewScreen displays a reconstructed attempt.
type ReviewScreen struct {
	result *review.Result
	notice string
	offset int // first item shown
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen. notice, when set, is shown above the score.
func New(result *review.Result, notice string) *ReviewScreen {
	return &ReviewScreen{result: result, notice: notice}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.result == nil {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < len(s.result.Items)-1 {
			s.offset++
		}
	case "home", "g":
		s.offset = 0
	case "end", "G":
		s.offset = max(len(s.result.Items)-1, 0)
	case "enter":
		return s, router.Pop
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	var head strings.Builder
	head.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(res.Title))
	head.WriteString("\n")

	if s.notice != "" {
		head.WriteString(layout.Centered(theme.Timer.Render(s.notice), width))
		head.WriteString("\n")
	}
	head.WriteString("\n")

	a := res.Attempt
	stats := fmt.Sprintf("Score: %d/%d (%d%%)        Unanswered: %d",
		a.Score, a.TotalQuestions, a.Percent(), res.Unanswered())
	head.WriteString(layout.Centered(theme.Body.Render(stats), width))
	head.WriteString("\n")
	if !a.CompletedAt.IsZero() {
		head.WriteString(layout.Centered(
			theme.Hint.Render("Completed "+a.CompletedAt.Local().Format("2006-01-02 15:04")), width))
		head.WriteString("\n")
	}

	textWidth := layout.TextWidth(width)
	bar := components.NewProgressBar("", float64(a.Percent())/100, true, min(textWidth, 60))
	head.WriteString(layout.Centered(bar.View(), width))
	head.WriteString("\n")
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	head.WriteString(layout.Centered(divider, width))
	head.WriteString("\n\n")

	header := head.String()
	avail := height - lipgloss.Height(header)

	var body strings.Builder
	for _, it := range res.Items[min(s.offset, len(res.Items)):] {
		block := renderItem(it, textWidth)
		if lipgloss.Height(body.String())+lipgloss.Height(block) > avail && body.Len() > 0 {
			break
		}
		body.WriteString(block)
		body.WriteString("\n")
	}

	return header + lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(textWidth).Render(body.String()))
}

func renderItem(it review.Item, width int) string {
	var b strings.Builder

	mark := theme.Correct.Render("✓")
	if !it.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	q := lipgloss.NewStyle().Width(width - 6).Foreground(theme.Text).
		Render(fmt.Sprintf("%d. %s", it.Number, it.Question.Text))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, " "+mark+"  ", q))
	b.WriteString("\n")

	answer := it.Answer
	if !it.Answered {
		answer = "(no answer)"
	}
	style := theme.Correct
	if !it.Correct {
		style = theme.Incorrect
	}
	b.WriteString("    Your answer: " + style.Render(answer))
	b.WriteString("\n")
	if !it.Correct {
		b.WriteString("    Correct answer: " + theme.Chosen.Render(it.Question.Answer))
		b.WriteString("\n")
	}
	return b.String()
}
