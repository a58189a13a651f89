package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/studykit/studykit/internal/clock"
	"github.com/studykit/studykit/internal/questionset"
	"github.com/studykit/studykit/internal/ui/components"
	"github.com/studykit/studykit/internal/ui/layout"
	"github.com/studykit/studykit/internal/ui/theme"
)

// lowTimeSeconds is when the countdown turns red.
const lowTimeSeconds = 60

func (s *ExamScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return s.renderMessage(width, theme.Incorrect.Render(s.errMsg))
	case s.session == nil:
		return ""
	case s.set.Len() == 0:
		return s.renderMessage(width, theme.Hint.Render("This set has no questions."))
	case s.saving:
		return s.renderMessage(width, theme.Hint.Render("Submitting..."))
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	b.WriteString(s.renderQuestion(width))

	switch {
	case s.confirmQuit:
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Incorrect.Render("Quit this exam? Your answers will not be saved. (y/n)"), width))
	case s.confirmSubmit:
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(s.submitPrompt(), width))
	}
	return b.String()
}

func (s *ExamScreen) renderMessage(width int, msg string) string {
	return "\n\n" + layout.Centered(msg, width)
}

func (s *ExamScreen) renderInfoLine(width int) string {
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d/%d", s.current+1, s.set.Len()))

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Answered %d/%d", s.session.Answered(), s.set.Len()))
	if secs, ok := s.session.Remaining(); ok {
		style := theme.Timer
		if secs < lowTimeSeconds {
			style = theme.TimerLow
		}
		right += "   " + style.Render("⏱ "+clock.Format(secs))
	}

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *ExamScreen) renderQuestion(width int) string {
	q := s.set.At(s.current)
	textWidth := layout.TextWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(textWidth).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n")
	if q.Difficulty != "" {
		b.WriteString(theme.Hint.Render(strings.ToLower(q.Difficulty)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q.Kind == questionset.KindShort {
		b.WriteString("Answer: " + s.input.View())
	} else {
		b.WriteString(s.options.View())
	}
	b.WriteString("\n\n")

	bar := components.NewProgressBar("", float64(s.session.Answered())/float64(s.set.Len()), false, textWidth)
	b.WriteString(bar.View())

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *ExamScreen) submitPrompt() string {
	missing := s.set.Len() - s.session.Answered()
	msg := "Submit your answers? (y/n)"
	if missing > 0 {
		msg = fmt.Sprintf("%d unanswered. Submit anyway? (y/n)", missing)
	}
	return theme.Timer.Render(msg)
}
