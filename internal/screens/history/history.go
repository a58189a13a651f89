// Package history lists past attempts and opens their reviews.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/studykit/studykit/internal/exam"
	"github.com/studykit/studykit/internal/questionset"
	"github.com/studykit/studykit/internal/review"
	"github.com/studykit/studykit/internal/router"
	"github.com/studykit/studykit/internal/screen"
	reviewscreen "github.com/studykit/studykit/internal/screens/review"
	"github.com/studykit/studykit/internal/store"
	"github.com/studykit/studykit/internal/ui/layout"
	"github.com/studykit/studykit/internal/ui/theme"
)

// listLimit caps how many attempts are loaded.
const listLimit = 100

type historyLoadedMsg struct {
	Attempts []store.AttemptSummary
	Err      error
}

type reviewLoadedMsg struct {
	Result *review.Result
	Err    error
}

// HistoryScreen displays past attempts, newest first.
type HistoryScreen struct {
	env      screen.Env
	setID    string
	attempts []store.AttemptSummary
	selected int
	loaded   bool
	loading  bool // a review is being opened
	errMsg   string
	notice   string // per-attempt failure, keeps the list usable
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. A non-empty setID restricts the list to
// attempts on that set.
func New(env screen.Env, setID string) *HistoryScreen {
	return &HistoryScreen{env: env, setID: setID}
}

func (s *HistoryScreen) Init() tea.Cmd {
	env, setID := s.env, s.setID
	return func() tea.Msg {
		if env.Attempts == nil {
			return historyLoadedMsg{}
		}
		attempts, err := env.Attempts.List(context.Background(), env.Owner,
			store.ListOpts{Limit: listLimit, QuestionSetID: setID})
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Review"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.env.Logger().Error("list attempts", zap.Error(msg.Err))
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case reviewLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.notice = reviewError(msg.Err)
			return s, nil
		}
		return s, router.Push(reviewscreen.New(msg.Result, ""))

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
				s.notice = ""
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
				s.notice = ""
			}
		case "enter":
			if len(s.attempts) == 0 {
				return s, nil
			}
			s.loading = true
			return s, s.openReview(s.attempts[s.selected].Attempt)
		}
	}
	return s, nil
}

// openReview loads the attempt's set and rebuilds the per-question review.
func (s *HistoryScreen) openReview(a exam.Attempt) tea.Cmd {
	env := s.env
	return func() tea.Msg {
		if env.Sets == nil {
			return reviewLoadedMsg{Err: store.ErrNotFound}
		}
		set, err := env.Sets.Get(context.Background(), env.Owner, a.QuestionSetID)
		if err != nil {
			env.Logger().Warn("load set for review",
				zap.String("attempt_id", a.ID), zap.String("set_id", a.QuestionSetID), zap.Error(err))
			return reviewLoadedMsg{Err: err}
		}
		res, err := review.Reconstruct(a, set)
		if err != nil {
			env.Logger().Warn("reconstruct attempt", zap.String("attempt_id", a.ID), zap.Error(err))
		}
		return reviewLoadedMsg{Result: res, Err: err}
	}
}

func reviewError(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "The question set for this attempt no longer exists."
	case errors.Is(err, review.ErrAttemptMismatch):
		return "This attempt no longer matches its question set."
	case errors.Is(err, questionset.ErrMalformedQuestionSet):
		return "The stored question set is damaged and cannot be reviewed."
	}
	return "Could not open review: " + err.Error()
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Take an exam or practice run first.")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection visible when the list is longer than the screen.
	rows := max(height-4, 1)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(s.attempts))

	for i := start; i < end; i++ {
		a := s.attempts[i]
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		title := a.SetTitle
		if title == "" {
			title = "(deleted set)"
		}
		line := fmt.Sprintf("%s%s  %-30.30s  %3d/%-3d  %3d%%",
			prefix, a.CompletedAt.Local().Format("Jan 02, 2006 15:04"), title,
			a.Score, a.TotalQuestions, a.Percent())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Incorrect.Render(s.notice), width))
	}
	return b.String()
}
