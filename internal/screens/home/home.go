// Package home is the start screen listing the owner's question sets.
package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/studykit/studykit/internal/questionset"
	"github.com/studykit/studykit/internal/router"
	"github.com/studykit/studykit/internal/screen"
	examscreen "github.com/studykit/studykit/internal/screens/exam"
	"github.com/studykit/studykit/internal/screens/flashcard"
	"github.com/studykit/studykit/internal/screens/history"
	"github.com/studykit/studykit/internal/store"
	"github.com/studykit/studykit/internal/ui/components"
	"github.com/studykit/studykit/internal/ui/layout"
	"github.com/studykit/studykit/internal/ui/theme"
)

// listLimit caps how many sets the home screen shows.
const listLimit = 200

type setsLoadedMsg struct {
	Sets []store.SetSummary
	Err  error
}

// setOpenedMsg carries a loaded set and how it should be studied.
type setOpenedMsg struct {
	Set  *questionset.Model
	Mode questionset.Mode
	Err  error
}

// HomeScreen lists question sets and starts study sessions.
type HomeScreen struct {
	env     screen.Env
	sets    []store.SetSummary
	menu    components.Menu
	loaded  bool
	opening bool
	errMsg  string
	notice  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(env screen.Env) *HomeScreen {
	return &HomeScreen{env: env}
}

func (h *HomeScreen) Init() tea.Cmd {
	env := h.env
	return func() tea.Msg {
		if env.Sets == nil {
			return setsLoadedMsg{}
		}
		sets, err := env.Sets.List(context.Background(), env.Owner, store.ListOpts{Limit: listLimit})
		return setsLoadedMsg{Sets: sets, Err: err}
	}
}

// Resume reloads the list, picking up sets imported or attempts taken while
// another screen was active.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if len(h.sets) == 0 {
		return []layout.KeyHint{
			{Key: "R", Description: "Reload"},
			{Key: "H", Description: "History"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "E", Description: "Exam"},
		{Key: "F", Description: "Flashcards"},
		{Key: "H", Description: "History"},
		{Key: "R", Description: "Reload"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.env.Logger().Error("list question sets", zap.Error(msg.Err))
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.sets = msg.Sets
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.menuItems())
		if selected < len(h.sets) {
			h.menu.Selected = selected
		}
		return h, nil

	case setOpenedMsg:
		h.opening = false
		if msg.Err != nil {
			h.notice = openError(msg.Err)
			return h, nil
		}
		if msg.Mode == questionset.ModeFlashcard {
			return h, router.Push(flashcard.New(msg.Set))
		}
		return h, router.Push(examscreen.New(h.env, msg.Set))

	case tea.KeyMsg:
		if h.opening {
			return h, nil
		}
		switch msg.String() {
		case "q":
			return h, tea.Quit
		case "r":
			h.notice = ""
			return h, h.Init()
		case "h":
			return h, router.Push(history.New(h.env, ""))
		case "e":
			if s, ok := h.current(); ok {
				return h, h.open(s.ID, questionset.ModeExam)
			}
			return h, nil
		case "f":
			if s, ok := h.current(); ok {
				return h, h.open(s.ID, questionset.ModeFlashcard)
			}
			return h, nil
		case "up", "k", "down", "j":
			h.notice = ""
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) current() (store.SetSummary, bool) {
	if len(h.sets) == 0 {
		return store.SetSummary{}, false
	}
	return h.sets[h.menu.Selected], true
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.sets))
	for _, s := range h.sets {
		items = append(items, components.MenuItem{
			Label:  s.Title,
			Detail: describe(s),
			Action: func() tea.Cmd { return h.open(s.ID, s.Mode) },
		})
	}
	return items
}

// open loads set id and starts it in mode. Exam and practice sets both run
// on the exam screen; the set's time limit decides whether it is timed.
func (h *HomeScreen) open(id string, mode questionset.Mode) tea.Cmd {
	h.opening = true
	h.notice = ""
	env := h.env
	return func() tea.Msg {
		set, err := env.Sets.Get(context.Background(), env.Owner, id)
		if err != nil {
			env.Logger().Warn("open question set", zap.String("set_id", id), zap.Error(err))
		}
		return setOpenedMsg{Set: set, Mode: mode, Err: err}
	}
}

func openError(err error) string {
	switch {
	case errors.Is(err, questionset.ErrMalformedQuestionSet):
		return "This set is damaged and cannot be started: " + err.Error()
	case errors.Is(err, store.ErrNotFound):
		return "This set no longer exists. Press R to reload."
	}
	return "Could not open set: " + err.Error()
}

func describe(s store.SetSummary) string {
	parts := []string{string(s.Mode), plural(s.QuestionCount, "question")}
	if s.TimeLimit > 0 {
		parts = append(parts, fmt.Sprintf("%d min", s.TimeLimit))
	}
	return strings.Join(parts, " · ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Your question sets"))
	b.WriteString("\n\n")

	switch {
	case h.errMsg != "":
		b.WriteString(layout.Centered(theme.Incorrect.Render("Error: "+h.errMsg), width))
		return b.String()
	case !h.loaded:
		b.WriteString(layout.Centered(theme.Hint.Render("Loading..."), width))
		return b.String()
	case len(h.sets) == 0:
		b.WriteString(layout.Centered(theme.Hint.Render("No question sets yet. Import one with: studykit import <file>"), width))
		return b.String()
	}

	menu := lipgloss.NewStyle().Width(layout.TextWidth(width)).Render(h.menu.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	if h.opening {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Hint.Render("Opening..."), width))
	}
	if h.notice != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Incorrect.Render(h.notice), width))
	}
	return b.String()
}
