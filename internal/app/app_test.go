package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/studykit/studykit/internal/router"
	"github.com/studykit/studykit/internal/screen"
	"github.com/studykit/studykit/internal/ui/layout"
)

// stubScreen records the keys it receives.
type stubScreen struct {
	title     string
	intercept bool
	keys      []string
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}
func (s *stubScreen) View(int, int) string { return "body of " + s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) InterceptsBack() bool { return s.intercept }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "X", Description: "Stub action"}}
}

func pushed(t *testing.T, m AppModel, s screen.Screen) AppModel {
	t.Helper()
	next, _ := m.Update(router.PushScreenMsg{Screen: s})
	return next.(AppModel)
}

func TestEscPopsScreen(t *testing.T) {
	m := pushed(t, NewAppModel("default", &stubScreen{title: "home"}), &stubScreen{title: "child"})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestEscAtRootDoesNothing(t *testing.T) {
	m := NewAppModel("default", &stubScreen{title: "home"})
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc at root should do nothing")
	}
}

func TestEscForwardedToInterceptor(t *testing.T) {
	child := &stubScreen{title: "exam", intercept: true}
	m := pushed(t, NewAppModel("default", &stubScreen{title: "home"}), child)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(child.keys) != 1 || child.keys[0] != "esc" {
		t.Errorf("child keys = %v, want [esc]", child.keys)
	}
	if m.router.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", m.router.Depth())
	}
}

func TestFooterUsesScreenHints(t *testing.T) {
	m := NewAppModel("work", &stubScreen{title: "home"})
	hints := m.footerHints()
	if len(hints) != 2 || hints[0].Description != "Stub action" || hints[1].Key != "Ctrl+C" {
		t.Errorf("hints = %+v", hints)
	}
}

func TestInitRunsStartScreen(t *testing.T) {
	called := false
	m := NewAppModel("default", initScreen{&called})
	if cmd := m.Init(); cmd != nil {
		cmd()
	}
	if !called {
		t.Error("start screen Init was not run")
	}
}

func TestInitialStack(t *testing.T) {
	m := NewAppModel("default", &stubScreen{title: "home"}, &stubScreen{title: "exam"})
	if m.router.Depth() != 2 || m.router.Active().Title() != "exam" {
		t.Errorf("Depth = %d, Active = %q", m.router.Depth(), m.router.Active().Title())
	}
}

type initScreen struct{ called *bool }

func (s initScreen) Init() tea.Cmd {
	return func() tea.Msg { *s.called = true; return nil }
}
func (s initScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s initScreen) View(int, int) string                    { return "" }
func (s initScreen) Title() string                           { return "" }
