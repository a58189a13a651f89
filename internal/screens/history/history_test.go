package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/studykit/studykit/internal/exam"
	"github.com/studykit/studykit/internal/questionset"
	"github.com/studykit/studykit/internal/router"
	"github.com/studykit/studykit/internal/screen"
	reviewscreen "github.com/studykit/studykit/internal/screens/review"
	"github.com/studykit/studykit/internal/store"
)

type mockSetRepo struct {
	sets map[string]*questionset.Model
	err  error
}

func (m *mockSetRepo) Save(_ context.Context, _ string, _ *questionset.Model) error { return nil }

func (m *mockSetRepo) Get(_ context.Context, _, id string) (*questionset.Model, error) {
	if m.err != nil {
		return nil, m.err
	}
	set, ok := m.sets[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return set, nil
}

func (m *mockSetRepo) List(_ context.Context, _ string, _ store.ListOpts) ([]store.SetSummary, error) {
	return nil, nil
}

type mockAttemptRepo struct {
	attempts []store.AttemptSummary
	lastOpts store.ListOpts
	err      error
}

func (m *mockAttemptRepo) Save(_ context.Context, _ string, _ exam.Attempt) error { return nil }

func (m *mockAttemptRepo) Get(_ context.Context, _, _ string) (exam.Attempt, error) {
	return exam.Attempt{}, store.ErrNotFound
}

func (m *mockAttemptRepo) List(_ context.Context, _ string, opts store.ListOpts) ([]store.AttemptSummary, error) {
	m.lastOpts = opts
	return m.attempts, m.err
}

func testEnv(t *testing.T) (screen.Env, *mockSetRepo, *mockAttemptRepo) {
	t.Helper()
	set, err := questionset.New(questionset.Record{
		ID:    "set-1",
		Title: "Capitals",
		Questions: []questionset.QuestionRecord{
			{ID: "q1", Text: "Capital of Italy?", Kind: questionset.KindShort, Answer: "Rome"},
		},
	})
	if err != nil {
		t.Fatalf("build set: %v", err)
	}
	sets := &mockSetRepo{sets: map[string]*questionset.Model{"set-1": set}}
	attempts := &mockAttemptRepo{attempts: []store.AttemptSummary{
		{
			Attempt: exam.Attempt{
				ID: "a2", QuestionSetID: "set-1", Answers: map[string]string{"q1": "Rome"},
				Score: 1, TotalQuestions: 1, CompletedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			},
			SetTitle: "Capitals",
		},
		{
			Attempt: exam.Attempt{
				ID: "a1", QuestionSetID: "set-1", Answers: map[string]string{},
				Score: 0, TotalQuestions: 5, CompletedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			},
			SetTitle: "Capitals",
		},
	}}
	return screen.Env{Sets: sets, Attempts: attempts, Owner: "default"}, sets, attempts
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistoryScreen_Lists(t *testing.T) {
	env, _, repo := testEnv(t)
	s := New(env, "set-1")
	load(t, s)

	if repo.lastOpts.QuestionSetID != "set-1" {
		t.Errorf("filter = %q, want set-1", repo.lastOpts.QuestionSetID)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Capitals") || !strings.Contains(view, "100%") {
		t.Errorf("view missing attempt row:\n%s", view)
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	env, _, repo := testEnv(t)
	repo.attempts = nil
	s := New(env, "")
	load(t, s)
	if !strings.Contains(s.View(100, 30), "No attempts yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_LoadError(t *testing.T) {
	env, _, repo := testEnv(t)
	repo.err = errors.New("db locked")
	s := New(env, "")
	load(t, s)
	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("expected load error")
	}
}

func TestHistoryScreen_OpenReview(t *testing.T) {
	env, _, _ := testEnv(t)
	s := New(env, "")
	load(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected load command")
	}
	_, next := s.Update(cmd())
	if next == nil {
		t.Fatal("expected push command")
	}
	msg, ok := next().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", next())
	}
	if _, ok := msg.Screen.(*reviewscreen.ReviewScreen); !ok {
		t.Errorf("pushed %T, want review screen", msg.Screen)
	}
}

func TestHistoryScreen_MismatchShown(t *testing.T) {
	env, _, _ := testEnv(t)
	s := New(env, "")
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, next := s.Update(cmd())
	if next != nil {
		t.Error("mismatched attempt must not open a review")
	}
	if !strings.Contains(s.View(100, 30), "no longer matches") {
		t.Error("expected mismatch notice")
	}

	// The list stays usable.
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 || s.notice != "" {
		t.Errorf("selected = %d notice = %q", s.selected, s.notice)
	}
}

func TestHistoryScreen_MissingSet(t *testing.T) {
	env, sets, _ := testEnv(t)
	sets.sets = nil
	s := New(env, "")
	load(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())
	if !strings.Contains(s.View(100, 30), "no longer exists") {
		t.Error("expected missing set notice")
	}
}
