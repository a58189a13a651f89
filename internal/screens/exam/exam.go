// Package exam is the screen that runs an exam or practice session.
package exam

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	sess "github.com/studykit/studykit/internal/exam"
	"github.com/studykit/studykit/internal/questionset"
	"github.com/studykit/studykit/internal/review"
	"github.com/studykit/studykit/internal/router"
	"github.com/studykit/studykit/internal/screen"
	reviewscreen "github.com/studykit/studykit/internal/screens/review"
	"github.com/studykit/studykit/internal/ui/components"
	"github.com/studykit/studykit/internal/ui/layout"
)

// ExamScreen implements screen.Screen for an active exam or practice run.
type ExamScreen struct {
	env     screen.Env
	set     *questionset.Model
	session *sess.Session

	current int
	options components.OptionList
	input   components.TextInput

	confirmQuit   bool
	confirmSubmit bool
	saving        bool
	errMsg        string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.BackInterceptor = (*ExamScreen)(nil)

// New creates an ExamScreen over set. opts are passed to the session.
func New(env screen.Env, set *questionset.Model, opts ...sess.Option) *ExamScreen {
	s := &ExamScreen{env: env, set: set}
	session, err := sess.New(set, opts...)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.session = session
	if set.Len() > 0 {
		s.loadQuestion(0)
	}
	return s
}

func (s *ExamScreen) Init() tea.Cmd {
	if s.session == nil {
		return nil
	}
	cmds := []tea.Cmd{s.focusCmd()}
	if s.session.Timed() {
		cmds = append(cmds, tickCmd())
	}
	s.env.Logger().Info("exam started",
		zap.String("set_id", s.set.ID()),
		zap.Bool("timed", s.session.Timed()),
		zap.Int("questions", s.set.Len()),
	)
	return tea.Batch(cmds...)
}

func (s *ExamScreen) Title() string {
	if s.session != nil && s.session.Timed() {
		return "Exam · " + s.set.Title()
	}
	return "Practice · " + s.set.Title()
}

// InterceptsBack keeps Esc inside the screen while answers could be lost.
func (s *ExamScreen) InterceptsBack() bool {
	return s.session != nil && s.session.State() == sess.StateActive && s.errMsg == ""
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit || s.confirmSubmit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
		}
	case s.saving:
		return nil
	case s.isText():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save answer"},
			{Key: "Tab", Description: "Next"},
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter/1-9", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()

	case attemptSavedMsg:
		return s.handleSaved(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.isText() && s.active() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExamScreen) active() bool {
	return s.session != nil && s.session.State() == sess.StateActive && !s.saving
}

func (s *ExamScreen) isText() bool {
	if s.session == nil || s.set.Len() == 0 {
		return false
	}
	return s.set.At(s.current).Kind == questionset.KindShort
}

func (s *ExamScreen) keys() keyMap {
	if s.isText() {
		return textKeys()
	}
	return defaultKeys()
}

// loadQuestion moves to question i and restores its recorded answer.
func (s *ExamScreen) loadQuestion(i int) {
	s.current = i
	q := s.set.At(i)
	chosen, _ := s.session.Selected(q.ID)
	if q.Kind == questionset.KindShort {
		s.input = components.NewTextInput("Type your answer...", chosen, 200)
		return
	}
	s.options = components.NewOptionList(q.Options, chosen)
}

func (s *ExamScreen) handleTick() (screen.Screen, tea.Cmd) {
	if !s.active() {
		return s, nil
	}
	s.commitText()
	s.session.Tick()
	if s.session.State() == sess.StateSubmitted {
		a, _ := s.session.Attempt()
		s.env.Logger().Info("exam time expired", zap.String("set_id", s.set.ID()))
		return s.persist(a)
	}
	return s, tickCmd()
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, router.Pop
	}
	if !s.active() {
		return s, nil
	}
	k := s.keys()

	if s.confirmQuit {
		switch {
		case key.Matches(msg, k.Yes):
			s.confirmQuit = false
			s.session = nil
			s.env.Logger().Info("exam abandoned", zap.String("set_id", s.set.ID()))
			return s, router.Pop
		case key.Matches(msg, k.No):
			s.confirmQuit = false
		}
		return s, nil
	}
	if s.confirmSubmit {
		switch {
		case key.Matches(msg, k.Yes):
			s.confirmSubmit = false
			return s.submit()
		case key.Matches(msg, k.No):
			s.confirmSubmit = false
		}
		return s, nil
	}

	switch {
	case msg.String() == "esc":
		s.confirmQuit = true
		return s, nil
	case key.Matches(msg, k.Submit):
		s.commitText()
		s.confirmSubmit = true
		return s, nil
	case key.Matches(msg, k.Next):
		s.move(1)
		return s, s.focusCmd()
	case key.Matches(msg, k.Prev):
		s.move(-1)
		return s, s.focusCmd()
	}

	if s.isText() {
		if key.Matches(msg, k.Pick) {
			s.commitText()
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch {
	case key.Matches(msg, k.Pick):
		if v, ok := s.options.PickCursor(); ok {
			s.record(v)
		}
		return s, nil
	case key.Matches(msg, k.Up), key.Matches(msg, k.Down):
		s.options, _ = s.options.Update(msg)
		return s, nil
	}

	if d := msg.String(); len(d) == 1 && d[0] >= '1' && d[0] <= '9' {
		if v, ok := s.options.Pick(int(d[0] - '1')); ok {
			s.record(v)
		}
	}
	return s, nil
}

func (s *ExamScreen) focusCmd() tea.Cmd {
	if s.isText() {
		return s.input.Init()
	}
	return nil
}

func (s *ExamScreen) move(delta int) {
	next := s.current + delta
	if next < 0 || next >= s.set.Len() {
		return
	}
	s.commitText()
	s.loadQuestion(next)
}

// commitText records a typed answer that has not been saved yet.
func (s *ExamScreen) commitText() {
	if !s.isText() || s.input.Saved() || s.input.Blank() {
		return
	}
	s.record(s.input.Value())
	s.input.MarkSaved()
}

func (s *ExamScreen) record(value string) {
	q := s.set.At(s.current)
	if err := s.session.Answer(q.ID, value); err != nil {
		s.env.Logger().Warn("record answer", zap.String("question_id", q.ID), zap.Error(err))
	}
}

func (s *ExamScreen) submit() (screen.Screen, tea.Cmd) {
	a, err := s.session.Submit()
	if err != nil {
		// Expiry won the race; its attempt is already being saved.
		s.env.Logger().Debug("manual submit rejected", zap.Error(err))
		return s, nil
	}
	return s.persist(a)
}

func (s *ExamScreen) persist(a sess.Attempt) (screen.Screen, tea.Cmd) {
	s.saving = true
	env := s.env
	return s, func() tea.Msg {
		if env.Attempts == nil {
			return attemptSavedMsg{Attempt: a}
		}
		err := env.Attempts.Save(context.Background(), env.Owner, a)
		return attemptSavedMsg{Attempt: a, Err: err}
	}
}

func (s *ExamScreen) handleSaved(msg attemptSavedMsg) (screen.Screen, tea.Cmd) {
	notice := ""
	if s.session != nil && s.session.AutoSubmitted() {
		notice = "Time is up. Your answers were submitted automatically."
	}
	if msg.Err != nil {
		s.env.Logger().Error("save attempt", zap.String("attempt_id", msg.Attempt.ID), zap.Error(msg.Err))
		notice = "Could not save this attempt: " + msg.Err.Error()
	}

	res, err := review.Reconstruct(msg.Attempt, s.set)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, router.Replace(reviewscreen.New(res, notice))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
