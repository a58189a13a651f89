package exam

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studykit/studykit/internal/clock"
	"github.com/studykit/studykit/internal/ledger"
	"github.com/studykit/studykit/internal/questionset"
)

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func buildSet(t *testing.T, limit *int) *questionset.Model {
	t.Helper()
	opts := []string{"A", "B", "C", "D"}
	rec := questionset.Record{
		ID:    "set-1",
		Title: "Sample",
		Mode:  questionset.ModePractice,
		Questions: []questionset.QuestionRecord{
			{ID: "q1", Text: "one", Kind: questionset.KindMCQ, Options: opts, Answer: "A"},
			{ID: "q2", Text: "two", Kind: questionset.KindMCQ, Options: opts, Answer: "B"},
			{ID: "q3", Text: "three", Kind: questionset.KindMCQ, Options: opts, Answer: "C"},
		},
	}
	if limit != nil {
		rec.Mode = questionset.ModeExam
		rec.TimeLimit = limit
	}
	m, err := questionset.New(rec)
	require.NoError(t, err)
	return m
}

func minutes(n int) *int { return &n }

func newSession(t *testing.T, set *questionset.Model, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{
		WithNow(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "attempt-1" }),
	}, opts...)
	s, err := New(set, opts...)
	require.NoError(t, err)
	return s
}

func TestSubmit_ScoresExactMatches(t *testing.T) {
	s := newSession(t, buildSet(t, nil))

	require.NoError(t, s.Answer("q1", "B"))
	require.NoError(t, s.Answer("q2", "B"))
	require.NoError(t, s.Answer("q3", "D"))

	a, err := s.Submit()
	require.NoError(t, err)

	assert.Equal(t, 1, a.Score)
	assert.Equal(t, 3, a.TotalQuestions)
	assert.Equal(t, "attempt-1", a.ID)
	assert.Equal(t, "set-1", a.QuestionSetID)
	assert.Equal(t, fixedNow, a.CompletedAt)
	assert.Equal(t, map[string]string{"q1": "B", "q2": "B", "q3": "D"}, a.Answers)
	assert.Equal(t, StateSubmitted, s.State())
	assert.False(t, s.AutoSubmitted())
}

func TestSubmit_Unanswered(t *testing.T) {
	s := newSession(t, buildSet(t, nil))

	a, err := s.Submit()
	require.NoError(t, err)
	assert.Zero(t, a.Score)
	assert.Equal(t, 3, a.TotalQuestions)
	assert.Empty(t, a.Answers)
	assert.NotNil(t, a.Answers)
}

func TestSubmit_Twice(t *testing.T) {
	var calls int
	s := newSession(t, buildSet(t, nil), OnSubmit(func(Attempt) { calls++ }))

	first, err := s.Submit()
	require.NoError(t, err)

	_, err = s.Submit()
	assert.True(t, errors.Is(err, ErrInvalidState), "err = %v", err)
	assert.Equal(t, 1, calls)

	stored, ok := s.Attempt()
	require.True(t, ok)
	assert.Equal(t, first, stored)
}

func TestAnswer_AfterSubmit(t *testing.T) {
	s := newSession(t, buildSet(t, nil))
	require.NoError(t, s.Answer("q1", "A"))
	_, err := s.Submit()
	require.NoError(t, err)

	err = s.Answer("q2", "B")
	assert.ErrorIs(t, err, ErrInvalidState)

	a, _ := s.Attempt()
	assert.Equal(t, map[string]string{"q1": "A"}, a.Answers)
}

func TestAnswer_UnknownQuestion(t *testing.T) {
	s := newSession(t, buildSet(t, nil))

	err := s.Answer("q9", "A")
	assert.ErrorIs(t, err, ledger.ErrUnknownQuestion)
	assert.Equal(t, StateActive, s.State())
	assert.Zero(t, s.Answered())
}

func TestAnswer_LastWriteWins(t *testing.T) {
	s := newSession(t, buildSet(t, nil))
	require.NoError(t, s.Answer("q1", "D"))
	require.NoError(t, s.Answer("q1", "A"))

	got, ok := s.Selected("q1")
	assert.True(t, ok)
	assert.Equal(t, "A", got)

	a, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 1, a.Score)
}

func TestAttempt_BeforeSubmit(t *testing.T) {
	s := newSession(t, buildSet(t, nil))
	_, ok := s.Attempt()
	assert.False(t, ok)
}

func TestUntimed_HasNoClock(t *testing.T) {
	s := newSession(t, buildSet(t, nil))
	assert.False(t, s.Timed())
	_, ok := s.Remaining()
	assert.False(t, ok)
	assert.Zero(t, s.Tick())
	s.Start(context.Background())
	assert.Equal(t, StateActive, s.State())
}

func TestExpiry_AutoSubmits(t *testing.T) {
	var got []Attempt
	s := newSession(t, buildSet(t, minutes(1)), OnSubmit(func(a Attempt) { got = append(got, a) }))
	require.True(t, s.Timed())

	rem, _ := s.Remaining()
	require.Equal(t, 60, rem)

	for i := 0; i < 59; i++ {
		s.Tick()
	}
	assert.Equal(t, StateActive, s.State())

	assert.Zero(t, s.Tick())
	assert.Equal(t, StateSubmitted, s.State())
	assert.True(t, s.AutoSubmitted())

	require.Len(t, got, 1)
	assert.Zero(t, got[0].Score)
	assert.Equal(t, 3, got[0].TotalQuestions)

	// Further ticks do nothing and a manual submit is rejected.
	s.Tick()
	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Len(t, got, 1)
}

func TestExpiry_MatchesManualSubmit(t *testing.T) {
	answer := func(s *Session) {
		require.NoError(t, s.Answer("q1", "A"))
		require.NoError(t, s.Answer("q2", "C"))
	}

	manual := newSession(t, buildSet(t, minutes(1)))
	answer(manual)
	want, err := manual.Submit()
	require.NoError(t, err)

	forced := newSession(t, buildSet(t, minutes(1)))
	answer(forced)
	for i := 0; i < 60; i++ {
		forced.Tick()
	}
	got, ok := forced.Attempt()
	require.True(t, ok)

	assert.Equal(t, want, got)
}

func TestSubmit_StopsClock(t *testing.T) {
	s := newSession(t, buildSet(t, minutes(1)))
	s.Tick()
	_, err := s.Submit()
	require.NoError(t, err)

	rem, _ := s.Remaining()
	for i := 0; i < 100; i++ {
		s.Tick()
	}
	after, _ := s.Remaining()
	assert.Equal(t, rem, after)
	assert.False(t, s.AutoSubmitted())
}

func TestStart_ExpiresInBackground(t *testing.T) {
	done := make(chan Attempt, 1)
	s := newSession(t, buildSet(t, minutes(1)),
		WithClockOptions(clock.WithInterval(time.Millisecond)),
		OnSubmit(func(a Attempt) { done <- a }),
	)
	require.NoError(t, s.Answer("q3", "C"))

	s.Start(context.Background())

	select {
	case a := <-done:
		assert.Equal(t, 1, a.Score)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not auto-submit")
	}
	assert.True(t, s.AutoSubmitted())
}

func TestSubmit_RacesWithExpiry(t *testing.T) {
	for i := 0; i < 50; i++ {
		var mu sync.Mutex
		calls := 0
		s := newSession(t, buildSet(t, minutes(1)),
			WithClockOptions(clock.WithInterval(time.Microsecond)),
			OnSubmit(func(Attempt) {
				mu.Lock()
				calls++
				mu.Unlock()
			}),
		)
		s.Start(context.Background())
		_, _ = s.Submit()

		count := func() int {
			mu.Lock()
			defer mu.Unlock()
			return calls
		}
		require.Eventually(t, func() bool { return count() >= 1 }, time.Second, time.Millisecond)
		time.Sleep(2 * time.Millisecond)
		if n := count(); n != 1 {
			t.Fatalf("run %d: submissions = %d, want 1", i, n)
		}
	}
}

func TestNew_NilSet(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "submitted", StateSubmitted.String())
	assert.Equal(t, "State(7)", State(7).String())
}
