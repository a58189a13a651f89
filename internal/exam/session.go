// Package exam runs timed exams and untimed practice sessions over a question
// set and produces a scored Attempt on submission.
package exam

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studykit/studykit/internal/clock"
	"github.com/studykit/studykit/internal/ledger"
	"github.com/studykit/studykit/internal/questionset"
)

// ErrInvalidState is returned for operations that are not legal in the
// session's current state, such as answering or submitting after submission.
var ErrInvalidState = errors.New("invalid session state")

// State is the lifecycle state of a session.
type State int

const (
	StateActive    State = iota // accepting answers
	StateSubmitted              // scored and frozen, terminal
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Session.
type Option func(*Session)

// WithNow overrides the completion timestamp source.
func WithNow(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator overrides how attempt ids are generated.
func WithIDGenerator(gen func() string) Option {
	return func(s *Session) { s.newID = gen }
}

// OnSubmit registers a callback invoked once with the Attempt, after the
// session has moved to StateSubmitted. It runs for both manual and
// clock-forced submissions and is called without internal locks held.
func OnSubmit(fn func(Attempt)) Option {
	return func(s *Session) { s.onSubmit = fn }
}

// WithClockOptions passes options to the session clock of timed sets.
func WithClockOptions(opts ...clock.Option) Option {
	return func(s *Session) { s.clockOpts = append(s.clockOpts, opts...) }
}

// Session is the exam state machine. It starts Active and becomes Submitted
// exactly once, either through Submit or through clock expiry.
//
// Methods are safe to call from the clock goroutine and the caller's goroutine
// concurrently; the Active guard makes manual and forced submission mutually
// exclusive.
type Session struct {
	mu sync.Mutex

	set    *questionset.Model
	ledger *ledger.Ledger
	clock  *clock.Clock // nil for untimed sets
	state  State

	attempt       Attempt
	autoSubmitted bool

	now       func() time.Time
	newID     func() string
	onSubmit  func(Attempt)
	clockOpts []clock.Option
}

// New creates an Active session for set. A clock is attached when the set
// carries a time limit.
func New(set *questionset.Model, opts ...Option) (*Session, error) {
	if set == nil {
		return nil, errors.New("new session: nil question set")
	}
	s := &Session{
		set:    set,
		ledger: ledger.New(set),
		state:  StateActive,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}

	if limit, ok := set.TimeLimit(); ok {
		c, err := clock.New(limit, s.expire, s.clockOpts...)
		if err != nil {
			return nil, fmt.Errorf("new session: %w", err)
		}
		s.clock = c
	}
	return s, nil
}

// Set returns the question set the session runs over.
func (s *Session) Set() *questionset.Model {
	return s.set
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Timed reports whether the session has a clock.
func (s *Session) Timed() bool {
	return s.clock != nil
}

// Remaining returns the seconds left on the clock. ok is false when untimed.
func (s *Session) Remaining() (secs int, ok bool) {
	if s.clock == nil {
		return 0, false
	}
	return s.clock.Remaining(), true
}

// Start runs the clock on its own ticker until the session ends or ctx is
// done. It is a no-op for untimed sessions. Callers that drive time
// themselves use Tick instead.
func (s *Session) Start(ctx context.Context) {
	if s.clock == nil {
		return
	}
	s.clock.Start(ctx)
}

// Tick advances the clock by one second and returns the remaining time. When
// the clock reaches zero the session submits itself. Tick is a no-op for
// untimed or submitted sessions.
func (s *Session) Tick() int {
	if s.clock == nil {
		return 0
	}
	return s.clock.Tick()
}

// Answer records value for questionID. It fails with ErrInvalidState once the
// session is submitted and with ledger.ErrUnknownQuestion for ids outside the
// set.
func (s *Session) Answer(questionID, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return fmt.Errorf("answer %q: session is %s: %w", questionID, s.state, ErrInvalidState)
	}
	return s.ledger.Record(questionID, value)
}

// Selected returns the current answer for questionID.
func (s *Session) Selected(questionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Get(questionID)
}

// Answered returns how many questions have an answer.
func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Len()
}

// Submit scores the session and returns its Attempt. A second call fails with
// ErrInvalidState and produces no new Attempt.
func (s *Session) Submit() (Attempt, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return Attempt{}, fmt.Errorf("submit: session is %s: %w", s.state, ErrInvalidState)
	}
	a := s.submitLocked()
	s.mu.Unlock()

	s.notify(a)
	return a.clone(), nil
}

// expire is the clock's expiry callback.
func (s *Session) expire() {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return
	}
	a := s.submitLocked()
	s.autoSubmitted = true
	s.mu.Unlock()

	s.notify(a)
}

func (s *Session) submitLocked() Attempt {
	answers := s.ledger.AsMap()
	s.attempt = Attempt{
		ID:             s.newID(),
		QuestionSetID:  s.set.ID(),
		Answers:        answers,
		Score:          Score(s.set, answers),
		TotalQuestions: s.set.Len(),
		CompletedAt:    s.now(),
	}
	s.state = StateSubmitted
	if s.clock != nil {
		s.clock.Stop()
	}
	return s.attempt.clone()
}

func (s *Session) notify(a Attempt) {
	if s.onSubmit != nil {
		s.onSubmit(a.clone())
	}
}

// Attempt returns the submitted Attempt. ok is false while the session is
// still active.
func (s *Session) Attempt() (Attempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSubmitted {
		return Attempt{}, false
	}
	return s.attempt.clone(), true
}

// AutoSubmitted reports whether submission was forced by clock expiry.
func (s *Session) AutoSubmitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoSubmitted
}
