// Package ledger records a respondent's answers during an active session.
package ledger

import (
	"errors"
	"fmt"
	"maps"

	"github.com/studykit/studykit/internal/questionset"
)

// ErrUnknownQuestion is returned when an answer targets a question id that is
// not part of the owning set.
var ErrUnknownQuestion = errors.New("unknown question")

// Ledger maps question ids to the respondent's latest answer. Only the last
// answer per question is kept. A Ledger is owned by a single session and is not
// safe for concurrent use.
type Ledger struct {
	set     *questionset.Model
	answers map[string]string
}

// New creates an empty ledger for set.
func New(set *questionset.Model) *Ledger {
	return &Ledger{
		set:     set,
		answers: make(map[string]string),
	}
}

// Record stores answer for questionID, replacing any earlier answer.
func (l *Ledger) Record(questionID, answer string) error {
	if !l.set.Has(questionID) {
		return fmt.Errorf("record %q: %w", questionID, ErrUnknownQuestion)
	}
	l.answers[questionID] = answer
	return nil
}

// Get returns the current answer. ok is false when the question is unanswered.
func (l *Ledger) Get(questionID string) (answer string, ok bool) {
	answer, ok = l.answers[questionID]
	return answer, ok
}

// Len returns the number of answered questions.
func (l *Ledger) Len() int {
	return len(l.answers)
}

// AsMap returns a snapshot of all recorded answers. Later calls to Record do
// not affect the returned map.
func (l *Ledger) AsMap() map[string]string {
	return maps.Clone(l.answers)
}
