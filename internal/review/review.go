// Package review rebuilds per-question correctness for a stored attempt.
package review

import (
	"errors"
	"fmt"

	"github.com/studykit/studykit/internal/exam"
	"github.com/studykit/studykit/internal/questionset"
)

// ErrAttemptMismatch is returned when an attempt no longer lines up with the
// question set it was taken against.
var ErrAttemptMismatch = errors.New("attempt does not match question set")

// Item is one reviewed question.
type Item struct {
	Number   int // 1-based position in the set
	Question questionset.Question
	Answer   string // respondent's answer; empty when unanswered
	Answered bool
	Correct  bool
}

// Result is a reconstructed attempt.
type Result struct {
	Attempt exam.Attempt
	Title   string
	Items   []Item
}

// Correct returns how many items were answered correctly.
func (r *Result) Correct() int {
	n := 0
	for _, it := range r.Items {
		if it.Correct {
			n++
		}
	}
	return n
}

// Unanswered returns how many items have no answer.
func (r *Result) Unanswered() int {
	n := 0
	for _, it := range r.Items {
		if !it.Answered {
			n++
		}
	}
	return n
}

// Percent returns the stored attempt's percentage.
func (r *Result) Percent() int {
	return r.Attempt.Percent()
}

// Reconstruct walks set in order and pairs each question with the attempt's
// answer, flagging correctness with the same rule used for scoring. It fails
// with ErrAttemptMismatch, returning no partial result, when the attempt's
// question count or set id differs from set.
func Reconstruct(a exam.Attempt, set *questionset.Model) (*Result, error) {
	if set == nil {
		return nil, errors.New("reconstruct: nil question set")
	}
	if a.TotalQuestions != set.Len() {
		return nil, fmt.Errorf("reconstruct attempt %s: %d questions recorded, set has %d: %w",
			a.ID, a.TotalQuestions, set.Len(), ErrAttemptMismatch)
	}
	if a.QuestionSetID != "" && a.QuestionSetID != set.ID() {
		return nil, fmt.Errorf("reconstruct attempt %s: taken on set %s, not %s: %w",
			a.ID, a.QuestionSetID, set.ID(), ErrAttemptMismatch)
	}

	items := make([]Item, 0, set.Len())
	for i, q := range set.All() {
		ans, ok := a.Answers[q.ID]
		items = append(items, Item{
			Number:   i + 1,
			Question: q,
			Answer:   ans,
			Answered: ok,
			Correct:  exam.IsCorrect(q, ans, ok),
		})
	}
	return &Result{Attempt: a, Title: set.Title(), Items: items}, nil
}
