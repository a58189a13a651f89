package questionset

import (
	"errors"
	"fmt"
)

// ErrMalformedQuestionSet is returned when a set cannot be used to start a
// session. Match with errors.Is.
var ErrMalformedQuestionSet = errors.New("malformed question set")

// MalformedError describes why a set was rejected.
type MalformedError struct {
	// QuestionID is empty for set-level problems.
	QuestionID string
	Reason     string
	Err        error
}

func (e *MalformedError) Error() string {
	msg := ErrMalformedQuestionSet.Error()
	if e.QuestionID != "" {
		msg += fmt.Sprintf(": question %q", e.QuestionID)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedQuestionSet}
	}
	return []error{ErrMalformedQuestionSet, e.Err}
}

func malformed(questionID, reason string, err error) *MalformedError {
	return &MalformedError{QuestionID: questionID, Reason: reason, Err: err}
}
