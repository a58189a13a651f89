package exam

import (
	"time"

	sess "github.com/studykit/studykit/internal/exam"
)

// timerTickMsg is sent every second while a timed exam is active.
type timerTickMsg time.Time

// attemptSavedMsg is sent once the submitted attempt has been persisted.
type attemptSavedMsg struct {
	Attempt sess.Attempt
	Err     error
}
