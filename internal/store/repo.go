package store

import (
	"context"
	"errors"
	"time"

	"github.com/studykit/studykit/internal/exam"
	"github.com/studykit/studykit/internal/questionset"
)

var (
	// ErrNotFound is returned when a requested row does not exist for the
	// given owner.
	ErrNotFound = errors.New("not found")

	// ErrExists is returned when saving a row whose id is already taken.
	ErrExists = errors.New("already exists")
)

// ListOpts configures list queries. Results are always newest first.
type ListOpts struct {
	Limit         int    // max results (0 = unlimited)
	QuestionSetID string // attempts only: restrict to one set
}

// SetSummary is a question set listing row.
type SetSummary struct {
	ID            string
	Title         string
	Mode          questionset.Mode
	TimeLimit     int // minutes, 0 when untimed
	CreatedAt     time.Time
	QuestionCount int
}

// AttemptSummary is an attempt listing row.
type AttemptSummary struct {
	exam.Attempt
	SetTitle string
}

// QuestionSetRepo persists question sets. Sets are immutable once saved.
type QuestionSetRepo interface {
	// Save stores a new set with its questions in one transaction.
	Save(ctx context.Context, owner string, set *questionset.Model) error

	// Get loads a set and builds its Model. A set whose stored questions no
	// longer validate fails with questionset.ErrMalformedQuestionSet.
	Get(ctx context.Context, owner, id string) (*questionset.Model, error)

	// List returns the owner's sets, newest first.
	List(ctx context.Context, owner string, opts ListOpts) ([]SetSummary, error)
}

// AttemptRepo persists submitted attempts.
type AttemptRepo interface {
	// Save stores a submitted attempt.
	Save(ctx context.Context, owner string, a exam.Attempt) error

	// Get returns a single attempt.
	Get(ctx context.Context, owner, id string) (exam.Attempt, error)

	// List returns the owner's attempts, newest first.
	List(ctx context.Context, owner string, opts ListOpts) ([]AttemptSummary, error)
}
