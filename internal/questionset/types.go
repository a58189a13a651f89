package questionset

import "time"

// Kind describes how a question is answered.
type Kind string

const (
	// KindMCQ is a multiple-choice question; its answer is one of its options.
	KindMCQ Kind = "MCQ"

	// KindShort is a short free-text question graded by exact match.
	KindShort Kind = "SHORT"
)

// Mode is the intended way a set is studied.
type Mode string

const (
	ModePractice  Mode = "practice"
	ModeFlashcard Mode = "flashcard"
	ModeExam      Mode = "exam"
)

// Question is a single immutable question inside a Model.
type Question struct {
	ID   string
	Text string
	Kind Kind

	// Options is populated only for KindMCQ, in display order.
	Options []string

	// Answer is the exact correct answer string.
	Answer string

	// Difficulty is an optional free-form label (EASY, MEDIUM, HARD).
	Difficulty string
}

// QuestionRecord is the wire form of a question as received from storage or
// a question-set file.
type QuestionRecord struct {
	ID   string `json:"id"`
	Text string `json:"question_text"`
	Kind Kind   `json:"question_type"`

	// Options is either a decoded list or a JSON-encoded string.
	// See DecodeOptions.
	Options any `json:"options,omitempty"`

	Answer     string `json:"correct_answer"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Record is the wire form of a question set.
type Record struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	CreatedAt time.Time        `json:"created_at"`
	Mode      Mode             `json:"mode"`
	TimeLimit *int             `json:"time_limit,omitempty"` // minutes, exam only
	Questions []QuestionRecord `json:"questions"`
}

// ExportRow is one question prepared for an export renderer.
type ExportRow struct {
	Number   int      `json:"number"`
	Question string   `json:"question"`
	Kind     Kind     `json:"question_type"`
	Options  []string `json:"options,omitempty"`

	// Answer is empty unless answers were requested.
	Answer string `json:"answer,omitempty"`
}
