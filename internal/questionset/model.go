package questionset

import (
	"iter"
	"slices"
	"time"
)

// Model is the validated, read-only form of a question set that sessions run
// against. The zero value is not usable; construct with New.
type Model struct {
	id        string
	title     string
	createdAt time.Time
	mode      Mode
	timeLimit int // minutes, 0 when untimed

	questions []Question
	index     map[string]int
}

// New validates rec and builds a Model. All validation happens here so that
// a corrupt set is rejected before any session starts. Every failure wraps
// ErrMalformedQuestionSet.
func New(rec Record) (*Model, error) {
	mode := rec.Mode
	if mode == "" {
		mode = ModePractice
	}
	switch mode {
	case ModePractice, ModeFlashcard, ModeExam:
	default:
		return nil, malformed("", "unknown mode "+string(rec.Mode), nil)
	}

	var limit int
	if rec.TimeLimit != nil {
		if mode != ModeExam {
			return nil, malformed("", "time limit on a "+string(mode)+" set", nil)
		}
		if *rec.TimeLimit <= 0 {
			return nil, malformed("", "time limit must be a positive number of minutes", nil)
		}
		limit = *rec.TimeLimit
	}

	m := &Model{
		id:        rec.ID,
		title:     rec.Title,
		createdAt: rec.CreatedAt,
		mode:      mode,
		timeLimit: limit,
		questions: make([]Question, 0, len(rec.Questions)),
		index:     make(map[string]int, len(rec.Questions)),
	}

	for _, qr := range rec.Questions {
		q, err := buildQuestion(qr)
		if err != nil {
			return nil, err
		}
		if _, dup := m.index[q.ID]; dup {
			return nil, malformed(q.ID, "duplicate question id", nil)
		}
		m.index[q.ID] = len(m.questions)
		m.questions = append(m.questions, q)
	}

	return m, nil
}

func buildQuestion(qr QuestionRecord) (Question, error) {
	if qr.ID == "" {
		return Question{}, malformed("", "question without id", nil)
	}
	if qr.Answer == "" {
		return Question{}, malformed(qr.ID, "missing correct answer", nil)
	}

	opts, err := DecodeOptions(qr.Options)
	if err != nil {
		return Question{}, malformed(qr.ID, "options are not a list of strings", err)
	}

	q := Question{
		ID:         qr.ID,
		Text:       qr.Text,
		Kind:       qr.Kind,
		Answer:     qr.Answer,
		Difficulty: qr.Difficulty,
	}

	switch qr.Kind {
	case KindMCQ:
		if !slices.Contains(opts, qr.Answer) {
			return Question{}, malformed(qr.ID, "correct answer is not one of the options", nil)
		}
		q.Options = opts
	case KindShort:
		if len(opts) > 0 {
			return Question{}, malformed(qr.ID, "short answer question carries options", nil)
		}
	default:
		return Question{}, malformed(qr.ID, "unknown question type "+string(qr.Kind), nil)
	}

	return q, nil
}

func (m *Model) ID() string           { return m.id }
func (m *Model) Title() string        { return m.title }
func (m *Model) CreatedAt() time.Time { return m.createdAt }
func (m *Model) Mode() Mode           { return m.mode }

// TimeLimit returns the exam limit in minutes. ok is false for untimed sets.
func (m *Model) TimeLimit() (minutes int, ok bool) {
	return m.timeLimit, m.timeLimit > 0
}

// Len returns the number of questions.
func (m *Model) Len() int { return len(m.questions) }

// At returns the i-th question in set order. It panics if i is out of range.
func (m *Model) At(i int) Question {
	return cloneQuestion(m.questions[i])
}

// Lookup returns the question with the given id.
func (m *Model) Lookup(id string) (Question, bool) {
	i, ok := m.index[id]
	if !ok {
		return Question{}, false
	}
	return cloneQuestion(m.questions[i]), true
}

// Has reports whether id belongs to the set.
func (m *Model) Has(id string) bool {
	_, ok := m.index[id]
	return ok
}

// Position returns the 0-based position of id in set order.
func (m *Model) Position(id string) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// All iterates questions in set order. The sequence can be ranged over any
// number of times.
func (m *Model) All() iter.Seq2[int, Question] {
	return func(yield func(int, Question) bool) {
		for i, q := range m.questions {
			if !yield(i, cloneQuestion(q)) {
				return
			}
		}
	}
}

// Questions returns a copy of all questions in set order.
func (m *Model) Questions() []Question {
	out := make([]Question, len(m.questions))
	for i, q := range m.questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// ExportRows prepares the export tuples in set order. The correct answer is
// only filled in when includeAnswers is true.
func (m *Model) ExportRows(includeAnswers bool) []ExportRow {
	rows := make([]ExportRow, 0, len(m.questions))
	for i, q := range m.questions {
		row := ExportRow{
			Number:   i + 1,
			Question: q.Text,
			Kind:     q.Kind,
			Options:  slices.Clone(q.Options),
		}
		if includeAnswers {
			row.Answer = q.Answer
		}
		rows = append(rows, row)
	}
	return rows
}

// Record converts the model back to its wire form with options as a list.
func (m *Model) Record() Record {
	rec := Record{
		ID:        m.id,
		Title:     m.title,
		CreatedAt: m.createdAt,
		Mode:      m.mode,
		Questions: make([]QuestionRecord, 0, len(m.questions)),
	}
	if m.timeLimit > 0 {
		limit := m.timeLimit
		rec.TimeLimit = &limit
	}
	for _, q := range m.questions {
		qr := QuestionRecord{
			ID:         q.ID,
			Text:       q.Text,
			Kind:       q.Kind,
			Answer:     q.Answer,
			Difficulty: q.Difficulty,
		}
		if len(q.Options) > 0 {
			qr.Options = slices.Clone(q.Options)
		}
		rec.Questions = append(rec.Questions, qr)
	}
	return rec
}

func cloneQuestion(q Question) Question {
	q.Options = slices.Clone(q.Options)
	return q
}
