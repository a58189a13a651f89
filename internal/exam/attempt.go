package exam

import (
	"maps"
	"math"
	"time"

	"github.com/studykit/studykit/internal/questionset"
)

// Attempt is the frozen result of one scored session. It is created exactly
// once, at submission.
type Attempt struct {
	ID             string            `json:"id"`
	QuestionSetID  string            `json:"question_set_id"`
	Answers        map[string]string `json:"answers"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	CompletedAt    time.Time         `json:"completed_at"`
}

// Percent returns the score as a rounded percentage of total questions.
func (a Attempt) Percent() int {
	if a.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(a.Score) / float64(a.TotalQuestions) * 100))
}

func (a Attempt) clone() Attempt {
	a.Answers = maps.Clone(a.Answers)
	if a.Answers == nil {
		a.Answers = map[string]string{}
	}
	return a
}

// IsCorrect applies the grading rule: an answered question is correct when its
// answer equals the correct answer exactly. Unanswered questions are wrong.
func IsCorrect(q questionset.Question, answer string, answered bool) bool {
	return answered && answer == q.Answer
}

// Score counts exact matches between answers and the set's correct answers,
// walking the set in order. It is a pure function so reviews can recompute it.
func Score(set *questionset.Model, answers map[string]string) int {
	score := 0
	for _, q := range set.All() {
		a, ok := answers[q.ID]
		if IsCorrect(q, a, ok) {
			score++
		}
	}
	return score
}
