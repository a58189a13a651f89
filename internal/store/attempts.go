package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/studykit/studykit/internal/exam"
)

// attemptRepo implements AttemptRepo. Answers are stored as a JSON object.
type attemptRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func (r *attemptRepo) Save(ctx context.Context, owner string, a exam.Attempt) error {
	answers := a.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save attempt: %w", err)
	}
	defer tx.Rollback()

	exists, err := rowExists(ctx, tx, tableAttempts, a.ID)
	if err != nil {
		return fmt.Errorf("save attempt %s: %w", a.ID, err)
	}
	if exists {
		return fmt.Errorf("save attempt %s: %w", a.ID, ErrExists)
	}

	query, args := builder().Insert(tableAttempts).
		Columns(colID, colOwner, colQuestionSetID, colAnswers, colScore, colTotalQuestions, colCompletedAt).
		Values(a.ID, owner, a.QuestionSetID, string(raw), a.Score, a.TotalQuestions, a.CompletedAt.UTC()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert attempt %s: %w", a.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt %s: %w", a.ID, err)
	}

	r.log.Info("attempt saved",
		zap.String("attempt_id", a.ID),
		zap.String("set_id", a.QuestionSetID),
		zap.String("owner", owner),
		zap.Int("score", a.Score),
		zap.Int("total", a.TotalQuestions),
	)
	return nil
}

func (r *attemptRepo) Get(ctx context.Context, owner, id string) (exam.Attempt, error) {
	query, args := builder().
		Select(colQuestionSetID, colAnswers, colScore, colTotalQuestions, colCompletedAt).
		From(builder().Table(tableAttempts)).
		Where(entsql.And(entsql.EQ(colID, id), entsql.EQ(colOwner, owner))).
		Query()

	a := exam.Attempt{ID: id}
	var raw string
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&a.QuestionSetID, &raw, &a.Score, &a.TotalQuestions, &a.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return exam.Attempt{}, fmt.Errorf("attempt %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return exam.Attempt{}, fmt.Errorf("query attempt %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(raw), &a.Answers); err != nil {
		return exam.Attempt{}, fmt.Errorf("decode answers of attempt %s: %w", id, err)
	}
	if a.Answers == nil {
		a.Answers = map[string]string{}
	}
	return a, nil
}

func (r *attemptRepo) List(ctx context.Context, owner string, opts ListOpts) ([]AttemptSummary, error) {
	t := builder().Table(tableAttempts).As("a")
	s := builder().Table(tableQuestionSets).As("s")

	preds := []*entsql.Predicate{entsql.EQ(t.C(colOwner), owner)}
	if opts.QuestionSetID != "" {
		preds = append(preds, entsql.EQ(t.C(colQuestionSetID), opts.QuestionSetID))
	}

	sel := builder().
		Select(t.C(colID), t.C(colQuestionSetID), t.C(colAnswers), t.C(colScore),
			t.C(colTotalQuestions), t.C(colCompletedAt), s.C(colTitle)).
		From(t).
		LeftJoin(s).On(t.C(colQuestionSetID), s.C(colID)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc(t.C(colCompletedAt)), entsql.Desc(t.C(colID)))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptSummary
	for rows.Next() {
		var (
			sum   AttemptSummary
			raw   string
			title sql.NullString
		)
		if err := rows.Scan(&sum.ID, &sum.QuestionSetID, &raw, &sum.Score,
			&sum.TotalQuestions, &sum.CompletedAt, &title); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &sum.Answers); err != nil {
			return nil, fmt.Errorf("decode answers of attempt %s: %w", sum.ID, err)
		}
		sum.SetTitle = title.String
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}
