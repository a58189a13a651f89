package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/studykit/studykit/internal/questionset"
)

// questionSetRepo implements QuestionSetRepo with ent's SQL builders.
type questionSetRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *questionSetRepo) Save(ctx context.Context, owner string, set *questionset.Model) error {
	rec := set.Record()
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save question set: %w", err)
	}
	defer tx.Rollback()

	exists, err := rowExists(ctx, tx, tableQuestionSets, rec.ID)
	if err != nil {
		return fmt.Errorf("save question set %s: %w", rec.ID, err)
	}
	if exists {
		return fmt.Errorf("save question set %s: %w", rec.ID, ErrExists)
	}

	var limit any
	if rec.TimeLimit != nil {
		limit = *rec.TimeLimit
	}
	query, args := builder().Insert(tableQuestionSets).
		Columns(colID, colOwner, colTitle, colMode, colTimeLimit, colCreatedAt).
		Values(rec.ID, owner, rec.Title, string(rec.Mode), limit, createdAt.UTC()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert question set %s: %w", rec.ID, err)
	}

	if len(rec.Questions) > 0 {
		ins := builder().Insert(tableQuestions).
			Columns(colQuestionSetID, colPosition, colQuestionID, colQuestionText,
				colQuestionType, colOptions, colCorrectAnswer, colDifficulty)
		for i, q := range rec.Questions {
			opts, err := questionset.DecodeOptions(q.Options)
			if err != nil {
				return fmt.Errorf("save question %s: %w", q.ID, err)
			}
			encoded, err := questionset.EncodeOptions(opts)
			if err != nil {
				return fmt.Errorf("save question %s: %w", q.ID, err)
			}
			ins.Values(rec.ID, i, q.ID, q.Text, string(q.Kind),
				nullString(encoded), q.Answer, nullString(q.Difficulty))
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert questions for %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit question set %s: %w", rec.ID, err)
	}
	r.log.Info("question set saved",
		zap.String("set_id", rec.ID),
		zap.String("owner", owner),
		zap.Int("questions", len(rec.Questions)),
	)
	return nil
}

func (r *questionSetRepo) Get(ctx context.Context, owner, id string) (*questionset.Model, error) {
	query, args := builder().
		Select(colTitle, colMode, colTimeLimit, colCreatedAt).
		From(builder().Table(tableQuestionSets)).
		Where(entsql.And(entsql.EQ(colID, id), entsql.EQ(colOwner, owner))).
		Query()

	rec := questionset.Record{ID: id}
	var (
		mode  string
		limit sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&rec.Title, &mode, &limit, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("question set %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query question set %s: %w", id, err)
	}
	rec.Mode = questionset.Mode(mode)
	if limit.Valid {
		n := int(limit.Int64)
		rec.TimeLimit = &n
	}

	rec.Questions, err = r.questions(ctx, id)
	if err != nil {
		return nil, err
	}

	m, err := questionset.New(rec)
	if err != nil {
		r.log.Warn("stored question set is malformed", zap.String("set_id", id), zap.Error(err))
		return nil, fmt.Errorf("load question set %s: %w", id, err)
	}
	return m, nil
}

func (r *questionSetRepo) questions(ctx context.Context, setID string) ([]questionset.QuestionRecord, error) {
	query, args := builder().
		Select(colQuestionID, colQuestionText, colQuestionType, colOptions, colCorrectAnswer, colDifficulty).
		From(builder().Table(tableQuestions)).
		Where(entsql.EQ(colQuestionSetID, setID)).
		OrderBy(colPosition).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions for %s: %w", setID, err)
	}
	defer rows.Close()

	var out []questionset.QuestionRecord
	for rows.Next() {
		var (
			q          questionset.QuestionRecord
			kind       string
			options    sql.NullString
			difficulty sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.Text, &kind, &options, &q.Answer, &difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Kind = questionset.Kind(kind)
		if options.Valid {
			q.Options = options.String
		}
		q.Difficulty = difficulty.String
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions for %s: %w", setID, err)
	}
	return out, nil
}

func (r *questionSetRepo) List(ctx context.Context, owner string, opts ListOpts) ([]SetSummary, error) {
	s := builder().Table(tableQuestionSets).As("s")
	q := builder().Table(tableQuestions).As("q")
	sel := builder().
		Select(s.C(colID), s.C(colTitle), s.C(colMode), s.C(colTimeLimit), s.C(colCreatedAt),
			entsql.Count(q.C(colPosition))).
		From(s).
		LeftJoin(q).On(s.C(colID), q.C(colQuestionSetID)).
		Where(entsql.EQ(s.C(colOwner), owner)).
		GroupBy(s.C(colID)).
		OrderBy(entsql.Desc(s.C(colCreatedAt)), entsql.Desc(s.C(colID)))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list question sets: %w", err)
	}
	defer rows.Close()

	var out []SetSummary
	for rows.Next() {
		var (
			sum   SetSummary
			mode  string
			limit sql.NullInt64
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &mode, &limit, &sum.CreatedAt, &sum.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan question set: %w", err)
		}
		sum.Mode = questionset.Mode(mode)
		sum.TimeLimit = int(limit.Int64)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question sets: %w", err)
	}
	return out, nil
}

func rowExists(ctx context.Context, tx *sql.Tx, table, id string) (bool, error) {
	query, args := builder().
		Select(colID).
		From(builder().Table(table)).
		Where(entsql.EQ(colID, id)).
		Limit(1).
		Query()
	var got string
	err := tx.QueryRowContext(ctx, query, args...).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
