package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableQuestionSets = "question_sets"
	tableQuestions    = "questions"
	tableAttempts     = "attempts"

	colID             = "id"
	colOwner          = "owner"
	colTitle          = "title"
	colMode           = "mode"
	colTimeLimit      = "time_limit"
	colCreatedAt      = "created_at"
	colQuestionSetID  = "question_set_id"
	colPosition       = "position"
	colQuestionID     = "question_id"
	colQuestionText   = "question_text"
	colQuestionType   = "question_type"
	colOptions        = "options"
	colCorrectAnswer  = "correct_answer"
	colDifficulty     = "difficulty"
	colAnswers        = "answers"
	colScore          = "score"
	colTotalQuestions = "total_questions"
	colCompletedAt    = "completed_at"
)

const textSize = 2147483647

var (
	questionSetsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeString, Unique: true},
		{Name: colOwner, Type: field.TypeString, Default: ""},
		{Name: colTitle, Type: field.TypeString},
		{Name: colMode, Type: field.TypeString},
		{Name: colTimeLimit, Type: field.TypeInt, Nullable: true},
		{Name: colCreatedAt, Type: field.TypeTime},
	}
	questionSetsTable = &schema.Table{
		Name:       tableQuestionSets,
		Columns:    questionSetsColumns,
		PrimaryKey: []*schema.Column{questionSetsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "questionset_owner_created_at",
				Columns: []*schema.Column{questionSetsColumns[1], questionSetsColumns[5]},
			},
		},
	}

	// Options are kept as JSON text and decoded when a set is loaded.
	questionsColumns = []*schema.Column{
		{Name: colQuestionSetID, Type: field.TypeString},
		{Name: colPosition, Type: field.TypeInt},
		{Name: colQuestionID, Type: field.TypeString},
		{Name: colQuestionText, Type: field.TypeString, Size: textSize},
		{Name: colQuestionType, Type: field.TypeString},
		{Name: colOptions, Type: field.TypeString, Size: textSize, Nullable: true},
		{Name: colCorrectAnswer, Type: field.TypeString, Size: textSize},
		{Name: colDifficulty, Type: field.TypeString, Nullable: true},
	}
	questionsTable = &schema.Table{
		Name:       tableQuestions,
		Columns:    questionsColumns,
		PrimaryKey: []*schema.Column{questionsColumns[0], questionsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "questions_question_sets_questions",
				Columns:    []*schema.Column{questionsColumns[0]},
				RefColumns: []*schema.Column{questionSetsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "question_set_question_id",
				Unique:  true,
				Columns: []*schema.Column{questionsColumns[0], questionsColumns[2]},
			},
		},
	}

	attemptsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeString, Unique: true},
		{Name: colOwner, Type: field.TypeString, Default: ""},
		{Name: colQuestionSetID, Type: field.TypeString},
		{Name: colAnswers, Type: field.TypeString, Size: textSize},
		{Name: colScore, Type: field.TypeInt},
		{Name: colTotalQuestions, Type: field.TypeInt},
		{Name: colCompletedAt, Type: field.TypeTime},
	}
	attemptsTable = &schema.Table{
		Name:       tableAttempts,
		Columns:    attemptsColumns,
		PrimaryKey: []*schema.Column{attemptsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "attempts_question_sets_attempts",
				Columns:    []*schema.Column{attemptsColumns[2]},
				RefColumns: []*schema.Column{questionSetsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "attempt_owner_completed_at",
				Columns: []*schema.Column{attemptsColumns[1], attemptsColumns[6]},
			},
			{
				Name:    "attempt_question_set_id",
				Columns: []*schema.Column{attemptsColumns[2]},
			},
		},
	}

	tables = []*schema.Table{questionSetsTable, questionsTable, attemptsTable}
)

func init() {
	questionsTable.ForeignKeys[0].RefTable = questionSetsTable
	attemptsTable.ForeignKeys[0].RefTable = questionSetsTable
}
