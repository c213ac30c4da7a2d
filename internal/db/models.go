package db

import (
	"context"
	"errors"
)

// ErrNoRows is returned by stores when a single-row lookup or mutation matched nothing.
var ErrNoRows = errors.New("db: no rows in result set")

// Driver names the backing SQL engine.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Category mirrors a row of the categories table.
type Category struct {
	ID   int32
	Type string
}

// Question mirrors a row of the questions table. Column order matches the
// SELECT lists used by both stores.
type Question struct {
	ID         int32
	Question   string
	Answer     string
	Difficulty int32
	Category   int32
}

// QuestionFilter narrows ListQuestions. Nil fields are not applied.
type QuestionFilter struct {
	Category *int32
	// Pattern is a LIKE pattern already escaped with backslash; matched case-insensitively.
	Pattern *string
	Exclude []int32
}

// InsertQuestionParams carries nullable columns; nil values reach the store as NULL.
type InsertQuestionParams struct {
	Question   *string
	Answer     *string
	Difficulty *int32
	Category   *int32
}

// Store is implemented by the postgres and sqlite packages.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	InsertCategory(ctx context.Context, categoryType string) (Category, error)
	ListQuestions(ctx context.Context, filter QuestionFilter) ([]Question, error)
	InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
	Ping(ctx context.Context) error
}
