package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/db"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Queries runs the trivia statements against Postgres.
type Queries struct {
	db DBTX
}

var _ db.Store = (*Queries)(nil)

func New(conn DBTX) *Queries {
	return &Queries{db: conn}
}

const listCategories = `SELECT id, type FROM categories ORDER BY type, id`

func (q *Queries) ListCategories(ctx context.Context) ([]db.Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[db.Category])
}

const insertCategory = `INSERT INTO categories (type) VALUES ($1) RETURNING id, type`

func (q *Queries) InsertCategory(ctx context.Context, categoryType string) (db.Category, error) {
	var c db.Category
	err := q.db.QueryRow(ctx, insertCategory, categoryType).Scan(&c.ID, &c.Type)
	return c, err
}

const listQuestions = `SELECT id, question, answer, difficulty, category
FROM questions
WHERE ($1::int4 IS NULL OR category = $1::int4)
  AND ($2::text IS NULL OR question ILIKE $2::text ESCAPE '\')
  AND NOT (id = ANY($3::int4[]))
ORDER BY id`

func (q *Queries) ListQuestions(ctx context.Context, filter db.QuestionFilter) ([]db.Question, error) {
	exclude := filter.Exclude
	if exclude == nil {
		// a NULL array would make NOT (id = ANY(NULL)) filter out every row
		exclude = []int32{}
	}
	rows, err := q.db.Query(ctx, listQuestions, filter.Category, filter.Pattern, exclude)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[db.Question])
}

const insertQuestion = `INSERT INTO questions (question, answer, difficulty, category)
VALUES ($1, $2, $3, $4)
RETURNING id, question, answer, difficulty, category`

func (q *Queries) InsertQuestion(ctx context.Context, arg db.InsertQuestionParams) (db.Question, error) {
	var i db.Question
	err := q.db.QueryRow(ctx, insertQuestion, arg.Question, arg.Answer, arg.Difficulty, arg.Category).Scan(
		&i.ID,
		&i.Question,
		&i.Answer,
		&i.Difficulty,
		&i.Category,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Question{}, db.ErrNoRows
	}
	return i, err
}

const deleteQuestion = `DELETE FROM questions WHERE id = $1`

func (q *Queries) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Ping succeeds when the underlying connection can reach the server.
func (q *Queries) Ping(ctx context.Context) error {
	if p, ok := q.db.(pinger); ok {
		return p.Ping(ctx)
	}
	var one int
	if err := q.db.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}
