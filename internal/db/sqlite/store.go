// Package sqlite is the database/sql store used for local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sqlitedriver "modernc.org/sqlite"

	"github.com/gokatarajesh/trivia-api/internal/db"
)

// DefaultDSN keeps a file next to the binary with a busy timeout for concurrent readers.
const DefaultDSN = "file:trivia.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"

// SQLite's LIKE only folds ASCII, so searches compare through unicode_lower.
func init() {
	sqlitedriver.MustRegisterDeterministicScalarFunction("unicode_lower", 1,
		func(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case string:
				return strings.ToLower(v), nil
			case []byte:
				return strings.ToLower(string(v)), nil
			default:
				return v, nil
			}
		})
}

// Store implements db.Store on SQLite.
type Store struct {
	db *sql.DB
}

var _ db.Store = (*Store)(nil)

// Open opens dsn with the modernc driver and verifies connectivity.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	// SQLite has a single writer; one connection also keeps in-memory databases alive.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return conn, nil
}

func New(conn *sql.DB) *Store {
	return &Store{db: conn}
}

func (s *Store) ListCategories(ctx context.Context) ([]db.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, type FROM categories ORDER BY type, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []db.Category
	for rows.Next() {
		var c db.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) InsertCategory(ctx context.Context, categoryType string) (db.Category, error) {
	var c db.Category
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO categories (type) VALUES (?) RETURNING id, type`, categoryType,
	).Scan(&c.ID, &c.Type)
	return c, err
}

func (s *Store) ListQuestions(ctx context.Context, filter db.QuestionFilter) ([]db.Question, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != nil {
		where = append(where, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Pattern != nil {
		where = append(where, `unicode_lower(question) LIKE ? ESCAPE '\'`)
		args = append(args, strings.ToLower(*filter.Pattern))
	}
	if len(filter.Exclude) > 0 {
		// one JSON array parameter stays under SQLITE_MAX_VARIABLE_NUMBER however long the history is
		excluded, err := json.Marshal(filter.Exclude)
		if err != nil {
			return nil, fmt.Errorf("encode excluded ids: %w", err)
		}
		where = append(where, "id NOT IN (SELECT value FROM json_each(?))")
		args = append(args, string(excluded))
	}

	query := `SELECT id, question, answer, difficulty, category FROM questions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []db.Question
	for rows.Next() {
		var q db.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Difficulty, &q.Category); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) InsertQuestion(ctx context.Context, arg db.InsertQuestionParams) (db.Question, error) {
	var q db.Question
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO questions (question, answer, difficulty, category)
		VALUES (?, ?, ?, ?)
		RETURNING id, question, answer, difficulty, category`,
		nullable(arg.Question), nullable(arg.Answer), nullable(arg.Difficulty), nullable(arg.Category),
	).Scan(&q.ID, &q.Question, &q.Answer, &q.Difficulty, &q.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Question{}, db.ErrNoRows
	}
	return q, err
}

func (s *Store) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// nullable turns a nil pointer into an untyped nil so the driver binds NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
