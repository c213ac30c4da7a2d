package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/db"
)

// ErrNotFound is returned when a mutation targeted a row that does not exist.
var ErrNotFound = errors.New("repository: not found")

type questionStore interface {
	ListQuestions(ctx context.Context, filter db.QuestionFilter) ([]db.Question, error)
	InsertQuestion(ctx context.Context, arg db.InsertQuestionParams) (db.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
}

// QuestionRepository wraps store queries for question access.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// ListAll returns every question ordered by id.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]db.Question, error) {
	return r.store.ListQuestions(ctx, db.QuestionFilter{})
}

// ListByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category int32) ([]db.Question, error) {
	return r.store.ListQuestions(ctx, db.QuestionFilter{Category: &category})
}

// Search matches term as a case-insensitive substring of the question text.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]db.Question, error) {
	pattern := "%" + EscapeLike(term) + "%"
	return r.store.ListQuestions(ctx, db.QuestionFilter{Pattern: &pattern})
}

// ListCandidates returns questions not in exclude, optionally limited to one category.
func (r *QuestionRepository) ListCandidates(ctx context.Context, category *int32, exclude []int32) ([]db.Question, error) {
	return r.store.ListQuestions(ctx, db.QuestionFilter{Category: category, Exclude: exclude})
}

// Insert stores a new question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params db.InsertQuestionParams) (db.Question, error) {
	return r.store.InsertQuestion(ctx, params)
}

// Delete removes a question, returning ErrNotFound when no row matched.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) error {
	affected, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so term matches literally under ESCAPE '\'.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
