package question

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/pkg/http/request"
)

type stubQuestionRepo struct {
	rows      []db.Question
	err       error
	inserted  db.InsertQuestionParams
	deleteErr error
	deleted   []int32
	term      string
	category  int32
}

func (s *stubQuestionRepo) ListAll(context.Context) ([]db.Question, error) {
	return s.rows, s.err
}

func (s *stubQuestionRepo) ListByCategory(_ context.Context, category int32) ([]db.Question, error) {
	s.category = category
	return s.rows, s.err
}

func (s *stubQuestionRepo) Search(_ context.Context, term string) ([]db.Question, error) {
	s.term = term
	return s.rows, s.err
}

func (s *stubQuestionRepo) Insert(_ context.Context, params db.InsertQuestionParams) (db.Question, error) {
	s.inserted = params
	if s.err != nil {
		return db.Question{}, s.err
	}
	row := db.Question{ID: 21}
	if params.Question != nil {
		row.Question = *params.Question
	}
	if params.Answer != nil {
		row.Answer = *params.Answer
	}
	if params.Difficulty != nil {
		row.Difficulty = *params.Difficulty
	}
	if params.Category != nil {
		row.Category = *params.Category
	}
	return row, nil
}

func (s *stubQuestionRepo) Delete(_ context.Context, id int32) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func rowsUpTo(n int) []db.Question {
	rows := make([]db.Question, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, db.Question{
			ID:         int32(i),
			Question:   fmt.Sprintf("question %d", i),
			Answer:     fmt.Sprintf("answer %d", i),
			Difficulty: 1,
			Category:   1,
		})
	}
	return rows
}

func ids(qs []Question) []int {
	out := make([]int, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func TestListPaginatesByTen(t *testing.T) {
	svc := NewService(&stubQuestionRepo{rows: rowsUpTo(20)}, zerolog.Nop())

	first, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(first.Questions))
	assert.Equal(t, 20, first.Total)

	second, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, ids(second.Questions))
	assert.Equal(t, 20, second.Total)

	_, err = svc.List(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestListEmptyStore(t *testing.T) {
	svc := NewService(&stubQuestionRepo{}, zerolog.Nop())

	_, err := svc.List(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestListWrapsStoreError(t *testing.T) {
	svc := NewService(&stubQuestionRepo{err: errors.New("db down")}, zerolog.Nop())

	_, err := svc.List(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResults)
}

func TestListByCategoryPassesID(t *testing.T) {
	repo := &stubQuestionRepo{rows: rowsUpTo(4)}
	svc := NewService(repo, zerolog.Nop())

	page, err := svc.ListByCategory(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(3), repo.category)
	assert.Equal(t, 4, page.Total)
}

func TestSearchTotalsAllMatches(t *testing.T) {
	repo := &stubQuestionRepo{rows: rowsUpTo(12)}
	svc := NewService(repo, zerolog.Nop())

	page, err := svc.Search(context.Background(), "who", 2)
	require.NoError(t, err)
	assert.Equal(t, "who", repo.term)
	assert.Equal(t, []int{11, 12}, ids(page.Questions))
	assert.Equal(t, 12, page.Total)
}

func TestCreateConvertsFields(t *testing.T) {
	repo := &stubQuestionRepo{}
	svc := NewService(repo, zerolog.Nop())

	text, answer := "Which planet is red?", "Mars"
	difficulty, category := request.Int(1), request.Int(1)
	q, err := svc.Create(context.Background(), CreateRequest{
		Question:   &text,
		Answer:     &answer,
		Difficulty: &difficulty,
		Category:   &category,
	})
	require.NoError(t, err)
	assert.Equal(t, 21, q.ID)
	assert.Equal(t, "Mars", q.Answer)
	require.NotNil(t, repo.inserted.Category)
	assert.Equal(t, int32(1), *repo.inserted.Category)
}

func TestCreatePassesMissingFieldsThrough(t *testing.T) {
	repo := &stubQuestionRepo{err: errors.New("not null constraint")}
	svc := NewService(repo, zerolog.Nop())

	text := "incomplete"
	_, err := svc.Create(context.Background(), CreateRequest{Question: &text})
	require.Error(t, err)
	assert.Nil(t, repo.inserted.Answer)
	assert.Nil(t, repo.inserted.Difficulty)
	assert.Nil(t, repo.inserted.Category)
}

func TestDeleteOutcomes(t *testing.T) {
	repo := &stubQuestionRepo{}
	svc := NewService(repo, zerolog.Nop())
	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, []int32{5}, repo.deleted)

	missing := NewService(&stubQuestionRepo{deleteErr: repository.ErrNotFound}, zerolog.Nop())
	assert.ErrorIs(t, missing.Delete(context.Background(), 1000), ErrQuestionNotFound)

	failing := NewService(&stubQuestionRepo{deleteErr: errors.New("locked")}, zerolog.Nop())
	err := failing.Delete(context.Background(), 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrQuestionNotFound)
}

func TestOutOfRangeIDsNeverReachTheStore(t *testing.T) {
	repo := &stubQuestionRepo{rows: rowsUpTo(3)}
	svc := NewService(repo, zerolog.Nop())

	assert.ErrorIs(t, svc.Delete(context.Background(), 1<<32+1), ErrQuestionNotFound)
	assert.Empty(t, repo.deleted)

	_, err := svc.ListByCategory(context.Background(), 1<<32+1, 1)
	assert.ErrorIs(t, err, ErrNoResults)
	assert.Zero(t, repo.category)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("2147483647")
	require.NoError(t, err)
	assert.Equal(t, 2147483647, id)

	for _, raw := range []string{"2147483648", "4294967297", "-2147483649", "abc", ""} {
		_, err := ParseID(raw)
		assert.Error(t, err, raw)
	}
}
