package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/testutil"
)

func ids(qs []db.Question) []int32 {
	out := make([]int32, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func TestListCategoriesOrderedByType(t *testing.T) {
	store := testutil.NewSeededStore(t)

	cats, err := store.ListCategories(context.Background())
	require.NoError(t, err)

	var labels []string
	for _, c := range cats {
		labels = append(labels, c.Type)
	}
	assert.Equal(t, []string{"Art", "Entertainment", "Geography", "History", "Science", "Sports"}, labels)
}

func TestListQuestionsFilters(t *testing.T) {
	store := testutil.NewSeededStore(t)
	ctx := context.Background()

	all, err := store.ListQuestions(ctx, db.QuestionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 20)
	assert.Equal(t, int32(1), all[0].ID)
	assert.Equal(t, int32(20), all[19].ID)

	geography := int32(3)
	geo, err := store.ListQuestions(ctx, db.QuestionFilter{Category: &geography})
	require.NoError(t, err)
	assert.Equal(t, []int32{8, 9, 10}, ids(geo))

	pattern := "%WHO%"
	who, err := store.ListQuestions(ctx, db.QuestionFilter{Pattern: &pattern})
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 16, 20}, ids(who))

	rest, err := store.ListQuestions(ctx, db.QuestionFilter{Category: &geography, Exclude: []int32{8, 10}})
	require.NoError(t, err)
	assert.Equal(t, []int32{9}, ids(rest))
}

func TestListQuestionsEscapedPatternMatchesLiterally(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	for _, text := range []string{"100% sure?", "1000 sure?"} {
		text := text
		answer, difficulty, category := "yes", int32(1), int32(1)
		_, err := store.InsertQuestion(ctx, db.InsertQuestionParams{
			Question: &text, Answer: &answer, Difficulty: &difficulty, Category: &category,
		})
		require.NoError(t, err)
	}

	pattern := `%100\%%`
	got, err := store.ListQuestions(ctx, db.QuestionFilter{Pattern: &pattern})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% sure?", got[0].Question)
}

func TestListQuestionsFoldsNonASCIICase(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	text, answer, difficulty, category := "Où est l'ÉCOLE?", "Ici", int32(1), int32(1)
	_, err := store.InsertQuestion(ctx, db.InsertQuestionParams{
		Question: &text, Answer: &answer, Difficulty: &difficulty, Category: &category,
	})
	require.NoError(t, err)

	for _, pattern := range []string{"%école%", "%ÉCOLE%", "%ÉcOlE%"} {
		pattern := pattern
		got, err := store.ListQuestions(ctx, db.QuestionFilter{Pattern: &pattern})
		require.NoError(t, err, pattern)
		assert.Len(t, got, 1, pattern)
	}
}

func TestListQuestionsLongExcludeList(t *testing.T) {
	store := testutil.NewSeededStore(t)

	// well past SQLite's bound-parameter limit
	exclude := make([]int32, 0, 40000)
	for id := int32(1); id <= 40000; id++ {
		if id != 9 {
			exclude = append(exclude, id)
		}
	}
	geography := int32(3)
	got, err := store.ListQuestions(context.Background(), db.QuestionFilter{Category: &geography, Exclude: exclude})
	require.NoError(t, err)
	assert.Equal(t, []int32{9}, ids(got))
}

func TestInsertQuestionNullColumnsFail(t *testing.T) {
	store := testutil.NewStore(t)
	text := "Half a question"

	_, err := store.InsertQuestion(context.Background(), db.InsertQuestionParams{Question: &text})
	assert.Error(t, err)
}

func TestInsertAndDeleteQuestion(t *testing.T) {
	store := testutil.NewSeededStore(t)
	ctx := context.Background()

	text, answer, difficulty, category := "What is H2O?", "Water", int32(1), int32(1)
	q, err := store.InsertQuestion(ctx, db.InsertQuestionParams{
		Question: &text, Answer: &answer, Difficulty: &difficulty, Category: &category,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(21), q.ID)
	assert.Equal(t, "Water", q.Answer)

	affected, err := store.DeleteQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = store.DeleteQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	require.NoError(t, store.Ping(ctx))
}
