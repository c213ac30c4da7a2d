// Package importer pulls questions from public trivia APIs into the store.
package importer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db"
)

// Question is a remote question normalised for insertion.
type Question struct {
	Question   string
	Answer     string
	Category   string
	Difficulty int32
}

// Source fetches a batch of remote questions.
type Source interface {
	Name() string
	Fetch(ctx context.Context, amount int) ([]Question, error)
}

// Result counts what Run did with a fetched batch.
type Result struct {
	Imported int
	Skipped  int
}

type store interface {
	ListCategories(ctx context.Context) ([]db.Category, error)
	InsertQuestion(ctx context.Context, arg db.InsertQuestionParams) (db.Question, error)
}

var difficulties = map[string]int32{"easy": 1, "medium": 2, "hard": 3}

func normalize(text, answer, category, difficulty string) Question {
	d, ok := difficulties[strings.ToLower(difficulty)]
	if !ok {
		d = 2
	}
	return Question{
		Question:   strings.TrimSpace(html.UnescapeString(text)),
		Answer:     strings.TrimSpace(html.UnescapeString(answer)),
		Category:   strings.TrimSpace(html.UnescapeString(category)),
		Difficulty: d,
	}
}

// Run fetches amount questions from src and inserts those whose category
// matches an existing one. Unmatched or empty questions are skipped.
func Run(ctx context.Context, s store, src Source, amount int, logger zerolog.Logger) (Result, error) {
	logger = logger.With().Str("component", "importer").Str("source", src.Name()).Logger()

	categories, err := s.ListCategories(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return Result{}, fmt.Errorf("no categories to import into")
	}

	fetched, err := src.Fetch(ctx, amount)
	if err != nil {
		return Result{}, fmt.Errorf("fetch from %s: %w", src.Name(), err)
	}

	var res Result
	for _, q := range fetched {
		categoryID, ok := MatchCategory(categories, q.Category)
		if !ok || q.Question == "" || q.Answer == "" {
			logger.Debug().Str("category", q.Category).Msg("skipping question")
			res.Skipped++
			continue
		}
		text, answer, difficulty := q.Question, q.Answer, q.Difficulty
		if _, err := s.InsertQuestion(ctx, db.InsertQuestionParams{
			Question:   &text,
			Answer:     &answer,
			Difficulty: &difficulty,
			Category:   &categoryID,
		}); err != nil {
			return res, fmt.Errorf("insert question: %w", err)
		}
		res.Imported++
	}

	logger.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("import finished")
	return res, nil
}

// MatchCategory resolves a remote category label such as "Science: Computers" or
// "Entertainment: Film" to a local category, ignoring case. It tries the whole
// label, the part before ':' and the first word, in that order.
func MatchCategory(categories []db.Category, label string) (int32, bool) {
	byType := make(map[string]int32, len(categories))
	for _, c := range categories {
		byType[strings.ToLower(c.Type)] = c.ID
	}

	label = strings.ToLower(strings.TrimSpace(label))
	candidates := []string{label}
	if head, _, found := strings.Cut(label, ":"); found {
		candidates = append(candidates, strings.TrimSpace(head))
	}
	if fields := strings.Fields(label); len(fields) > 0 {
		candidates = append(candidates, strings.TrimRight(fields[0], ":"))
	}

	for _, c := range candidates {
		if id, ok := byType[c]; ok {
			return id, true
		}
	}
	return 0, false
}
