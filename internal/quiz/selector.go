package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/question"
)

// ErrMissingCategory is returned when a quiz request carries no category.
var ErrMissingCategory = errors.New("quiz category is required")

var selections = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trivia_quiz_selections_total",
	Help: "Quiz question selections by outcome.",
}, []string{"outcome"})

type candidateRepository interface {
	ListCandidates(ctx context.Context, category *int32, exclude []int32) ([]db.Question, error)
}

// SelectorOptions tunes the selector. Pick returns an index in [0,n); it defaults to rand.IntN.
type SelectorOptions struct {
	Pick func(n int) int
}

// Selector picks the next unseen quiz question.
type Selector struct {
	repo   candidateRepository
	pick   func(n int) int
	logger zerolog.Logger
}

func NewSelector(repo candidateRepository, logger zerolog.Logger, opts SelectorOptions) *Selector {
	pick := opts.Pick
	if pick == nil {
		pick = rand.IntN
	}
	return &Selector{
		repo:   repo,
		pick:   pick,
		logger: logger.With().Str("component", "quiz").Logger(),
	}
}

// Next returns a random question outside the request's history, or nil when the
// candidates are exhausted.
func (s *Selector) Next(ctx context.Context, req Request) (*question.Question, error) {
	if req.QuizCategory == nil {
		selections.WithLabelValues("rejected").Inc()
		return nil, ErrMissingCategory
	}

	var category *int32
	if !req.QuizCategory.Any() {
		id := int32(req.QuizCategory.ID)
		category = &id
	}

	exclude := make([]int32, 0, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		exclude = append(exclude, int32(id))
	}

	candidates, err := s.repo.ListCandidates(ctx, category, exclude)
	if err != nil {
		return nil, fmt.Errorf("list quiz candidates: %w", err)
	}
	if len(candidates) == 0 {
		selections.WithLabelValues("exhausted").Inc()
		s.logger.Debug().Int("previous", len(exclude)).Msg("quiz exhausted")
		return nil, nil
	}

	selections.WithLabelValues("question").Inc()
	picked := question.FromRow(candidates[s.pick(len(candidates))])
	return &picked, nil
}
