package question

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

var (
	// ErrNoResults means the requested page holds no questions.
	ErrNoResults = errors.New("no questions on page")
	// ErrQuestionNotFound means a delete targeted an id that does not exist.
	ErrQuestionNotFound = errors.New("question not found")
)

var deletes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trivia_question_deletes_total",
	Help: "Question delete attempts by outcome.",
}, []string{"outcome"})

type questionRepository interface {
	ListAll(ctx context.Context) ([]db.Question, error)
	ListByCategory(ctx context.Context, category int32) ([]db.Question, error)
	Search(ctx context.Context, term string) ([]db.Question, error)
	Insert(ctx context.Context, params db.InsertQuestionParams) (db.Question, error)
	Delete(ctx context.Context, id int32) error
}

// Service implements listing, search and mutation of questions.
type Service struct {
	repo   questionRepository
	logger zerolog.Logger
}

func NewService(repo questionRepository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "question").Logger(),
	}
}

// List returns one page of all questions ordered by id.
func (s *Service) List(ctx context.Context, page int) (Page, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("list questions: %w", err)
	}
	return paginateRows(rows, page)
}

// ListByCategory returns one page of the questions in a category.
func (s *Service) ListByCategory(ctx context.Context, categoryID, page int) (Page, error) {
	id, ok := storeID(categoryID)
	if !ok {
		return Page{}, ErrNoResults
	}
	rows, err := s.repo.ListByCategory(ctx, id)
	if err != nil {
		return Page{}, fmt.Errorf("list questions of category %d: %w", categoryID, err)
	}
	return paginateRows(rows, page)
}

// Search returns one page of questions whose text contains term, ignoring case.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	rows, err := s.repo.Search(ctx, term)
	if err != nil {
		return Page{}, fmt.Errorf("search questions: %w", err)
	}
	return paginateRows(rows, page)
}

// Create inserts a question as given. Constraint violations surface as errors.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Question, error) {
	params := db.InsertQuestionParams{
		Question: req.Question,
		Answer:   req.Answer,
	}
	if req.Difficulty != nil {
		d := int32(*req.Difficulty)
		params.Difficulty = &d
	}
	if req.Category != nil {
		c := int32(*req.Category)
		params.Category = &c
	}

	row, err := s.repo.Insert(ctx, params)
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	s.logger.Info().Int32("question_id", row.ID).Int32("category", row.Category).Msg("question created")
	return FromRow(row), nil
}

// Delete removes a question. A missing id yields ErrQuestionNotFound.
func (s *Service) Delete(ctx context.Context, id int) error {
	storedID, ok := storeID(id)
	if !ok {
		deletes.WithLabelValues("not_found").Inc()
		return ErrQuestionNotFound
	}
	err := s.repo.Delete(ctx, storedID)
	switch {
	case err == nil:
		deletes.WithLabelValues("deleted").Inc()
		s.logger.Info().Int("question_id", id).Msg("question deleted")
		return nil
	case errors.Is(err, repository.ErrNotFound):
		deletes.WithLabelValues("not_found").Inc()
		return ErrQuestionNotFound
	default:
		deletes.WithLabelValues("failed").Inc()
		return fmt.Errorf("delete question %d: %w", id, err)
	}
}

// storeID narrows n to the 32-bit id column, reporting false when it cannot be stored.
func storeID(n int) (int32, bool) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

func paginateRows(rows []db.Question, page int) (Page, error) {
	formatted := make([]Question, 0, len(rows))
	for _, row := range rows {
		formatted = append(formatted, FromRow(row))
	}
	current := Paginate(formatted, page)
	if len(current) == 0 {
		return Page{}, ErrNoResults
	}
	return Page{Questions: current, Total: len(formatted)}, nil
}
