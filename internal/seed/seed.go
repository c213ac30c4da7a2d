// Package seed loads a YAML dataset of categories and questions into a store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gokatarajesh/trivia-api/internal/db"
)

//go:embed trivia.yaml
var defaultDataset []byte

// Dataset is the on-disk seed format.
type Dataset struct {
	Categories []string   `yaml:"categories"`
	Questions  []Question `yaml:"questions"`
}

// Question references its category by label.
type Question struct {
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Difficulty int32  `yaml:"difficulty"`
	Category   string `yaml:"category"`
}

// Result summarises what Apply wrote.
type Result struct {
	Categories int
	Questions  int
	Skipped    bool
}

type store interface {
	ListCategories(ctx context.Context) ([]db.Category, error)
	InsertCategory(ctx context.Context, categoryType string) (db.Category, error)
	InsertQuestion(ctx context.Context, arg db.InsertQuestionParams) (db.Question, error)
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return Load(bytes.NewReader(defaultDataset))
}

// LoadFile reads a dataset from path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a dataset.
func Load(r io.Reader) (*Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (ds *Dataset) validate() error {
	known := make(map[string]bool, len(ds.Categories))
	for _, c := range ds.Categories {
		if c == "" {
			return fmt.Errorf("seed: empty category label")
		}
		if known[c] {
			return fmt.Errorf("seed: duplicate category %q", c)
		}
		known[c] = true
	}
	for i, q := range ds.Questions {
		if !known[q.Category] {
			return fmt.Errorf("seed: question %d references unknown category %q", i+1, q.Category)
		}
	}
	return nil
}

// Apply inserts categories then questions, in file order. A store that already
// holds categories is left untouched unless force is set.
func Apply(ctx context.Context, s store, ds *Dataset, force bool, logger zerolog.Logger) (Result, error) {
	existing, err := s.ListCategories(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 && !force {
		logger.Info().Int("categories", len(existing)).Msg("store already seeded, skipping")
		return Result{Skipped: true}, nil
	}

	ids := make(map[string]int32, len(existing)+len(ds.Categories))
	for _, c := range existing {
		ids[c.Type] = c.ID
	}

	var res Result
	for _, label := range ds.Categories {
		if _, ok := ids[label]; ok {
			continue
		}
		c, err := s.InsertCategory(ctx, label)
		if err != nil {
			return res, fmt.Errorf("insert category %q: %w", label, err)
		}
		ids[label] = c.ID
		res.Categories++
	}

	for _, q := range ds.Questions {
		category := ids[q.Category]
		text, answer, difficulty := q.Question, q.Answer, q.Difficulty
		if _, err := s.InsertQuestion(ctx, db.InsertQuestionParams{
			Question:   &text,
			Answer:     &answer,
			Difficulty: &difficulty,
			Category:   &category,
		}); err != nil {
			return res, fmt.Errorf("insert question %q: %w", q.Question, err)
		}
		res.Questions++
	}

	logger.Info().
		Int("categories", res.Categories).
		Int("questions", res.Questions).
		Msg("seed applied")
	return res, nil
}
