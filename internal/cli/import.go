package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/importer"
)

// ValidSources lists the supported import sources.
var ValidSources = []string{"opentdb", "triviaapi"}

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	Source string
	Amount int
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import questions from a public trivia API",
		Long: `Fetch questions from Open Trivia DB or The Trivia API and insert those
whose category matches an existing one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Amount < 1 || opts.Amount > 50 {
				return fmt.Errorf("amount must be between 1 and 50, got %d", opts.Amount)
			}
			src, err := newSource(opts.Source, rootOpts.cfg.Import)
			if err != nil {
				return err
			}
			res, err := importer.Run(cmd.Context(), rootOpts.db.Store, src, opts.Amount, rootOpts.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d questions, skipped %d\n", res.Imported, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Source, "source", "s", "opentdb", "question source (opentdb|triviaapi)")
	cmd.Flags().IntVarP(&opts.Amount, "amount", "n", 10, "number of questions to fetch")

	return cmd
}

func newSource(name string, cfg config.Import) (importer.Source, error) {
	client := &http.Client{Timeout: cfg.RequestTimeout}
	switch name {
	case "opentdb":
		return importer.NewOpenTDBClient(cfg.OpenTDBURL, client), nil
	case "triviaapi":
		return importer.NewTriviaAPIClient(cfg.TriviaAPIURL, cfg.TriviaAPIKey, client), nil
	default:
		return nil, fmt.Errorf("invalid source %q: must be one of %v", name, ValidSources)
	}
}
