package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/seed"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	File  string
	Force bool
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the seed dataset",
		Long: `Load categories and questions from a YAML dataset.

Without --file the embedded default dataset is used. A store that already
holds categories is skipped unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(opts.File)
			if err != nil {
				return err
			}
			res, err := seed.Apply(cmd.Context(), rootOpts.db.Store, ds, opts.Force, rootOpts.logger)
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "store already seeded; use --force to add missing rows")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories and %d questions\n", res.Categories, res.Questions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML dataset to load instead of the embedded one")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "seed even when categories already exist")

	return cmd
}

func loadDataset(path string) (*seed.Dataset, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.LoadFile(path)
}
