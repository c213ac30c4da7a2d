// Package cli implements the trivia-migrator command line.
package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/storage"
)

// RootOptions holds global flags and the resources opened for a command run.
type RootOptions struct {
	EnvFile string

	cfg    *config.App
	db     *storage.DB
	logger zerolog.Logger
}

// NewRootCommand creates the root command for the migrator.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "trivia-migrator",
		Short: "Manage the trivia database",
		Long:  "Apply schema migrations, load the seed dataset and import questions from public trivia APIs.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "configs/.env", "dotenv file loaded outside production")

	cmd.AddCommand(NewUpCommand(opts))
	cmd.AddCommand(NewDownCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

func (o *RootOptions) open(cmd *cobra.Command) error {
	if o.EnvFile != "" && os.Getenv("APP_ENV") != "production" {
		// a missing file is fine; the environment may already be populated
		_ = godotenv.Load(o.EnvFile)
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	// migrations are driven explicitly by the subcommands
	cfg.Store.AutoMigrate = false

	o.cfg = cfg
	o.logger = logging.New(cfg.Name+"-migrator", cfg.Env, cfg.LogLevel).Output(cmd.ErrOrStderr())

	db, err := storage.Open(cmd.Context(), cfg, o.logger)
	if err != nil {
		return err
	}
	o.db = db
	return nil
}

func (o *RootOptions) close() error {
	if o.db == nil {
		return nil
	}
	err := o.db.Close()
	o.db = nil
	return err
}
