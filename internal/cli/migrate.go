package cli

import (
	"fmt"

	"github.com/deppfellow/joke-api/internal/database"
	"github.com/deppfellow/joke-api/internal/logger"
	"github.com/deppfellow/joke-api/internal/metrics"
	"github.com/deppfellow/joke-api/internal/repository"
	"github.com/deppfellow/joke-api/internal/server"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command. It applies the schema and,
// unless database.seed is false, seeds an empty table. It never starts the
// HTTP server.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "migrate",
		Short:         "Apply schema migrations and seed the joke table",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLogger(cfg.Observability)

			db, err := database.New(cfg, &log, nil)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			srv := &server.Server{
				Config:  cfg,
				Logger:  &log,
				DB:      db,
				Metrics: metrics.New(),
			}

			if err := repository.NewJokeRepository(srv).Initialize(cmd.Context()); err != nil {
				return err
			}

			log.Info().Str("driver", db.Driver).Msg("migrations applied")
			return nil
		},
	}
}
