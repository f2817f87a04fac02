// Package cli wires the joke-api command line: serving by default and
// running migrations on demand.
package cli

import (
	"github.com/deppfellow/joke-api/internal/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
}

// NewRootCommand creates the root command. Running it without a subcommand
// starts the HTTP server.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "joke-api",
		Short:         "Serve jokes over HTTP",
		Long:          "joke-api serves random jokes, lists them and accepts new ones, with a small frontend at /.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to a YAML config file (env vars still override it)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	var loadOpts []config.Option
	if o.ConfigFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(o.ConfigFile))
	}
	return config.LoadConfig(loadOpts...)
}
