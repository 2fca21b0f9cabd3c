package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wahlandcase/attuned.relnotes/internal/config"
	"github.com/wahlandcase/attuned.relnotes/internal/ui"
)

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	configPath string
	verbose    bool
	noColor    bool

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "relnotes",
		Short: "Release-note helpers for CI",
		Long: "relnotes reformats GitHub release notes for Slack and checks that the\n" +
			"tickets they mention match the tracker's fix version.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(opts.logger)

			ui.ConfigureColor(opts.noColor)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: ./"+config.FileName+", then the user config dir)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newFormatCmd(opts),
		newCheckCmd(opts),
		newConfigCmd(opts),
	)

	return rootCmd
}

func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
