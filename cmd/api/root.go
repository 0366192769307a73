package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/story-bias/internal/config"
	"alfredoptarigan/story-bias/internal/logger"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "story-bias",
		Short: "Gender and stereotype bias reports for stories",
		Long: `story-bias accepts the URL of a story, hands it to an external analysis
service and renders the returned scores as a readable bias report.

Without a subcommand it starts the web server.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	addGlobalFlags(cmd)

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "path to a YAML config file (default $XDG_CONFIG_HOME/story-bias/config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads and validates configuration and builds the logger.
func bootstrap(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.IsProduction(), cfg.Log.Verbose)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}
