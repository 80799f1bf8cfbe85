package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"ghm/internal/logger"
	"ghm/internal/ui"
	"ghm/pkg/config"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "ghm",
	Short: "GitHub Management CLI - manage repository merge settings",
	Long: `ghm is a command-line tool for auditing and standardizing pull request merge
settings across every repository of a GitHub organization or user.

It reports which repositories deviate from the PR_TITLE + PR_BODY squash
convention and can bulk-update squash and merge commit title and message
formats, previewing every change before it is applied.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.Initialize(debug)
		cmd.SetContext(logger.With(cmd.Context(), "command", cmd.CommandPath()))
	},
}

// Execute runs the root command and exits non-zero on error
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.NewPrinter(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()).Error(err)
		os.Exit(1)
	}
}

// loadConfig reads --config when given, the default location otherwise
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfigFromPath(configPath)
	}
	return config.LoadConfig()
}

// newPrinter binds a printer to the command's output streams
func newPrinter(cmd *cobra.Command) *ui.Printer {
	return ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is ~/.ghm/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(initCmd)
}
