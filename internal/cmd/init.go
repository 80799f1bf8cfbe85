package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ghm/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ghm configuration",
	Long:  "Create a default configuration file for ghm",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)

	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		p.Warn("Configuration file already exists at: %s", path)
		fmt.Fprint(cmd.OutOrStdout(), "Do you want to overwrite it? (y/N): ")
		var response string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &response) // Ignore error for user input
		if !strings.EqualFold(response, "y") {
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration initialization cancelled.")
			return nil
		}
	}

	// Create default configuration
	defaultConfig := &config.Config{
		GitHub: config.GitHubConfig{
			Owner: "your-org",
		},
	}

	save := defaultConfig.SaveConfig
	if configPath != "" {
		save = func() error { return defaultConfig.SaveConfigToPath(configPath) }
	}
	if err := save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	p.Success("Configuration file created at: %s", path)
	p.Muted("Edit github.owner to set the default target. Leave github.token empty to use GITHUB_TOKEN or the gh CLI.")

	return nil
}
