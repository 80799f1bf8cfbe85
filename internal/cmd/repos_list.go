package cmd

import (
	"github.com/spf13/cobra"

	"ghm/internal/ui"
)

var (
	listFilters filterFlags
	listVerbose bool
)

var reposListCmd = &cobra.Command{
	Use:   "list [target]",
	Short: "Summarize merge settings across repositories",
	Long: `List repositories of an organization, a user, or a single repository and
summarize their merge settings.

The summary counts how many repositories use the PR_TITLE + PR_BODY squash
convention and PR_TITLE + PR_TITLE merge commits, and lists the repositories
that deviate. Use --verbose for the full table.

Examples:
  ghm repos list my-org
  ghm repos list my-org --include-archived --verbose
  ghm repos list octocat/hello-world`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReposList,
}

func init() {
	listFilters.bind(reposListCmd)
	reposListCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "Show full table instead of summary")
}

func runReposList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p := newPrinter(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target, err := targetArg(args, cfg)
	if err != nil {
		return err
	}

	client, _, err := connect(ctx, p, cfg, listFilters.token)
	if err != nil {
		return err
	}

	result, err := fetchRepositories(ctx, p, client, target, listFilters.fetchOptions(cmd, cfg))
	if err != nil {
		return err
	}

	if listVerbose {
		p.PrintTable(result.Repositories)
		return nil
	}

	p.PrintSummary(ui.Summarize(result.Repositories))
	return nil
}
