package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ghm/internal/auth"
	"ghm/internal/ui"
	"ghm/pkg/config"
	"ghm/pkg/github"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Repository merge settings commands",
	Long: `Commands for inspecting and updating pull request merge settings.

Available commands:
  list          - Summarize merge settings across repositories
  update-merge  - Set squash and merge commit title/message formats
  fix-squash    - Set squash merges to PR_TITLE + PR_BODY

A target is an organization, a user, or a single owner/name repository. When
omitted, github.owner from the config file is used.`,
}

// errNoTarget is returned when neither an argument nor github.owner names a target
var errNoTarget = errors.New("no target specified: pass an organization, user, or owner/name repository, or set github.owner in the config file")

// tokenResolver finds the token used to talk to GitHub
type tokenResolver interface {
	Resolve(ctx context.Context, explicit string) (auth.Token, error)
}

// Replaced in tests
var (
	newTokenResolver = func(configToken string) tokenResolver {
		return auth.NewResolver(configToken)
	}
	newAPIClient = func(token, baseURL string) (github.APIClient, error) {
		return github.NewClient(token, github.ClientOptions{BaseURL: baseURL})
	}
)

// filterFlags are the repository filters shared by every repos command
type filterFlags struct {
	includeArchived bool
	includeForks    bool
	token           string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.includeArchived, "include-archived", false, "Include archived repositories")
	cmd.Flags().BoolVar(&f.includeForks, "include-forks", false, "Include forked repositories")
	cmd.Flags().StringVar(&f.token, "token", "", "GitHub token (defaults to GITHUB_TOKEN or the gh CLI)")
}

// fetchOptions applies config defaults to filters not set on the command line
func (f *filterFlags) fetchOptions(cmd *cobra.Command, cfg *config.Config) github.FetchOptions {
	opts := github.FetchOptions{
		IncludeArchived: cfg.Defaults.IncludeArchived,
		IncludeForks:    cfg.Defaults.IncludeForks,
	}
	if cmd.Flags().Changed("include-archived") {
		opts.IncludeArchived = f.includeArchived
	}
	if cmd.Flags().Changed("include-forks") {
		opts.IncludeForks = f.includeForks
	}
	return opts
}

// targetArg returns the positional target or the configured owner
func targetArg(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.GitHub.Owner != "" {
		return cfg.GitHub.Owner, nil
	}
	return "", errNoTarget
}

// connect resolves a token and builds an API client
func connect(ctx context.Context, p *ui.Printer, cfg *config.Config, tokenFlag string) (github.APIClient, auth.Token, error) {
	token, err := newTokenResolver(cfg.GitHub.Token).Resolve(ctx, tokenFlag)
	if err != nil {
		return nil, auth.Token{}, err
	}
	if token.Source != auth.SourceFlag {
		p.Muted("Using token from %s", token.Source.Description())
	}

	client, err := newAPIClient(token.Value, cfg.GitHub.APIURL)
	if err != nil {
		return nil, auth.Token{}, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return client, token, nil
}

// fetchRepositories resolves the target and fetches its merge settings
func fetchRepositories(ctx context.Context, p *ui.Printer, client github.APIClient, target string, opts github.FetchOptions) (*github.CatalogResult, error) {
	resolved, err := github.ResolveTarget(ctx, client, target)
	if err != nil {
		return nil, err
	}

	if resolved.Kind == github.TargetSingleRepository {
		p.Muted("Fetching single repository %s...", resolved.FullName())
	} else {
		p.Muted("Fetching repositories from %s...", resolved)
	}

	result, err := github.NewCatalogWithObserver(client, p).Fetch(ctx, resolved, opts)
	if err != nil {
		return nil, err
	}

	p.PrintCatalog(result)
	return result, nil
}

func init() {
	reposCmd.AddCommand(reposListCmd)
	reposCmd.AddCommand(updateMergeCmd)
	reposCmd.AddCommand(fixSquashCmd)
}
