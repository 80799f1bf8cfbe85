package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"ghm/pkg/github"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Commands for checking the GitHub token ghm will use",
}

var authStatusToken string

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which GitHub token is used and what it can do",
	Long: `Resolve a GitHub token the same way the repos commands do and verify it.

Tokens are looked up in order: --token, github.token in the config file, the
GITHUB_TOKEN environment variable, then 'gh auth token'. Classic tokens need
the repo scope to change merge settings; fine-grained tokens need the
Administration repository permission, which cannot be checked up front.`,
	Args: cobra.NoArgs,
	RunE: runAuthStatus,
}

func init() {
	authStatusCmd.Flags().StringVar(&authStatusToken, "token", "", "GitHub token (defaults to GITHUB_TOKEN or the gh CLI)")
	authCmd.AddCommand(authStatusCmd)
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	p := newPrinter(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, token, err := connect(ctx, p, cfg, authStatusToken)
	if err != nil {
		return err
	}

	p.Header("Token source", "%s", token.Source.Description())

	info, err := github.ValidateToken(ctx, client)
	if info != nil {
		p.Success("Authenticated as %s", info.User)
		if info.FineGrained() {
			p.Muted("Fine-grained token: permissions are checked per repository")
		} else {
			p.Header("Scopes", "%s", strings.Join(info.Scopes, ", "))
		}
	}
	if err != nil {
		var apiErr *github.APIError
		if errors.As(err, &apiErr) && apiErr.Type == github.ErrorTypePermission {
			p.Warn("%s", apiErr.Message)
		}
		return err
	}

	return nil
}
