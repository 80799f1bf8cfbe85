package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghm/pkg/github"
)

// updateFlags are the flags shared by update-merge and fix-squash
type updateFlags struct {
	filterFlags
	dryRun bool
	apply  bool
}

func (f *updateFlags) bind(cmd *cobra.Command) {
	f.filterFlags.bind(cmd)
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", true, "Show what would change without making changes (default)")
	cmd.Flags().BoolVar(&f.apply, "apply", false, "Apply the changes")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "apply")
}

// isDryRun reports whether changes must only be previewed
func (f *updateFlags) isDryRun() bool {
	return f.dryRun && !f.apply
}

var (
	updateMergeFlags updateFlags
	fixSquashFlags   updateFlags
	desiredSettings  github.DesiredConfiguration
)

var updateMergeCmd = &cobra.Command{
	Use:   "update-merge [target]",
	Short: "Set squash and merge commit title/message formats",
	Long: `Update merge commit settings for every repository of a target.

Only settings that are given are changed, and only on repositories where the
corresponding merge method is enabled. Runs as a dry run unless --apply is
given.

Formats:
  titles:   PR_TITLE, COMMIT_OR_PR_TITLE (squash), MERGE_MESSAGE (merge)
  messages: PR_BODY, COMMIT_MESSAGES (squash), PR_TITLE (merge), BLANK

Common patterns:
  Squash to PR title + body: --squash-title PR_TITLE --squash-message PR_BODY
  Merge to PR title:         --merge-title PR_TITLE --merge-message PR_TITLE

Examples:
  ghm repos update-merge my-org --squash-title PR_TITLE --squash-message PR_BODY
  ghm repos update-merge my-org --merge-title PR_TITLE --apply`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdateMerge,
}

var fixSquashCmd = &cobra.Command{
	Use:   "fix-squash [target]",
	Short: "Set squash merges to PR_TITLE + PR_BODY",
	Long: `Quick fix: set squash merge commits to use the PR title and body.

This is equivalent to:
  ghm repos update-merge <target> --squash-title PR_TITLE --squash-message PR_BODY`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFixSquash,
}

func init() {
	updateMergeFlags.bind(updateMergeCmd)
	updateMergeCmd.Flags().StringVar(&desiredSettings.SquashTitle, "squash-title", "", "Squash merge commit title (e.g. PR_TITLE, COMMIT_OR_PR_TITLE)")
	updateMergeCmd.Flags().StringVar(&desiredSettings.SquashMessage, "squash-message", "", "Squash merge commit message (e.g. PR_BODY, COMMIT_MESSAGES, BLANK)")
	updateMergeCmd.Flags().StringVar(&desiredSettings.MergeTitle, "merge-title", "", "Merge commit title (e.g. PR_TITLE, MERGE_MESSAGE)")
	updateMergeCmd.Flags().StringVar(&desiredSettings.MergeMessage, "merge-message", "", "Merge commit message (e.g. PR_TITLE, PR_BODY, BLANK)")

	fixSquashFlags.bind(fixSquashCmd)
}

func runUpdateMerge(cmd *cobra.Command, args []string) error {
	if desiredSettings.IsEmpty() {
		return fmt.Errorf("%w: use --squash-title, --squash-message, --merge-title, or --merge-message", github.ErrNoMergeSettings)
	}
	return runUpdate(cmd, args, &updateMergeFlags, desiredSettings, "")
}

func runFixSquash(cmd *cobra.Command, args []string) error {
	return runUpdate(cmd, args, &fixSquashFlags, github.CanonicalSquash(), "Set squash merge to PR_TITLE + PR_BODY")
}

func runUpdate(cmd *cobra.Command, args []string, flags *updateFlags, desired github.DesiredConfiguration, action string) error {
	ctx := cmd.Context()
	p := newPrinter(cmd)
	dryRun := flags.isDryRun()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target, err := targetArg(args, cfg)
	if err != nil {
		return err
	}

	client, _, err := connect(ctx, p, cfg, flags.token)
	if err != nil {
		return err
	}

	p.Header("Target", "%s", target)
	if action != "" {
		p.Header("Action", "%s", action)
	}
	p.PrintMode(dryRun)

	result, err := fetchRepositories(ctx, p, client, target, flags.fetchOptions(cmd, cfg))
	if err != nil {
		return err
	}
	p.Header("Found", "%d repositories", len(result.Repositories))

	reconciler := github.NewReconcilerWithObserver(client, p)
	outcome := reconciler.ReconcileBatch(ctx, result.Repositories, desired, dryRun)

	// Per-repository failures are reported, not signaled through the exit code
	p.PrintBatchOutcome(outcome, dryRun)
	return nil
}
