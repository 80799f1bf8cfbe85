package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"ghm/pkg/github"
)

// Printer writes user-facing output. Results go to out, errors to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	styles Styles
	// live redraws progress in place
	live bool
}

// NewPrinter creates a printer that colors output only when out is a terminal
func NewPrinter(out, errOut io.Writer) *Printer {
	return NewPrinterWithColor(out, errOut, ShouldUseColor(out))
}

// NewPrinterWithColor creates a printer with color explicitly on or off
func NewPrinterWithColor(out, errOut io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(out)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	} else if !IsTerminal(out) {
		r.SetColorProfile(termenv.ANSI256)
	}

	return &Printer{
		out:    out,
		errOut: errOut,
		styles: NewStyles(r),
		live:   IsTerminal(out),
	}
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.out, s)
}

// Header prints a bold label followed by a value
func (p *Printer) Header(label, format string, args ...any) {
	p.println(p.styles.Bold.Render(label+":") + " " + fmt.Sprintf(format, args...))
}

// Muted prints a dimmed informational line
func (p *Printer) Muted(format string, args ...any) {
	p.println(p.styles.Muted.Render(fmt.Sprintf(format, args...)))
}

// Success prints a line prefixed with the pass icon
func (p *Printer) Success(format string, args ...any) {
	p.println(p.styles.Pass.Render(IconPass + " " + fmt.Sprintf(format, args...)))
}

// Warn prints a line prefixed with the warning icon
func (p *Printer) Warn(format string, args ...any) {
	p.println(p.styles.Warn.Render(IconWarn + " " + fmt.Sprintf(format, args...)))
}

// Errorf prints an error line to the error stream
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.errOut, p.styles.Fail.Render("Error: "+fmt.Sprintf(format, args...)))
}

// troubleshooter is implemented by errors that carry remediation steps
type troubleshooter interface {
	GetTroubleshootingMessage() string
}

// Error prints err and, when available, its troubleshooting steps
func (p *Printer) Error(err error) {
	p.Errorf("%v", err)
	var t troubleshooter
	if errors.As(err, &t) {
		if msg := t.GetTroubleshootingMessage(); msg != "" {
			fmt.Fprint(p.errOut, msg)
		}
	}
}

// PrintMode announces whether changes will be made
func (p *Printer) PrintMode(dryRun bool) {
	if dryRun {
		p.println(p.styles.Warn.Render("Mode: DRY RUN (use --apply to make changes)"))
	} else {
		p.println(p.styles.Fail.Render("Mode: APPLY (making real changes)"))
	}
	p.println("")
}

// PrintCatalog reports what the catalog fetched and filtered
func (p *Printer) PrintCatalog(result *github.CatalogResult) {
	if result.Target.Kind != github.TargetSingleRepository {
		p.Muted("Found %d total repositories", result.Total)
	}
	if result.SkippedArchived > 0 {
		p.Muted("Skipping %d archived repositories", result.SkippedArchived)
	}
	if result.SkippedForks > 0 {
		p.Muted("Skipping %d forked repositories", result.SkippedForks)
	}
}

// PrintSummary prints the list summary and the repositories needing updates
func (p *Printer) PrintSummary(s Summary) {
	p.println("")
	p.println(p.styles.Bold.Render("Summary:"))
	p.println(fmt.Sprintf("  Total repositories: %d", s.Total))
	p.println(fmt.Sprintf("  Squash merge enabled: %d", s.SquashEnabled))
	p.println(fmt.Sprintf("    - Using PR_TITLE + PR_BODY: %d", s.SquashCanonical))
	if n := s.SquashNeedsUpdate(); n > 0 {
		p.println("    - " + p.styles.Warn.Render(fmt.Sprintf("Need update: %d", n)))
	}
	p.println(fmt.Sprintf("  Merge commit enabled: %d", s.MergeEnabled))
	p.println(fmt.Sprintf("    - Using PR_TITLE + PR_TITLE: %d", s.MergeCanonical))
	if n := s.MergeNeedsUpdate(); n > 0 {
		p.println("    - " + p.styles.Warn.Render(fmt.Sprintf("Need update: %d", n)))
	}

	if len(s.NeedsAttention) == 0 {
		return
	}

	p.println("")
	p.println(p.styles.Warn.Render(fmt.Sprintf("Repositories needing updates (%d):", len(s.NeedsAttention))))
	for i, repo := range s.NeedsAttention {
		if i == maxAttention {
			p.println(fmt.Sprintf("  ... and %d more", len(s.NeedsAttention)-maxAttention))
			break
		}
		p.println(fmt.Sprintf("  %s: %s", repo.FullName, strings.Join(repo.Issues, ", ")))
	}
}

// PrintTable prints every repository's merge settings as a table
func (p *Printer) PrintTable(repos []github.RepositorySettings) {
	enabled := func(b bool) string {
		if b {
			return IconPass
		}
		return IconNone
	}
	value := func(v string) string {
		if v == "" {
			return IconNone
		}
		return v
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.styles.Muted).
		Headers("Repository", "Squash", "Squash Title", "Squash Msg", "Merge", "Merge Title", "Merge Msg").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return p.styles.Header
			case col == 0:
				return p.styles.Accent
			case col == 1 || col == 4:
				return p.styles.Pass
			default:
				return lipgloss.Style{}
			}
		})

	for _, repo := range repos {
		t.Row(
			repo.FullName,
			enabled(repo.SquashEnabled),
			value(repo.SquashTitle),
			value(repo.SquashMessage),
			enabled(repo.MergeEnabled),
			value(repo.MergeTitle),
			value(repo.MergeMessage),
		)
	}

	p.println(p.styles.Bold.Render("Repository Merge Settings"))
	p.println(t.Render())
}

const progressWidth = 30

// SettingsFetched implements github.FetchObserver. Terminals get a bar that
// redraws in place; other writers only see the finished line.
func (p *Printer) SettingsFetched(done, total int) {
	if !p.live && done < total {
		return
	}

	line := fmt.Sprintf("Fetching merge settings... %s %d/%d", p.progressBar(done, total), done, total)
	if !p.live {
		p.println(line)
		return
	}

	fmt.Fprint(p.out, "\r"+line)
	if done >= total {
		fmt.Fprintln(p.out)
	}
}

func (p *Printer) progressBar(done, total int) string {
	filled := 0
	if total > 0 {
		filled = min(done, total) * progressWidth / total
	}
	return p.styles.Pass.Render(strings.Repeat("█", filled)) +
		p.styles.Muted.Render(strings.Repeat("░", progressWidth-filled))
}

// RepositorySkipped implements github.Observer
func (p *Printer) RepositorySkipped(repo github.RepositorySettings) {
	p.Muted("%s %s: No applicable merge methods enabled", IconSkip, repo.FullName)
}

// RepositoryReconciled implements github.Observer
func (p *Printer) RepositoryReconciled(result github.RepositoryResult) {
	switch result.Status {
	case github.StatusNoChange:
		p.Muted("%s: No changes needed", result.FullName)
	case github.StatusPlanned:
		p.println(p.styles.Warn.Render(result.FullName + ": Would update:"))
		for _, change := range result.Changes {
			before := change.Before
			if before == "" {
				before = IconNone
			}
			p.println(fmt.Sprintf("  ~ %s: %s → %s", change.Field, before, change.After))
		}
	case github.StatusApplied:
		p.Success("%s: Updated successfully", result.FullName)
	case github.StatusFailed:
		p.println(p.styles.Fail.Render(fmt.Sprintf("%s %s: Failed - %s", IconFail, result.FullName, failureMessage(result.Err))))
	}
}

// failureMessage prefers the classified API message over the full error chain
func failureMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	if apiErr := github.WrapAPIError(err, ""); apiErr != nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// PrintBatchOutcome prints the totals after a bulk update
func (p *Printer) PrintBatchOutcome(outcome github.BatchOutcome, dryRun bool) {
	p.println("")
	p.println(p.styles.Bold.Render("Summary:"))
	p.println(fmt.Sprintf("  Processed: %d repositories", outcome.Attempted))

	if dryRun {
		p.println(fmt.Sprintf("  Would update: %d repositories", outcome.Succeeded))
	} else {
		p.println("  " + p.styles.Pass.Render(fmt.Sprintf("Updated: %d repositories", outcome.Succeeded)))
		if failed := outcome.Failed(); failed > 0 {
			p.println("  " + p.styles.Fail.Render(fmt.Sprintf("Failed: %d repositories", failed)))
		}
	}
	if unchanged := outcome.Unchanged(); unchanged > 0 {
		p.Muted("  Already up to date: %d repositories", unchanged)
	}
	if len(outcome.Skipped) > 0 {
		p.Muted("  Skipped: %d repositories without an applicable merge method", len(outcome.Skipped))
	}

	if dryRun {
		p.println("")
		p.println(p.styles.Warn.Render("Run with --apply to make changes"))
	}
}

var (
	_ github.Observer      = (*Printer)(nil)
	_ github.FetchObserver = (*Printer)(nil)
)
