package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ghm/pkg/github"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinterWithColor(&out, &errOut, false), &out, &errOut
}

func TestPrinter_PrintSummary(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.PrintSummary(Summary{
		Total:           3,
		SquashEnabled:   2,
		SquashCanonical: 1,
		MergeEnabled:    1,
		MergeCanonical:  1,
		NeedsAttention: []Attention{
			{FullName: "acme/web", Issues: []string{"squash_title=COMMIT_OR_PR_TITLE", "squash_msg=None"}},
		},
	})

	expected := `
Summary:
  Total repositories: 3
  Squash merge enabled: 2
    - Using PR_TITLE + PR_BODY: 1
    - Need update: 1
  Merge commit enabled: 1
    - Using PR_TITLE + PR_TITLE: 1

Repositories needing updates (1):
  acme/web: squash_title=COMMIT_OR_PR_TITLE, squash_msg=None
`
	assert.Equal(t, expected, out.String())
}

func TestPrinter_PrintSummary_CapsAttentionList(t *testing.T) {
	p, out, _ := newTestPrinter()

	var attention []Attention
	for i := 0; i < 13; i++ {
		attention = append(attention, Attention{FullName: fmt.Sprintf("acme/repo-%02d", i), Issues: []string{"squash_msg=BLANK"}})
	}

	p.PrintSummary(Summary{Total: 13, SquashEnabled: 13, NeedsAttention: attention})

	output := out.String()
	assert.Contains(t, output, "Repositories needing updates (13):")
	assert.Contains(t, output, "acme/repo-09")
	assert.NotContains(t, output, "acme/repo-10")
	assert.Contains(t, output, "  ... and 3 more\n")
}

func TestPrinter_PrintSummary_NoAttention(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.PrintSummary(Summary{Total: 1, SquashEnabled: 1, SquashCanonical: 1})

	assert.NotContains(t, out.String(), "needing updates")
	assert.NotContains(t, out.String(), "Need update")
}

func TestPrinter_PrintTable(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.PrintTable([]github.RepositorySettings{
		{FullName: "acme/api", SquashEnabled: true, SquashTitle: github.FormatPRTitle, SquashMessage: github.FormatPRBody},
		{FullName: "acme/docs", MergeEnabled: true, MergeTitle: github.FormatMergeMessage},
	})

	output := out.String()
	assert.Contains(t, output, "Repository Merge Settings")
	assert.Contains(t, output, "Squash Title")
	assert.Contains(t, output, "acme/api")
	assert.Contains(t, output, "MERGE_MESSAGE")

	var docsRow string
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "acme/docs") {
			docsRow = line
		}
	}
	assert.Contains(t, docsRow, IconPass)
	assert.Contains(t, docsRow, IconNone)
}

func TestPrinter_RepositoryReconciled(t *testing.T) {
	tests := []struct {
		name     string
		result   github.RepositoryResult
		expected string
	}{
		{
			name:     "no change",
			result:   github.RepositoryResult{FullName: "acme/api", Status: github.StatusNoChange},
			expected: "acme/api: No changes needed\n",
		},
		{
			name: "planned",
			result: github.RepositoryResult{
				FullName: "acme/api",
				Status:   github.StatusPlanned,
				Changes: github.ChangeSet{
					{Field: github.FieldSquashTitle, Before: github.FormatCommitOrPRTitle, After: github.FormatPRTitle},
					{Field: github.FieldSquashMessage, After: github.FormatPRBody},
				},
			},
			expected: "acme/api: Would update:\n" +
				"  ~ squash_merge_commit_title: COMMIT_OR_PR_TITLE → PR_TITLE\n" +
				"  ~ squash_merge_commit_message: — → PR_BODY\n",
		},
		{
			name:     "applied",
			result:   github.RepositoryResult{FullName: "acme/api", Status: github.StatusApplied},
			expected: "✓ acme/api: Updated successfully\n",
		},
		{
			name: "failed with not found hint",
			result: github.RepositoryResult{
				FullName: "acme/api",
				Status:   github.StatusFailed,
				Err:      github.NewAPIError(github.ErrorTypeNotFound, github.NotFoundHint, nil),
			},
			expected: "✗ acme/api: Failed - " + github.NotFoundHint + "\n",
		},
		{
			name: "failed with plain error",
			result: github.RepositoryResult{
				FullName: "acme/api",
				Status:   github.StatusFailed,
				Err:      errors.New("boom"),
			},
			expected: "✗ acme/api: Failed - boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, out, _ := newTestPrinter()
			p.RepositoryReconciled(tt.result)
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestPrinter_RepositorySkipped(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.RepositorySkipped(github.RepositorySettings{FullName: "acme/docs"})

	assert.Equal(t, "- acme/docs: No applicable merge methods enabled\n", out.String())
}

func TestPrinter_SettingsFetched(t *testing.T) {
	t.Run("non-terminal prints only the finished line", func(t *testing.T) {
		p, out, _ := newTestPrinter()

		for done := 1; done <= 4; done++ {
			p.SettingsFetched(done, 4)
		}

		expected := "Fetching merge settings... " + strings.Repeat("█", progressWidth) + " 4/4\n"
		assert.Equal(t, expected, out.String())
	})

	t.Run("terminal redraws in place", func(t *testing.T) {
		p, out, _ := newTestPrinter()
		p.live = true

		p.SettingsFetched(1, 2)
		p.SettingsFetched(2, 2)

		half := strings.Repeat("█", progressWidth/2) + strings.Repeat("░", progressWidth/2)
		full := strings.Repeat("█", progressWidth)
		expected := "\rFetching merge settings... " + half + " 1/2" +
			"\rFetching merge settings... " + full + " 2/2\n"
		assert.Equal(t, expected, out.String())
	})
}

func TestPrinter_PrintBatchOutcome(t *testing.T) {
	outcome := github.BatchOutcome{
		Attempted: 3,
		Succeeded: 2,
		Skipped:   []string{"acme/docs"},
		Results: []github.RepositoryResult{
			{FullName: "acme/a", Status: github.StatusApplied},
			{FullName: "acme/b", Status: github.StatusNoChange},
			{FullName: "acme/c", Status: github.StatusFailed},
		},
	}

	t.Run("dry run", func(t *testing.T) {
		p, out, _ := newTestPrinter()
		p.PrintBatchOutcome(outcome, true)

		output := out.String()
		assert.Contains(t, output, "Processed: 3 repositories")
		assert.Contains(t, output, "Would update: 2 repositories")
		assert.Contains(t, output, "Already up to date: 1 repositories")
		assert.Contains(t, output, "Skipped: 1 repositories")
		assert.Contains(t, output, "Run with --apply to make changes")
		assert.NotContains(t, output, "Failed:")
	})

	t.Run("apply", func(t *testing.T) {
		p, out, _ := newTestPrinter()
		p.PrintBatchOutcome(outcome, false)

		output := out.String()
		assert.Contains(t, output, "Updated: 2 repositories")
		assert.Contains(t, output, "Failed: 1 repositories")
		assert.NotContains(t, output, "--apply")
	})
}

func TestPrinter_PrintMode(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.PrintMode(true)
	assert.Equal(t, "Mode: DRY RUN (use --apply to make changes)\n\n", out.String())

	p, out, _ = newTestPrinter()
	p.PrintMode(false)
	assert.Equal(t, "Mode: APPLY (making real changes)\n\n", out.String())
}

func TestPrinter_PrintCatalog(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.PrintCatalog(&github.CatalogResult{
		Target:          github.Target{Kind: github.TargetOrganization, Owner: "acme"},
		Total:           7,
		SkippedArchived: 2,
	})

	assert.Equal(t, "Found 7 total repositories\nSkipping 2 archived repositories\n", out.String())
}

type stepsError struct{}

func (stepsError) Error() string { return "No GitHub token found" }

func (stepsError) GetTroubleshootingMessage() string {
	return "\nTroubleshooting steps:\n1. Set GITHUB_TOKEN\n"
}

func TestPrinter_Error(t *testing.T) {
	p, out, errOut := newTestPrinter()

	p.Error(fmt.Errorf("resolve token: %w", stepsError{}))

	assert.Empty(t, out.String())
	assert.Equal(t, "Error: resolve token: No GitHub token found\n\nTroubleshooting steps:\n1. Set GITHUB_TOKEN\n", errOut.String())
}

func TestPrinter_Header(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.Header("Organization", "%s", "acme")

	assert.Equal(t, "Organization: acme\n", out.String())
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestShouldUseColor(t *testing.T) {
	tests := []struct {
		name          string
		noColor       bool
		cliColor      string
		cliColorForce string
		want          bool
	}{
		{name: "not a terminal", want: false},
		{name: "NO_COLOR disables color", noColor: true, cliColorForce: "1", want: false},
		{name: "CLICOLOR=0 disables color", cliColor: "0", cliColorForce: "1", want: false},
		{name: "CLICOLOR_FORCE enables color", cliColorForce: "1", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "")
			t.Setenv("CLICOLOR", tt.cliColor)
			t.Setenv("CLICOLOR_FORCE", tt.cliColorForce)
			if !tt.noColor {
				unsetenv(t, "NO_COLOR")
			}

			assert.Equal(t, tt.want, ShouldUseColor(&bytes.Buffer{}))
		})
	}
}

func unsetenv(t *testing.T, key string) {
	t.Helper()
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}
