package github

import (
	"github.com/google/go-github/v66/github"
)

// Commit title and message formats accepted by GitHub. The list is not
// enforced locally; GitHub rejects unknown values with a 422.
const (
	FormatPRTitle          = "PR_TITLE"
	FormatPRBody           = "PR_BODY"
	FormatCommitOrPRTitle  = "COMMIT_OR_PR_TITLE"
	FormatCommitMessages   = "COMMIT_MESSAGES"
	FormatMergeMessage     = "MERGE_MESSAGE"
	FormatBlank            = "BLANK"
	canonicalSquashTitle   = FormatPRTitle
	canonicalSquashMessage = FormatPRBody
	canonicalMergeTitle    = FormatPRTitle
	canonicalMergeMessage  = FormatPRTitle
)

// RepositorySettings is a snapshot of a repository's merge configuration taken
// at fetch time. Empty format strings mean GitHub did not report a value.
type RepositorySettings struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Archived bool   `json:"archived"`
	Fork     bool   `json:"fork"`

	SquashEnabled bool   `json:"allow_squash_merge"`
	SquashTitle   string `json:"squash_merge_commit_title,omitempty"`
	SquashMessage string `json:"squash_merge_commit_message,omitempty"`

	MergeEnabled bool   `json:"allow_merge_commit"`
	MergeTitle   string `json:"merge_commit_title,omitempty"`
	MergeMessage string `json:"merge_commit_message,omitempty"`

	// RebaseEnabled is informational only and never changed.
	RebaseEnabled bool `json:"allow_rebase_merge"`
}

// NewRepositorySettings extracts the merge configuration from a go-github
// repository record
func NewRepositorySettings(repo *github.Repository) RepositorySettings {
	return RepositorySettings{
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Archived:      repo.GetArchived(),
		Fork:          repo.GetFork(),
		SquashEnabled: repo.GetAllowSquashMerge(),
		SquashTitle:   repo.GetSquashMergeCommitTitle(),
		SquashMessage: repo.GetSquashMergeCommitMessage(),
		MergeEnabled:  repo.GetAllowMergeCommit(),
		MergeTitle:    repo.GetMergeCommitTitle(),
		MergeMessage:  repo.GetMergeCommitMessage(),
		RebaseEnabled: repo.GetAllowRebaseMerge(),
	}
}

// NeedsSquashUpdate reports whether squash merging is enabled and its commit
// title or message differs from the given formats
func (s RepositorySettings) NeedsSquashUpdate(title, message string) bool {
	if !s.SquashEnabled {
		return false
	}
	return s.SquashTitle != title || s.SquashMessage != message
}

// NeedsMergeUpdate reports whether merge commits are enabled and their title
// or message differs from the given formats
func (s RepositorySettings) NeedsMergeUpdate(title, message string) bool {
	if !s.MergeEnabled {
		return false
	}
	return s.MergeTitle != title || s.MergeMessage != message
}

// UsesCanonicalSquash reports whether squash merging uses PR_TITLE + PR_BODY
func (s RepositorySettings) UsesCanonicalSquash() bool {
	return s.SquashEnabled && !s.NeedsSquashUpdate(canonicalSquashTitle, canonicalSquashMessage)
}

// UsesCanonicalMerge reports whether merge commits use PR_TITLE + PR_TITLE
func (s RepositorySettings) UsesCanonicalMerge() bool {
	return s.MergeEnabled && !s.NeedsMergeUpdate(canonicalMergeTitle, canonicalMergeMessage)
}

// CanonicalIssues lists the settings that deviate from the canonical
// convention, formatted as field=value pairs
func (s RepositorySettings) CanonicalIssues() []string {
	var issues []string
	if s.SquashEnabled {
		if s.SquashTitle != canonicalSquashTitle {
			issues = append(issues, "squash_title="+displayValue(s.SquashTitle))
		}
		if s.SquashMessage != canonicalSquashMessage {
			issues = append(issues, "squash_msg="+displayValue(s.SquashMessage))
		}
	}
	if s.MergeEnabled {
		if s.MergeTitle != canonicalMergeTitle {
			issues = append(issues, "merge_title="+displayValue(s.MergeTitle))
		}
		if s.MergeMessage != canonicalMergeMessage {
			issues = append(issues, "merge_msg="+displayValue(s.MergeMessage))
		}
	}
	return issues
}

func displayValue(v string) string {
	if v == "" {
		return "None"
	}
	return v
}

// DesiredConfiguration holds the requested merge formats. An empty field means
// no opinion and leaves the repository's value untouched.
type DesiredConfiguration struct {
	SquashTitle   string `json:"squash_title,omitempty"`
	SquashMessage string `json:"squash_message,omitempty"`
	MergeTitle    string `json:"merge_title,omitempty"`
	MergeMessage  string `json:"merge_message,omitempty"`
}

// CanonicalSquash is the configuration applied by fix-squash
func CanonicalSquash() DesiredConfiguration {
	return DesiredConfiguration{
		SquashTitle:   canonicalSquashTitle,
		SquashMessage: canonicalSquashMessage,
	}
}

// IsEmpty reports whether no field is set
func (d DesiredConfiguration) IsEmpty() bool {
	return !d.WantsSquash() && !d.WantsMerge()
}

// WantsSquash reports whether any squash-merge field is set
func (d DesiredConfiguration) WantsSquash() bool {
	return d.SquashTitle != "" || d.SquashMessage != ""
}

// WantsMerge reports whether any merge-commit field is set
func (d DesiredConfiguration) WantsMerge() bool {
	return d.MergeTitle != "" || d.MergeMessage != ""
}

// AppliesTo reports whether at least one desired field governs a merge method
// that is enabled on the repository
func (d DesiredConfiguration) AppliesTo(s RepositorySettings) bool {
	return (d.WantsSquash() && s.SquashEnabled) || (d.WantsMerge() && s.MergeEnabled)
}

// SettingField names a mutable merge setting using its REST API field name
type SettingField string

const (
	FieldSquashTitle   SettingField = "squash_merge_commit_title"
	FieldSquashMessage SettingField = "squash_merge_commit_message"
	FieldMergeTitle    SettingField = "merge_commit_title"
	FieldMergeMessage  SettingField = "merge_commit_message"
)

// FieldChange is a single planned field update
type FieldChange struct {
	Field  SettingField `json:"field"`
	Before string       `json:"before,omitempty"`
	After  string       `json:"after"`
}

// ChangeSet is the ordered list of field updates for one repository
type ChangeSet []FieldChange

// IsEmpty reports whether no update is needed
func (c ChangeSet) IsEmpty() bool {
	return len(c) == 0
}

// Get returns the new value for field and whether it is part of the set
func (c ChangeSet) Get(field SettingField) (string, bool) {
	for _, change := range c {
		if change.Field == field {
			return change.After, true
		}
	}
	return "", false
}

// ResultStatus describes how a repository reconciliation ended
type ResultStatus string

const (
	StatusNoChange ResultStatus = "no_change"
	StatusPlanned  ResultStatus = "planned"
	StatusApplied  ResultStatus = "applied"
	StatusFailed   ResultStatus = "failed"
)

// RepositoryResult is the outcome of reconciling one repository
type RepositoryResult struct {
	FullName string       `json:"full_name"`
	Status   ResultStatus `json:"status"`
	Changes  ChangeSet    `json:"changes,omitempty"`
	Err      error        `json:"-"`
}

// Succeeded reports whether the repository was, or would be, left in the
// desired state. No-op and dry-run outcomes count as success.
func (r RepositoryResult) Succeeded() bool {
	return r.Status != StatusFailed
}

// BatchOutcome aggregates the results of a batch reconciliation
type BatchOutcome struct {
	Attempted int                `json:"attempted"`
	Succeeded int                `json:"succeeded"`
	Skipped   []string           `json:"skipped,omitempty"`
	Results   []RepositoryResult `json:"results,omitempty"`
}

// Failed returns the number of attempted repositories that failed
func (o BatchOutcome) Failed() int {
	return o.Attempted - o.Succeeded
}

// Unchanged returns the number of attempted repositories that already matched
func (o BatchOutcome) Unchanged() int {
	n := 0
	for _, r := range o.Results {
		if r.Status == StatusNoChange {
			n++
		}
	}
	return n
}
