package ui

import (
	"ghm/pkg/github"
)

// maxAttention caps the repositories listed under "needing updates"
const maxAttention = 10

// Attention is a repository whose settings deviate from the canonical
// convention
type Attention struct {
	FullName string
	Issues   []string
}

// Summary holds the counts shown by `repos list`
type Summary struct {
	Total           int
	SquashEnabled   int
	SquashCanonical int
	MergeEnabled    int
	MergeCanonical  int
	NeedsAttention  []Attention
}

// SquashNeedsUpdate is the number of squash-enabled repositories off convention
func (s Summary) SquashNeedsUpdate() int {
	return s.SquashEnabled - s.SquashCanonical
}

// MergeNeedsUpdate is the number of merge-enabled repositories off convention
func (s Summary) MergeNeedsUpdate() int {
	return s.MergeEnabled - s.MergeCanonical
}

// Summarize counts enabled merge methods and canonical settings
func Summarize(repos []github.RepositorySettings) Summary {
	s := Summary{Total: len(repos)}

	for _, repo := range repos {
		if repo.SquashEnabled {
			s.SquashEnabled++
		}
		if repo.UsesCanonicalSquash() {
			s.SquashCanonical++
		}
		if repo.MergeEnabled {
			s.MergeEnabled++
		}
		if repo.UsesCanonicalMerge() {
			s.MergeCanonical++
		}
		if issues := repo.CanonicalIssues(); len(issues) > 0 {
			s.NeedsAttention = append(s.NeedsAttention, Attention{
				FullName: repo.FullName,
				Issues:   issues,
			})
		}
	}

	return s
}
