package github

import (
	"context"

	"github.com/google/go-github/v66/github"
)

// APIClient defines the GitHub API operations the catalog and reconciler use
type APIClient interface {
	// Repository operations
	GetRepository(ctx context.Context, fullName string) (*github.Repository, error)
	UpdateRepository(ctx context.Context, fullName string, changes ChangeSet) error

	// Owner operations
	GetOrganization(ctx context.Context, name string) (*github.Organization, error)
	GetUser(ctx context.Context, name string) (*github.User, error)
	ListOrganizationRepositories(ctx context.Context, org string) ([]*github.Repository, error)
	ListUserRepositories(ctx context.Context, user string) ([]*github.Repository, error)

	// Token introspection
	AuthenticatedUser(ctx context.Context) (*TokenInfo, error)
}

// Reconciler defines the interface for merge settings reconciliation
type Reconciler interface {
	// Plan computes the changes needed to bring current to desired
	Plan(current RepositorySettings, desired DesiredConfiguration) ChangeSet

	// Reconcile re-reads a repository and applies, or simulates, the changes
	Reconcile(ctx context.Context, fullName string, desired DesiredConfiguration, dryRun bool) RepositoryResult

	// ReconcileBatch reconciles every applicable repository in order
	ReconcileBatch(ctx context.Context, repos []RepositorySettings, desired DesiredConfiguration, dryRun bool) BatchOutcome
}

// Observer receives batch progress as it happens
type Observer interface {
	RepositorySkipped(repo RepositorySettings)
	RepositoryReconciled(result RepositoryResult)
}

// FetchObserver receives progress while the catalog fetches merge settings
type FetchObserver interface {
	SettingsFetched(done, total int)
}
