package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"

	"ghm/internal/logger"
)

// FetchOptions controls which repositories the catalog keeps
type FetchOptions struct {
	IncludeArchived bool
	IncludeForks    bool
}

// CatalogResult holds the fetched snapshots and filter statistics
type CatalogResult struct {
	Target          Target
	Repositories    []RepositorySettings
	Total           int
	SkippedArchived int
	SkippedForks    int
}

// Catalog lists repositories for a resolved target
type Catalog struct {
	client   APIClient
	observer FetchObserver
}

// NewCatalog creates a catalog backed by client
func NewCatalog(client APIClient) *Catalog {
	return &Catalog{client: client}
}

// NewCatalogWithObserver creates a catalog that reports per-repository fetch
// progress to observer. Progress is not reported for fewer than two
// repositories.
func NewCatalogWithObserver(client APIClient, observer FetchObserver) *Catalog {
	return &Catalog{
		client:   client,
		observer: observer,
	}
}

// Fetch returns merge settings snapshots for every repository of target.
// Single repositories are returned as-is; owners are listed, filtered, and
// each kept repository is fetched individually because the list endpoints do
// not report merge settings.
func (c *Catalog) Fetch(ctx context.Context, target Target, opts FetchOptions) (*CatalogResult, error) {
	result := &CatalogResult{Target: target}
	log := logger.FromContext(ctx).With("target", target.FullName(), "kind", target.Kind)

	var listed []*github.Repository
	var err error

	switch target.Kind {
	case TargetSingleRepository:
		repo, fetchErr := c.client.GetRepository(ctx, target.FullName())
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to fetch repository %s: %w", target.FullName(), fetchErr)
		}
		result.Total = 1
		result.Repositories = []RepositorySettings{NewRepositorySettings(repo)}
		return result, nil
	case TargetOrganization:
		listed, err = c.client.ListOrganizationRepositories(ctx, target.Owner)
	case TargetUser:
		listed, err = c.client.ListUserRepositories(ctx, target.Owner)
	default:
		return nil, fmt.Errorf("%s: %w", target.Owner, ErrUnresolvableTarget)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s %s: %w", target.Kind, target.Owner, err)
	}

	result.Total = len(listed)
	log.Debug("listed repositories", "count", result.Total)

	var kept []string
	for _, repo := range listed {
		if !opts.IncludeArchived && repo.GetArchived() {
			result.SkippedArchived++
			continue
		}
		if !opts.IncludeForks && repo.GetFork() {
			result.SkippedForks++
			continue
		}
		kept = append(kept, repo.GetFullName())
	}

	result.Repositories = make([]RepositorySettings, 0, len(kept))
	for i, fullName := range kept {
		repo, err := c.client.GetRepository(ctx, fullName)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch merge settings for %s: %w", fullName, err)
		}
		result.Repositories = append(result.Repositories, NewRepositorySettings(repo))

		if c.observer != nil && len(kept) > 1 {
			c.observer.SettingsFetched(i+1, len(kept))
		}
	}

	log.Debug("fetched merge settings",
		"kept", len(result.Repositories),
		"skipped_archived", result.SkippedArchived,
		"skipped_forks", result.SkippedForks,
	)

	return result, nil
}
