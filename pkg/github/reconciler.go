package github

import (
	"context"

	"ghm/internal/logger"
)

// reconciler implements the Reconciler interface
type reconciler struct {
	client   APIClient
	observer Observer
}

// NewReconciler creates a new reconciler instance
func NewReconciler(client APIClient) Reconciler {
	return &reconciler{client: client}
}

// NewReconcilerWithObserver creates a reconciler that reports batch progress
// to observer
func NewReconcilerWithObserver(client APIClient, observer Observer) Reconciler {
	return &reconciler{
		client:   client,
		observer: observer,
	}
}

// Plan compares current settings with the desired configuration. A field is
// included only when it is requested, its merge method is enabled, and its
// value differs.
func (r *reconciler) Plan(current RepositorySettings, desired DesiredConfiguration) ChangeSet {
	var changes ChangeSet

	add := func(enabled bool, field SettingField, before, after string) {
		if after == "" || !enabled || before == after {
			return
		}
		changes = append(changes, FieldChange{
			Field:  field,
			Before: before,
			After:  after,
		})
	}

	add(current.SquashEnabled, FieldSquashTitle, current.SquashTitle, desired.SquashTitle)
	add(current.SquashEnabled, FieldSquashMessage, current.SquashMessage, desired.SquashMessage)
	add(current.MergeEnabled, FieldMergeTitle, current.MergeTitle, desired.MergeTitle)
	add(current.MergeEnabled, FieldMergeMessage, current.MergeMessage, desired.MergeMessage)

	return changes
}

// Reconcile re-reads the repository, computes the change set and applies it
// unless dryRun is set. Errors are reported in the result, never returned.
func (r *reconciler) Reconcile(ctx context.Context, fullName string, desired DesiredConfiguration, dryRun bool) RepositoryResult {
	log := logger.FromContext(ctx).With("repo", fullName, "dry_run", dryRun)
	result := RepositoryResult{FullName: fullName}

	// The catalog snapshot may be stale by now
	repo, err := r.client.GetRepository(ctx, fullName)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		log.Debug("re-read failed", "error", err)
		return result
	}

	result.Changes = r.Plan(NewRepositorySettings(repo), desired)

	switch {
	case result.Changes.IsEmpty():
		result.Status = StatusNoChange
	case dryRun:
		result.Status = StatusPlanned
	default:
		if err := r.client.UpdateRepository(ctx, fullName, result.Changes); err != nil {
			result.Status = StatusFailed
			result.Err = annotateUpdateError(err)
		} else {
			result.Status = StatusApplied
		}
	}

	log.Debug("reconciled", "status", result.Status, "changes", len(result.Changes))
	return result
}

// ReconcileBatch reconciles repositories one after another. Repositories
// without an enabled merge method matching the desired configuration are
// skipped; a failure never stops the batch.
func (r *reconciler) ReconcileBatch(ctx context.Context, repos []RepositorySettings, desired DesiredConfiguration, dryRun bool) BatchOutcome {
	var outcome BatchOutcome

	for _, repo := range repos {
		if !desired.AppliesTo(repo) {
			outcome.Skipped = append(outcome.Skipped, repo.FullName)
			if r.observer != nil {
				r.observer.RepositorySkipped(repo)
			}
			continue
		}

		result := r.Reconcile(ctx, repo.FullName, desired, dryRun)

		outcome.Attempted++
		if result.Succeeded() {
			outcome.Succeeded++
		}
		outcome.Results = append(outcome.Results, result)

		if r.observer != nil {
			r.observer.RepositoryReconciled(result)
		}
	}

	return outcome
}

// annotateUpdateError replaces the unhelpful raw 404 message of a failed
// update with a permissions hint while keeping the cause for errors.Is/As
func annotateUpdateError(err error) error {
	if !IsNotFound(err) {
		return err
	}
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: NotFoundHint,
		Cause:   err,
	}
}
