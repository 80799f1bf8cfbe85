package github

import (
	"context"
	"fmt"
	"strings"
)

// TargetKind tags what a target identifier resolved to
type TargetKind string

const (
	TargetOrganization     TargetKind = "organization"
	TargetUser             TargetKind = "user"
	TargetSingleRepository TargetKind = "repository"
	TargetUnresolvable     TargetKind = "unresolvable"
)

// Target is the resolved form of a target identifier
type Target struct {
	Kind TargetKind
	// Owner is the organization or user login
	Owner string
	// Name is set only for single repositories
	Name string
}

// FullName returns owner/name for repositories and the owner otherwise
func (t Target) FullName() string {
	if t.Kind == TargetSingleRepository {
		return t.Owner + "/" + t.Name
	}
	return t.Owner
}

// String implements fmt.Stringer
func (t Target) String() string {
	return fmt.Sprintf("%s %s", t.Kind, t.FullName())
}

// ResolveTarget decides whether target names a single owner/name repository,
// an organization, or a user. The organization lookup runs first; only a
// not-found answer falls through to the user lookup.
func ResolveTarget(ctx context.Context, client APIClient, target string) (Target, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return Target{Kind: TargetUnresolvable}, fmt.Errorf("empty target: %w", ErrUnresolvableTarget)
	}

	if strings.Contains(target, "/") {
		owner, name, err := SplitFullName(target)
		if err != nil {
			return Target{Kind: TargetUnresolvable, Owner: target}, fmt.Errorf("%s: %w", err.Error(), ErrUnresolvableTarget)
		}
		return Target{Kind: TargetSingleRepository, Owner: owner, Name: name}, nil
	}

	if _, err := client.GetOrganization(ctx, target); err == nil {
		return Target{Kind: TargetOrganization, Owner: target}, nil
	} else if !IsNotFound(err) {
		return Target{Kind: TargetUnresolvable, Owner: target}, fmt.Errorf("failed to look up organization %s: %w", target, err)
	}

	if _, err := client.GetUser(ctx, target); err == nil {
		return Target{Kind: TargetUser, Owner: target}, nil
	} else if !IsNotFound(err) {
		return Target{Kind: TargetUnresolvable, Owner: target}, fmt.Errorf("failed to look up user %s: %w", target, err)
	}

	return Target{Kind: TargetUnresolvable, Owner: target}, fmt.Errorf("%s: %w", target, ErrUnresolvableTarget)
}
