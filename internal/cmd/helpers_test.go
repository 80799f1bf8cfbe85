package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	gogithub "github.com/google/go-github/v66/github"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ghm/internal/auth"
	"ghm/pkg/github"
)

// fakeClient is an in-memory GitHub implementing github.APIClient
type fakeClient struct {
	orgs       map[string][]string
	users      map[string][]string
	repos      map[string]*github.RepositorySettings
	updateErrs map[string]error
	tokenInfo  *github.TokenInfo
	updates    map[string]github.ChangeSet
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		orgs:       map[string][]string{},
		users:      map[string][]string{},
		repos:      map[string]*github.RepositorySettings{},
		updateErrs: map[string]error{},
		updates:    map[string]github.ChangeSet{},
		tokenInfo:  &github.TokenInfo{User: "octocat", Scopes: []string{"repo"}},
	}
}

// addOrgRepo registers repo under its owner as an organization repository
func (f *fakeClient) addOrgRepo(repo github.RepositorySettings) {
	owner, name, _ := github.SplitFullName(repo.FullName)
	repo.Name = name
	f.orgs[owner] = append(f.orgs[owner], repo.FullName)
	f.repos[repo.FullName] = &repo
}

func toGitHub(s *github.RepositorySettings) *gogithub.Repository {
	return &gogithub.Repository{
		Name:                     gogithub.String(s.Name),
		FullName:                 gogithub.String(s.FullName),
		Archived:                 gogithub.Bool(s.Archived),
		Fork:                     gogithub.Bool(s.Fork),
		AllowSquashMerge:         gogithub.Bool(s.SquashEnabled),
		SquashMergeCommitTitle:   gogithub.String(s.SquashTitle),
		SquashMergeCommitMessage: gogithub.String(s.SquashMessage),
		AllowMergeCommit:         gogithub.Bool(s.MergeEnabled),
		MergeCommitTitle:         gogithub.String(s.MergeTitle),
		MergeCommitMessage:       gogithub.String(s.MergeMessage),
		AllowRebaseMerge:         gogithub.Bool(s.RebaseEnabled),
	}
}

func notFound(resource string) error {
	return &github.APIError{Type: github.ErrorTypeNotFound, Message: "Not Found", Resource: resource}
}

func (f *fakeClient) GetRepository(_ context.Context, fullName string) (*gogithub.Repository, error) {
	repo, ok := f.repos[fullName]
	if !ok {
		return nil, notFound("repository " + fullName)
	}
	return toGitHub(repo), nil
}

func (f *fakeClient) UpdateRepository(_ context.Context, fullName string, changes github.ChangeSet) error {
	if err := f.updateErrs[fullName]; err != nil {
		return err
	}
	repo := f.repos[fullName]
	for _, change := range changes {
		switch change.Field {
		case github.FieldSquashTitle:
			repo.SquashTitle = change.After
		case github.FieldSquashMessage:
			repo.SquashMessage = change.After
		case github.FieldMergeTitle:
			repo.MergeTitle = change.After
		case github.FieldMergeMessage:
			repo.MergeMessage = change.After
		}
	}
	f.updates[fullName] = changes
	return nil
}

func (f *fakeClient) GetOrganization(_ context.Context, name string) (*gogithub.Organization, error) {
	if _, ok := f.orgs[name]; !ok {
		return nil, notFound("organization " + name)
	}
	return &gogithub.Organization{Login: gogithub.String(name)}, nil
}

func (f *fakeClient) GetUser(_ context.Context, name string) (*gogithub.User, error) {
	if _, ok := f.users[name]; !ok {
		return nil, notFound("user " + name)
	}
	return &gogithub.User{Login: gogithub.String(name)}, nil
}

func (f *fakeClient) list(names []string) []*gogithub.Repository {
	var repos []*gogithub.Repository
	for _, name := range names {
		repos = append(repos, toGitHub(f.repos[name]))
	}
	return repos
}

func (f *fakeClient) ListOrganizationRepositories(_ context.Context, org string) ([]*gogithub.Repository, error) {
	return f.list(f.orgs[org]), nil
}

func (f *fakeClient) ListUserRepositories(_ context.Context, user string) ([]*gogithub.Repository, error) {
	return f.list(f.users[user]), nil
}

func (f *fakeClient) AuthenticatedUser(context.Context) (*github.TokenInfo, error) {
	return f.tokenInfo, nil
}

// staticResolver always yields the same token
type staticResolver struct {
	token auth.Token
	calls int
}

func (r *staticResolver) Resolve(context.Context, string) (auth.Token, error) {
	r.calls++
	return r.token, nil
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between executions
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// lastConfigToken is the config file token handed to the resolver factory
var lastConfigToken string

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// executeCommand runs ghm with args against client, an empty config file and
// a token from the environment
func executeCommand(t *testing.T, client github.APIClient, resolver tokenResolver, stdin string, args ...string) cliResult {
	t.Helper()

	resetFlags(rootCmd)

	origResolver, origClient := newTokenResolver, newAPIClient
	t.Cleanup(func() {
		newTokenResolver, newAPIClient = origResolver, origClient
	})

	if resolver == nil {
		resolver = &staticResolver{token: auth.Token{Value: "ghp_test", Source: auth.SourceEnvironment}}
	}
	lastConfigToken = ""
	newTokenResolver = func(configToken string) tokenResolver {
		lastConfigToken = configToken
		return resolver
	}
	newAPIClient = func(string, string) (github.APIClient, error) { return client, nil }

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return cliResult{stdout: out.String(), stderr: errOut.String(), err: err}
}
