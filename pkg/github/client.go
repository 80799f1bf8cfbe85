package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"ghm/internal/logger"
)

const listPageSize = 100

// ClientOptions configures the GitHub API client
type ClientOptions struct {
	// BaseURL points the client at a GitHub Enterprise instance when set
	BaseURL string
}

// Client implements the APIClient interface using the GitHub REST API
type Client struct {
	client *github.Client
}

// NewClient creates a GitHub API client with the transport stack
// oauth2 static token -> secondary rate limit middleware -> go-github
func NewClient(token string, opts ClientOptions) (*Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	authTransport := &oauth2.Transport{
		Source: ts,
		Base:   http.DefaultTransport,
	}

	client := github.NewClient(github_ratelimit.NewClient(authTransport))

	if opts.BaseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(opts.BaseURL, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, err)
		}
	}

	return &Client{client: client}, nil
}

// NewClientFromGitHub wraps an already configured go-github client
func NewClientFromGitHub(client *github.Client) *Client {
	return &Client{client: client}
}

// GetRepository retrieves a repository by its owner/name
func (c *Client) GetRepository(ctx context.Context, fullName string) (*github.Repository, error) {
	owner, name, err := SplitFullName(fullName)
	if err != nil {
		return nil, err
	}

	repo, resp, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, WrapAPIError(err, "repository "+fullName)
	}
	logRateLimit(ctx, resp, "get repository", fullName)

	return repo, nil
}

// UpdateRepository sends the change set as a single partial update
func (c *Client) UpdateRepository(ctx context.Context, fullName string, changes ChangeSet) error {
	owner, name, err := SplitFullName(fullName)
	if err != nil {
		return err
	}
	if changes.IsEmpty() {
		return nil
	}

	patch := &github.Repository{}
	for _, change := range changes {
		value := github.String(change.After)
		switch change.Field {
		case FieldSquashTitle:
			patch.SquashMergeCommitTitle = value
		case FieldSquashMessage:
			patch.SquashMergeCommitMessage = value
		case FieldMergeTitle:
			patch.MergeCommitTitle = value
		case FieldMergeMessage:
			patch.MergeCommitMessage = value
		default:
			return NewAPIError(ErrorTypeValidation, fmt.Sprintf("unsupported setting %q", change.Field), nil)
		}
	}

	_, resp, err := c.client.Repositories.Edit(ctx, owner, name, patch)
	if err != nil {
		return WrapAPIError(err, "repository "+fullName)
	}
	logRateLimit(ctx, resp, "update repository", fullName)

	return nil
}

// GetOrganization retrieves an organization by login
func (c *Client) GetOrganization(ctx context.Context, name string) (*github.Organization, error) {
	org, _, err := c.client.Organizations.Get(ctx, name)
	if err != nil {
		return nil, WrapAPIError(err, "organization "+name)
	}
	return org, nil
}

// GetUser retrieves a user account by login
func (c *Client) GetUser(ctx context.Context, name string) (*github.User, error) {
	user, _, err := c.client.Users.Get(ctx, name)
	if err != nil {
		return nil, WrapAPIError(err, "user "+name)
	}
	return user, nil
}

// ListOrganizationRepositories lists every repository of an organization
func (c *Client) ListOrganizationRepositories(ctx context.Context, org string) ([]*github.Repository, error) {
	opts := &github.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}

	var allRepos []*github.Repository
	for {
		repos, resp, err := c.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, WrapAPIError(err, fmt.Sprintf("organization %s (page %d)", org, opts.Page))
		}
		logRateLimit(ctx, resp, "list organization repositories", org, "page", opts.Page, "count", len(repos))

		allRepos = append(allRepos, repos...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// ListUserRepositories lists the repositories owned by a user
func (c *Client) ListUserRepositories(ctx context.Context, user string) ([]*github.Repository, error) {
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}

	var allRepos []*github.Repository
	for {
		repos, resp, err := c.client.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, WrapAPIError(err, fmt.Sprintf("user %s (page %d)", user, opts.Page))
		}
		logRateLimit(ctx, resp, "list user repositories", user, "page", opts.Page, "count", len(repos))

		allRepos = append(allRepos, repos...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// AuthenticatedUser returns the login and OAuth scopes of the current token
func (c *Client) AuthenticatedUser(ctx context.Context) (*TokenInfo, error) {
	user, resp, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return nil, WrapAPIError(err, "authenticated user")
	}

	// Fine-grained tokens do not send X-OAuth-Scopes
	scopes := []string{}
	if resp != nil {
		if scopeHeader := resp.Header.Get("X-OAuth-Scopes"); scopeHeader != "" {
			scopes = strings.Split(strings.ReplaceAll(scopeHeader, " ", ""), ",")
		}
	}

	return &TokenInfo{
		User:   user.GetLogin(),
		Scopes: scopes,
	}, nil
}

// SplitFullName splits an owner/name repository identifier
func SplitFullName(fullName string) (owner, name string, err error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository name %q: expected owner/name", fullName)
	}
	return parts[0], parts[1], nil
}

func logRateLimit(ctx context.Context, resp *github.Response, op, subject string, args ...any) {
	if resp == nil {
		return
	}
	attrs := append([]any{"subject", subject, "rate_remaining", resp.Rate.Remaining}, args...)
	logger.FromContext(ctx).Debug(op, attrs...)
}
