package auth

import (
	"context"
	"os"
	"strings"

	"ghm/internal/logger"
)

// EnvToken is the environment variable consulted for a token
const EnvToken = "GITHUB_TOKEN"

// TokenSource identifies where a token came from
type TokenSource string

const (
	SourceFlag        TokenSource = "flag"
	SourceConfig      TokenSource = "config"
	SourceEnvironment TokenSource = "environment"
	SourceGHCLI       TokenSource = "gh"
)

// Description returns a human readable name for the source
func (s TokenSource) Description() string {
	switch s {
	case SourceFlag:
		return "--token flag"
	case SourceConfig:
		return "config file"
	case SourceEnvironment:
		return EnvToken + " environment variable"
	case SourceGHCLI:
		return "gh CLI (gh auth token)"
	default:
		return string(s)
	}
}

// Token is a resolved GitHub token
type Token struct {
	Value  string
	Source TokenSource
}

// Resolver finds a GitHub token. Sources are checked in order: the explicit
// value, the config file token, GITHUB_TOKEN, then `gh auth token`.
type Resolver struct {
	configToken string
	runner      CommandRunner
	getenv      func(string) string
}

// NewResolver creates a resolver using the process environment and the gh
// CLI on PATH. configToken may be empty.
func NewResolver(configToken string) *Resolver {
	return NewResolverWithRunner(configToken, NewCommandRunner(), os.Getenv)
}

// NewResolverWithRunner creates a resolver with a custom command runner and
// environment lookup
func NewResolverWithRunner(configToken string, runner CommandRunner, getenv func(string) string) *Resolver {
	return &Resolver{
		configToken: configToken,
		runner:      runner,
		getenv:      getenv,
	}
}

// Resolve returns the first non-empty token. It fails with an *Error of type
// ErrorTypeNoToken when no source yields one.
func (r *Resolver) Resolve(ctx context.Context, explicit string) (Token, error) {
	if token := strings.TrimSpace(explicit); token != "" {
		return Token{Value: token, Source: SourceFlag}, nil
	}

	if token := strings.TrimSpace(r.configToken); token != "" {
		return Token{Value: token, Source: SourceConfig}, nil
	}

	if token := strings.TrimSpace(r.getenv(EnvToken)); token != "" {
		return Token{Value: token, Source: SourceEnvironment}, nil
	}

	out, err := r.runner.Output(ctx, "gh", "auth", "token")
	if err == nil {
		if token := strings.TrimSpace(string(out)); token != "" {
			return Token{Value: token, Source: SourceGHCLI}, nil
		}
	} else {
		logger.FromContext(ctx).Debug("gh auth token failed", "error", err)
	}

	return Token{}, newNoTokenError(err)
}
