package auth

import (
	"context"
	"fmt"
	"os/exec"
)

// CommandRunner defines the interface for running a local helper command and
// capturing its standard output
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// NewCommandRunner creates a new command runner instance
func NewCommandRunner() *ExecRunner {
	return &ExecRunner{}
}

// Output runs name with args and returns its standard output
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}
	return out, nil
}
