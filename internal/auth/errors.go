package auth

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrorType represents different types of credential errors
type ErrorType string

const (
	// ErrorTypeNoToken means none of the token sources produced a value
	ErrorTypeNoToken ErrorType = "no_token"
)

// Error represents a structured credential error with troubleshooting guidance
type Error struct {
	Type                 ErrorType `json:"type"`
	Message              string    `json:"message"`
	OriginalError        error     `json:"-"`
	TroubleshootingSteps []string  `json:"troubleshooting_steps"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the original error for error unwrapping
func (e *Error) Unwrap() error {
	return e.OriginalError
}

// GetTroubleshootingMessage returns a formatted troubleshooting message
func (e *Error) GetTroubleshootingMessage() string {
	if len(e.TroubleshootingSteps) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nTroubleshooting steps:\n")
	for i, step := range e.TroubleshootingSteps {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}
	return sb.String()
}

// newNoTokenError builds the error returned when every source came up empty.
// ghErr is the gh CLI failure, if any, and tailors the login step.
func newNoTokenError(ghErr error) *Error {
	loginStep := "Log in with: gh auth login"
	if errors.Is(ghErr, exec.ErrNotFound) {
		loginStep = "Install the GitHub CLI (https://cli.github.com) and log in with: gh auth login"
	}

	return &Error{
		Type:          ErrorTypeNoToken,
		Message:       "No GitHub token found",
		OriginalError: ghErr,
		TroubleshootingSteps: []string{
			fmt.Sprintf("Set the %s environment variable", EnvToken),
			loginStep,
			"Pass a token explicitly with --token",
		},
	}
}

// IsNoToken reports whether err means no token could be resolved
func IsNoToken(err error) bool {
	var authErr *Error
	return errors.As(err, &authErr) && authErr.Type == ErrorTypeNoToken
}
