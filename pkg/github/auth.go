package github

import (
	"context"
	"fmt"
	"strings"
)

// requiredScopes are the classic token scopes needed to edit repository
// merge settings
var requiredScopes = []string{"repo"}

// TokenInfo contains information about the authenticated token
type TokenInfo struct {
	User   string   `json:"user"`
	Scopes []string `json:"scopes"`
}

// FineGrained reports whether the token did not advertise OAuth scopes, which
// is the case for fine-grained personal access tokens and GitHub App tokens
func (t *TokenInfo) FineGrained() bool {
	return len(t.Scopes) == 0
}

// ValidateToken checks that the token authenticates and carries the scopes
// needed to change merge settings. The TokenInfo is returned even when the
// scope check fails.
func ValidateToken(ctx context.Context, client APIClient) (*TokenInfo, error) {
	info, err := client.AuthenticatedUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to validate GitHub token: %w", err)
	}

	// Permissions of fine-grained tokens cannot be inspected up front
	if info.FineGrained() {
		return info, nil
	}

	if err := validatePermissions(info.Scopes); err != nil {
		return info, err
	}
	return info, nil
}

// validatePermissions checks if the token has required permissions
func validatePermissions(scopes []string) error {
	scopeMap := make(map[string]bool)
	for _, scope := range scopes {
		scopeMap[scope] = true
	}

	var missingScopes []string
	for _, required := range requiredScopes {
		if !scopeMap[required] {
			missingScopes = append(missingScopes, required)
		}
	}

	if len(missingScopes) > 0 {
		return NewAPIError(ErrorTypePermission,
			fmt.Sprintf("GitHub token missing required scopes: %s. Updating merge settings needs: %s",
				strings.Join(missingScopes, ", "), strings.Join(requiredScopes, ", ")),
			nil)
	}

	return nil
}
