package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
)

// ErrorType represents different categories of GitHub API errors
type ErrorType string

const (
	ErrorTypeAuth       ErrorType = "authentication"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// NotFoundHint replaces the raw not-found message on failed updates. A 404 on
// PATCH almost always means the token lacks admin rights on the repository.
const NotFoundHint = "404 Not Found (check permissions or whether the target is an organization)"

var (
	// ErrUnresolvableTarget is returned when a target names neither an
	// organization, a user, nor an owner/name repository
	ErrUnresolvableTarget = errors.New("target is not an organization, user, or owner/name repository")

	// ErrNoMergeSettings is returned when a bulk update is requested without
	// any desired merge setting
	ErrNoMergeSettings = errors.New("at least one merge setting must be specified")
)

// APIError represents a structured error from GitHub operations
type APIError struct {
	Type     ErrorType `json:"type"`
	Message  string    `json:"message"`
	Cause    error     `json:"-"`
	Resource string    `json:"resource,omitempty"`
	Field    string    `json:"field,omitempty"`
	Code     string    `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewAPIError creates a new APIError with the specified type and message
func NewAPIError(errorType ErrorType, message string, cause error) *APIError {
	return &APIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// WrapAPIError wraps a go-github error into our structured error type
func WrapAPIError(err error, resource string) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Resource != "" || resource == "" {
			return apiErr
		}
		// Copy so the caller's error keeps its own resource
		annotated := *apiErr
		annotated.Resource = resource
		return &annotated
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &APIError{
			Type:     ErrorTypeRateLimit,
			Message:  fmt.Sprintf("Rate limit exceeded. Reset at %v", rateErr.Rate.Reset.Time),
			Cause:    err,
			Resource: resource,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &APIError{
			Type:     ErrorTypeRateLimit,
			Message:  "Secondary rate limit triggered. Please wait before retrying",
			Cause:    err,
			Resource: resource,
		}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return parseErrorResponse(respErr, resource)
	}

	if isNetworkError(err) {
		return &APIError{
			Type:     ErrorTypeNetwork,
			Message:  "Network error occurred. Please check your connection and try again",
			Cause:    err,
			Resource: resource,
		}
	}

	return &APIError{
		Type:     ErrorTypeUnknown,
		Message:  err.Error(),
		Cause:    err,
		Resource: resource,
	}
}

// parseErrorResponse maps GitHub API error responses onto error types
func parseErrorResponse(respErr *github.ErrorResponse, resource string) *APIError {
	baseErr := &APIError{
		Resource: resource,
		Cause:    respErr,
	}

	switch respErr.Response.StatusCode {
	case http.StatusUnauthorized:
		baseErr.Type = ErrorTypeAuth
		baseErr.Message = "Authentication failed. Please check your GitHub token"

	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(respErr.Message), "rate limit") {
			baseErr.Type = ErrorTypeRateLimit
			baseErr.Message = "GitHub API rate limit exceeded. Please wait before retrying"
		} else {
			baseErr.Type = ErrorTypePermission
			baseErr.Message = "Insufficient permissions. Changing merge settings requires admin access to the repository"
		}

	case http.StatusNotFound:
		baseErr.Type = ErrorTypeNotFound
		switch {
		case strings.HasPrefix(resource, "repository"):
			baseErr.Message = "Repository not found. Check the repository name and your access permissions"
		case strings.HasPrefix(resource, "organization"):
			baseErr.Message = "Organization not found"
		case strings.HasPrefix(resource, "user"):
			baseErr.Message = "User not found. Please verify the username is correct"
		default:
			baseErr.Message = "Resource not found"
		}

	case http.StatusConflict:
		baseErr.Type = ErrorTypeConflict
		baseErr.Message = "Resource conflict occurred"

	case http.StatusUnprocessableEntity:
		baseErr.Type = ErrorTypeValidation
		baseErr.Message = "Validation failed"

		// Invalid enum values for the commit title/message formats land here
		if len(respErr.Errors) > 0 {
			var validationErrors []string
			for _, e := range respErr.Errors {
				if e.Field != "" {
					validationErrors = append(validationErrors, fmt.Sprintf("%s: %s", e.Field, e.Message))
					if baseErr.Field == "" {
						baseErr.Field = e.Field
						baseErr.Code = e.Code
					}
				} else {
					validationErrors = append(validationErrors, e.Message)
				}
			}
			baseErr.Message = fmt.Sprintf("Validation failed: %s", strings.Join(validationErrors, "; "))
		} else if respErr.Message != "" {
			baseErr.Message = fmt.Sprintf("Validation failed: %s", respErr.Message)
		}

	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		baseErr.Type = ErrorTypeNetwork
		baseErr.Message = "GitHub API is temporarily unavailable. Please try again later"

	default:
		baseErr.Type = ErrorTypeUnknown
		baseErr.Message = respErr.Message
	}

	return baseErr
}

// IsNotFound reports whether err is a classified or raw GitHub 404
func IsNotFound(err error) bool {
	return ErrorTypeOf(err) == ErrorTypeNotFound
}

// ErrorTypeOf classifies err, returning ErrorTypeUnknown for nil or
// unrecognised errors
func ErrorTypeOf(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}
	return WrapAPIError(err, "").Type
}

// isNetworkError checks if an error is a network-related error
func isNetworkError(err error) bool {
	errStr := strings.ToLower(err.Error())
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no such host",
		"dial tcp",
		"i/o timeout",
		"tls handshake timeout",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
