package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error response from the cauth API.
// The server answers errors as RFC 7807 problem documents.
type APIError struct {
	StatusCode int    `json:"status"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Detail, e.StatusCode)
	}
	if e.Title != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Title, e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsNotFound returns true if the error is a 404 API error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true if the error is a 401 API error.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
