package graph

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoCredential indicates no bearer credential is configured.
var ErrNoCredential = errors.New("graph credential is required")

// ErrInvalidMailForm indicates the send-mail form failed validation.
var ErrInvalidMailForm = errors.New("invalid mail form")

// GraphError represents an error response from the Graph API.
type GraphError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("graph error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("graph error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound returns true when the resource does not exist.
func (e *GraphError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsAuthError returns true for expired or invalid credentials.
func (e *GraphError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
