package mcp

import (
	"errors"
	"fmt"

	"github.com/mergington/activities/internal/domain/journal"
	"github.com/mergington/activities/internal/domain/registry"
)

// APIError represents an MCP tool error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	detail := registry.Detail(err)
	switch {
	case errors.Is(err, registry.ErrActivityNotFound):
		return &APIError{Code: "ACTIVITY_NOT_FOUND", Message: detail}
	case errors.Is(err, registry.ErrAlreadySignedUp):
		return &APIError{Code: "ALREADY_SIGNED_UP", Message: detail}
	case errors.Is(err, registry.ErrNotSignedUp):
		return &APIError{Code: "NOT_SIGNED_UP", Message: detail}
	case errors.Is(err, registry.ErrActivityFull):
		return &APIError{Code: "ACTIVITY_FULL", Message: detail}
	case errors.Is(err, registry.ErrInvalidInput), errors.Is(err, journal.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: detail}
	default:
		return &APIError{Code: "INTERNAL", Message: "internal error"}
	}
}
