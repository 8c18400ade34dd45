package mcp

import (
	"errors"
	"fmt"

	"waveplan/internal/domain/planner"
	"waveplan/internal/domain/project"
	"waveplan/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project id or call list_projects"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid project input", RecoveryHint: "Provide a non-empty name"}
	case errors.Is(err, planner.ErrDuplicateTitle):
		return &APIError{Code: "DUPLICATE_TITLE", Message: err.Error(), RecoveryHint: "Property titles must be unique, case-insensitive"}
	case errors.Is(err, planner.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid planner input"}
	case errors.Is(err, repository.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: "project was saved by another session", RecoveryHint: "Reload the project and reapply"}
	default:
		return err
	}
}
